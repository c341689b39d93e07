package dataset_test

import (
	"math"
	"strings"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

func smallFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.New(
		dataset.NewIntColumn("id", []int64{1, 2, 3, 4}),
		dataset.NewFloatColumn("score", []float64{2.5, math.NaN(), 1.0, 9.5}),
		dataset.NewStringColumn("tag", []string{"b", "a", "", "c"}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNewRejectsMismatchedLengths(t *testing.T) {
	_, err := dataset.New(
		dataset.NewIntColumn("a", []int64{1, 2}),
		dataset.NewIntColumn("b", []int64{1}),
	)
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := dataset.New(
		dataset.NewIntColumn("a", []int64{1}),
		dataset.NewIntColumn("a", []int64{2}),
	)
	if err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := smallFrame(t)
	c := f.Clone()
	c.Column("id").Ints[0] = 99
	c.Column("tag").Strs[0] = "mutated"
	if f.Column("id").Ints[0] != 1 {
		t.Errorf("clone mutation reached original int column")
	}
	if f.Column("tag").Strs[0] != "b" {
		t.Errorf("clone mutation reached original string column")
	}
}

func TestFilterAndHead(t *testing.T) {
	f := smallFrame(t)
	got := f.Filter([]bool{true, false, true, true})
	if got.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", got.NumRows())
	}
	if got.Column("id").Ints[1] != 3 {
		t.Errorf("filter kept wrong rows")
	}
	if h := got.Head(2); h.NumRows() != 2 || h.Column("id").Ints[0] != 1 {
		t.Errorf("head wrong")
	}
	if h := got.Head(10); h.NumRows() != 3 {
		t.Errorf("head past end should clamp")
	}
}

func TestSelect(t *testing.T) {
	f := smallFrame(t)
	got, err := f.Select([]string{"tag", "id"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	names := got.Names()
	if len(names) != 2 || names[0] != "tag" || names[1] != "id" {
		t.Errorf("names = %v", names)
	}
	if _, err := f.Select([]string{"nope"}); err == nil {
		t.Errorf("expected unknown column error")
	}
}

func TestSortByNullsLast(t *testing.T) {
	f := smallFrame(t)
	asc, err := f.SortBy("score", false)
	if err != nil {
		t.Fatalf("SortBy: %v", err)
	}
	ids := asc.Column("id").Ints
	want := []int64{3, 1, 4, 2} // null score (id 2) last
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("asc ids = %v, want %v", ids, want)
		}
	}

	desc, err := f.SortBy("score", true)
	if err != nil {
		t.Fatalf("SortBy desc: %v", err)
	}
	ids = desc.Column("id").Ints
	want = []int64{4, 1, 3, 2}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("desc ids = %v, want %v", ids, want)
		}
	}
}

func TestFormatTableTruncation(t *testing.T) {
	f := smallFrame(t)
	out := dataset.FormatTable(f, 2)
	if !strings.Contains(out, "(2 more rows)") {
		t.Errorf("missing truncation marker:\n%s", out)
	}
	if !strings.Contains(out, "id") || !strings.Contains(out, "tag") {
		t.Errorf("missing header:\n%s", out)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	f := loadSample(t)
	a := dataset.Summarize(f)
	b := dataset.Summarize(f)
	if a.Rows != b.Rows || a.SurvivalRate != b.SurvivalRate {
		t.Fatalf("summaries differ: %+v vs %+v", a, b)
	}
	if a.Rows != 5 || a.SurvivalRate != 0.6 {
		t.Errorf("Rows=%d SurvivalRate=%v", a.Rows, a.SurvivalRate)
	}
	if a.ClassCounts[3] != 3 || a.ClassCounts[1] != 2 {
		t.Errorf("ClassCounts = %v", a.ClassCounts)
	}
	if a.GenderCounts["female"] != 3 {
		t.Errorf("GenderCounts = %v", a.GenderCounts)
	}
	if a.MissingCounts["Age"] != 1 {
		t.Errorf("MissingCounts[Age] = %d", a.MissingCounts["Age"])
	}
	if len(a.SampleRows) != 5 {
		t.Errorf("SampleRows = %d", len(a.SampleRows))
	}
}
