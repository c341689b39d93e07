package dataset_test

import (
	"strings"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

func TestPrepareFillsAndEncodes(t *testing.T) {
	f := loadSample(t)
	if err := dataset.Prepare(f); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	age := f.Column("Age")
	fare := f.Column("Fare")
	for i := 0; i < f.NumRows(); i++ {
		if age.IsNull(i) {
			t.Errorf("Age[%d] still null after Prepare", i)
		}
		if fare.IsNull(i) {
			t.Errorf("Fare[%d] still null after Prepare", i)
		}
	}
	// Median of {22, 38, 35, 35} is 35.
	if v, _ := age.FloatAt(2); v != 35 {
		t.Errorf("filled Age = %v, want median 35", v)
	}

	emb := f.Column("Embarked")
	for i := 0; i < emb.Len(); i++ {
		v := emb.StringAt(i)
		if v != "C" && v != "Q" && v != "S" {
			t.Errorf("Embarked[%d] = %q", i, v)
		}
	}
	if emb.StringAt(4) != "S" {
		t.Errorf("missing Embarked should fill with S, got %q", emb.StringAt(4))
	}

	sexEnc := f.Column("Sex_encoded")
	if sexEnc == nil || sexEnc.Kind != dataset.KindInt {
		t.Fatalf("Sex_encoded missing or wrong kind")
	}
	if sexEnc.Ints[0] != 0 || sexEnc.Ints[1] != 1 {
		t.Errorf("Sex_encoded = %v", sexEnc.Ints[:2])
	}
	embEnc := f.Column("Embarked_encoded")
	if embEnc == nil {
		t.Fatalf("Embarked_encoded missing")
	}
	if embEnc.Ints[1] != 0 || embEnc.Ints[0] != 2 {
		t.Errorf("Embarked_encoded = %v", embEnc.Ints[:2])
	}
	// Originals are kept.
	if f.Column("Sex").StringAt(0) != "male" {
		t.Errorf("original Sex column was replaced")
	}
}

func TestPrepareUnknownCategoryStaysNull(t *testing.T) {
	csv := strings.Replace(sampleCSV, "male,22", "unknown,22", 1)
	f, err := dataset.Load(writeTemp(t, "odd.csv", csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := dataset.Prepare(f); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if enc := f.Column("Sex_encoded"); !enc.IsNull(0) {
		t.Errorf("unknown Sex value should encode to null")
	}
}

func TestDescribeAndInfo(t *testing.T) {
	f := loadSample(t)
	if err := dataset.Prepare(f); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	info := dataset.Info(f)
	for _, want := range []string{
		"TITANIC DATASET INFORMATION:",
		"COLUMN DETAILS",
		"SURVIVAL STATISTICS",
		"SAMPLE DATA",
		"STATISTICAL SUMMARY",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Info missing %q", want)
		}
	}
	desc := dataset.Describe(f)
	if !strings.Contains(desc, "mean") || !strings.Contains(desc, "Age") {
		t.Errorf("Describe missing expected content:\n%s", desc)
	}
}
