package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

const sampleCSV = `PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
1,0,3,"Braund, Mr. Owen",male,22,1,0,A/5 21171,7.25,,S
2,1,1,"Cumings, Mrs. John",female,38,1,0,PC 17599,71.2833,C85,C
3,1,3,"Heikkinen, Miss Laina",female,,0,0,STON/O2,7.925,,S
4,1,1,"Futrelle, Mrs. Jacques",female,35,1,0,113803,53.1,C123,S
5,0,3,"Allen, Mr. William",male,35,0,0,373450,8.05,,
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func loadSample(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.Load(writeTemp(t, "titanic.csv", sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f
}

func TestLoadCSV(t *testing.T) {
	f := loadSample(t)
	if f.NumRows() != 5 {
		t.Fatalf("rows = %d, want 5", f.NumRows())
	}
	if f.NumCols() != 12 {
		t.Fatalf("cols = %d, want 12", f.NumCols())
	}

	age := f.Column("Age")
	if age == nil || age.Kind != dataset.KindFloat {
		t.Fatalf("Age column missing or wrong kind")
	}
	if !age.IsNull(2) {
		t.Errorf("empty Age cell should be null")
	}
	if v, ok := age.FloatAt(0); !ok || v != 22 {
		t.Errorf("Age[0] = %v, %v", v, ok)
	}

	cabin := f.Column("Cabin")
	if !cabin.IsNull(0) || cabin.IsNull(1) {
		t.Errorf("Cabin null handling wrong")
	}
	if emb := f.Column("Embarked"); !emb.IsNull(4) {
		t.Errorf("empty Embarked cell should be null")
	}
	if name := f.Column("Name"); name.StringAt(0) != "Braund, Mr. Owen" {
		t.Errorf("quoted Name mangled: %q", name.StringAt(0))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadMissingRequiredColumns(t *testing.T) {
	csv := "PassengerId,Name,Sex\n1,somebody,male\n"
	_, err := dataset.Load(writeTemp(t, "bad.csv", csv))
	if err == nil {
		t.Fatalf("expected schema error")
	}
	for _, col := range []string{"Survived", "Pclass", "Age", "Fare"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q does not name missing column %s", err, col)
		}
	}
}

func TestLoadBadCell(t *testing.T) {
	csv := strings.Replace(sampleCSV, "22,1,0", "twenty-two,1,0", 1)
	_, err := dataset.Load(writeTemp(t, "bad.csv", csv))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "Age") || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error %q should name the row and column", err)
	}
}

func TestLoadTSV(t *testing.T) {
	tsv := "PassengerId\tSurvived\tPclass\tName\tSex\tAge\tSibSp\tParch\tTicket\tFare\tCabin\tEmbarked\n" +
		"1\t0\t3\tBraund\tmale\t22\t1\t0\tA5\t7.25\t\tS\n" +
		"2\t1\t1\tCumings\tfemale\t38\t1\t0\tPC\t71.28\tC85\tC\n"
	f, err := dataset.Load(writeTemp(t, "titanic.tsv", tsv))
	if err != nil {
		t.Fatalf("Load tsv: %v", err)
	}
	if f.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", f.NumRows())
	}
}
