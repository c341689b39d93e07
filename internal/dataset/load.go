package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// fieldSpec declares one column of the passenger table schema.
type fieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema is the fixed passenger table layout expected from the source file.
// Cabin is frequently empty in the wild, so only its presence is required,
// not its values.
var Schema = []fieldSpec{
	{Name: "PassengerId", Kind: KindInt, Required: true},
	{Name: "Survived", Kind: KindInt, Required: true},
	{Name: "Pclass", Kind: KindInt, Required: true},
	{Name: "Name", Kind: KindString, Required: true},
	{Name: "Sex", Kind: KindString, Required: true},
	{Name: "Age", Kind: KindFloat, Required: true},
	{Name: "SibSp", Kind: KindInt, Required: true},
	{Name: "Parch", Kind: KindInt, Required: true},
	{Name: "Ticket", Kind: KindString, Required: true},
	{Name: "Fare", Kind: KindFloat, Required: true},
	{Name: "Cabin", Kind: KindString, Required: false},
	{Name: "Embarked", Kind: KindString, Required: true},
}

// Load reads the passenger table from path, dispatching on extension.
// Missing files and schema violations are fatal to the caller; there is no
// recovery path at startup.
func Load(path string) (*Frame, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(path)
	case strings.HasSuffix(lower, ".tsv"):
		return LoadCSV(path, '\t')
	default:
		return LoadCSV(path, ',')
	}
}

// LoadCSV reads a delimited passenger table and validates it against Schema.
func LoadCSV(path string, delim rune) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s: empty file", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	return fromRecords(header, rows)
}

// fromRecords builds a schema-validated frame from a header and data rows.
func fromRecords(header []string, rows [][]string) (*Frame, error) {
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, spec := range Schema {
		if _, ok := colIdx[spec.Name]; !ok && spec.Required {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset schema: missing required columns: %s", strings.Join(missing, ", "))
	}

	cols := make([]*Column, 0, len(Schema))
	for _, spec := range Schema {
		src, present := colIdx[spec.Name]
		c := &Column{Name: spec.Name, Kind: spec.Kind, Valid: make([]bool, len(rows))}
		switch spec.Kind {
		case KindInt:
			c.Ints = make([]int64, len(rows))
		case KindFloat:
			c.Floats = make([]float64, len(rows))
		default:
			c.Strs = make([]string, len(rows))
		}
		for i, row := range rows {
			raw := ""
			if present && src < len(row) {
				raw = strings.TrimSpace(row[src])
			}
			if raw == "" {
				if spec.Kind == KindFloat {
					c.Floats[i] = math.NaN()
				}
				continue
			}
			switch spec.Kind {
			case KindInt:
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: parse int %q: %w", i+2, spec.Name, raw, err)
				}
				c.Ints[i] = v
			case KindFloat:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: parse float %q: %w", i+2, spec.Name, raw, err)
				}
				c.Floats[i] = v
			default:
				c.Strs[i] = raw
			}
			c.Valid[i] = true
		}
		cols = append(cols, c)
	}
	return New(cols...)
}
