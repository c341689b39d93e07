package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Categorical encodings kept alongside, never replacing, the originals.
var (
	sexCodes      = map[string]int64{"male": 0, "female": 1}
	embarkedCodes = map[string]int64{"C": 0, "Q": 1, "S": 2}
)

// Prepare cleans the loaded passenger table in place: Age and Fare nulls are
// filled with the column median, Embarked nulls with "S" (the most common
// port), and encoded views of Sex and Embarked are appended. After Prepare,
// every Age and Fare cell is non-null and Embarked is one of C, Q, S.
func Prepare(f *Frame) error {
	if err := fillMedian(f.Column("Age")); err != nil {
		return err
	}
	if err := fillMedian(f.Column("Fare")); err != nil {
		return err
	}
	embarked := f.Column("Embarked")
	for i := 0; i < embarked.Len(); i++ {
		if embarked.IsNull(i) {
			embarked.Strs[i] = "S"
			embarked.Valid[i] = true
		}
	}

	sexEnc, err := encode(f.Column("Sex"), "Sex_encoded", sexCodes)
	if err != nil {
		return err
	}
	embEnc, err := encode(embarked, "Embarked_encoded", embarkedCodes)
	if err != nil {
		return err
	}
	if err := f.AddColumn(sexEnc); err != nil {
		return err
	}
	return f.AddColumn(embEnc)
}

func fillMedian(c *Column) error {
	if c == nil || c.Kind != KindFloat {
		return fmt.Errorf("median fill: column missing or not numeric")
	}
	med, ok := median(c)
	if !ok {
		return fmt.Errorf("median fill: column %s has no values", c.Name)
	}
	for i := range c.Floats {
		if c.IsNull(i) {
			c.Floats[i] = med
			c.Valid[i] = true
		}
	}
	return nil
}

func median(c *Column) (float64, bool) {
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.FloatAt(i); ok && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}

// encode maps a categorical string column to integer codes. Unknown values
// produce null cells rather than failing the whole preparation.
func encode(c *Column, name string, codes map[string]int64) (*Column, error) {
	if c == nil || c.Kind != KindString {
		return nil, fmt.Errorf("encode %s: source column missing or not categorical", name)
	}
	out := &Column{Name: name, Kind: KindInt, Ints: make([]int64, c.Len()), Valid: make([]bool, c.Len())}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		code, ok := codes[c.Strs[i]]
		if !ok {
			continue
		}
		out.Ints[i] = code
		out.Valid[i] = true
	}
	return out, nil
}
