package cmd

import "testing"

func TestMask(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "******"},
		{"sk-or-v1-abcdef", "sk-****def"},
	}
	for _, c := range cases {
		if got := mask(c.in); got != c.want {
			t.Errorf("mask(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExampleQueriesNonEmpty(t *testing.T) {
	if len(exampleQueries) == 0 {
		t.Fatal("no example queries")
	}
	for _, q := range exampleQueries {
		if q == "" {
			t.Error("empty example query")
		}
	}
}
