package extract_test

import (
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/extract"
)

func TestFirstFenced(t *testing.T) {
	cases := []struct {
		name string
		in   string
		lang string
		want string
	}{
		{
			name: "single block",
			in:   "Here you go:\n```tabq\nprint \"hi\"\n```\nDone.",
			lang: "tabq",
			want: "print \"hi\"",
		},
		{
			name: "first of several",
			in:   "```tabq\nhead 5\n```\ntext\n```tabq\nhead 9\n```",
			lang: "tabq",
			want: "head 5",
		},
		{
			name: "no block",
			in:   "Sorry, I cannot answer that.",
			lang: "tabq",
			want: "",
		},
		{
			name: "unmatched opening marker",
			in:   "```tabq\nprint \"hi\"",
			lang: "tabq",
			want: "",
		},
		{
			name: "wrong language tag",
			in:   "```python\nprint('hi')\n```",
			lang: "tabq",
			want: "",
		},
		{
			name: "python tag extracted when asked for",
			in:   "```python\nprint('hi')\n```",
			lang: "python",
			want: "print('hi')",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := extract.FirstFenced(c.in, c.lang); got != c.want {
				t.Errorf("FirstFenced = %q, want %q", got, c.want)
			}
		})
	}
}

func TestStripFenced(t *testing.T) {
	in := "Intro.\n```tabq\nhead 1\n```\nOutro.\n```tabq\nhead 2\n```"
	got := extract.StripFenced(in, "tabq")
	want := "Intro.\n\nOutro."
	if got != want {
		t.Errorf("StripFenced = %q, want %q", got, want)
	}
}

func TestStripFencedNoBlocks(t *testing.T) {
	if got := extract.StripFenced("  plain prose  ", "tabq"); got != "plain prose" {
		t.Errorf("got %q", got)
	}
}
