package normalize

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "hello world",
			out:  "hello world",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'l', 'e', 'a', 'd', 0x80, ' ', 't', 'e', 'a', 'm'}),
			out:  "lead team",
		},
		{
			name: "case fold",
			in:   "DeCiSiVe",
			out:  "decisive",
		},
		{
			name: "remove zero-widths",
			in:   "l​e‍ad", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "lead",
		},
		{
			name: "remove combining marks",
			in:   "café", // "café" using combining acute accent
			out:  "cafe",
		},
		{
			name: "width fold fullwidth",
			in:   "ＬＥＡＤ bot", // fullwidth letters
			out:  "lead bot",
		},
		{
			name: "nfkc ligature",
			in:   "oﬃce", // ﬃ ligature
			out:  "office",
		},
		{
			name: "collapse spaces within a line",
			in:   "a\t\tb   c",
			out:  "a b c",
		},
		{
			name: "whitespace runs with newline keep one newline",
			in:   "step one \n\n step two",
			out:  "step one\nstep two",
		},
		{
			name: "combined normalization",
			in:   "  ZW​ N‌ B\uFEFF S  \t", // zero-widths + spaces + FEFF
			out:  "zw nb s",
		},
		{
			name: "idempotent",
			in:   n.Normalize("Ｔ‍e@m\t\twork  "),
			out:  "te@m work",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// Idempotence check: normalize again should be identical
			got2 := n.Normalize(got)
			if got2 != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	n := New()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   \t ", 0},
		{"one", 1},
		{"You will lead the team.", 5},
		{"a\t b \n c", 3},
	}
	for _, c := range cases {
		if got := n.WordCount(c.in); got != c.want {
			t.Fatalf("WordCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

// Spot-check internal helper in isolation.
func TestCollapseSpaces(t *testing.T) {
	in := " \t a  b   c \r\n "
	want := "a b c"
	got := collapseSpaces(in)
	if got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}
