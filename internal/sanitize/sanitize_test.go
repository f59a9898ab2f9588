package sanitize

import "testing"

func TestString_MapsCommonPunctuation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"em dash", "pages 4—7", "pages 4--7"},
		{"en dash", "1–2", "1-2"},
		{"curly quotes", "“quoted” and ‘this’", `"quoted" and 'this'`},
		{"ellipsis", "and so on…", "and so on..."},
		{"bullet", "• item", "* item"},
		{"arrows", "a → b ← c", "a -> b <- c"},
		{"degrees", "21°C", "21 degreesC"},
		{"euro", "€100", "EUR100"},
		{"copyright", "© 2023", "(c) 2023"},
		{"nbsp", "a b", "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := String(tc.in); got != tc.want {
				t.Fatalf("String(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestString_FoldsNonLatin1(t *testing.T) {
	cases := []struct{ in, want string }{
		{"café", "café"}, // Latin-1 letter kept as-is
		{"Ābo", "Abo"},        // A with macron decomposes to A + mark
		{"Šoka", "Soka"},      // S with caron decomposes to S + mark
		{"ﬁle", "file"},       // fi ligature
		{"①", "1"},            // circled one
		{"中文", "??"},     // no Latin-1 decomposition
		{"\U0001f600", "?"},        // emoji
	}
	for _, tc := range cases {
		if got := String(tc.in); got != tc.want {
			t.Fatalf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestString_ControlCharacters(t *testing.T) {
	in := "a\x00b\x07c\nd\te\rf"
	want := "a b c\nd\te\rf"
	if got := String(in); got != want {
		t.Fatalf("String(%q) = %q, want %q", in, got, want)
	}
}

func TestString_OutputIsLatin1(t *testing.T) {
	in := "mixed — café 中 € \U0001f600 text"
	out := String(in)
	for _, r := range out {
		if r >= 256 {
			t.Fatalf("output contains non-Latin-1 rune %q in %q", r, out)
		}
	}
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"em — dash and “quotes”",
		"café naïve résumé",
		"中文 mixed with ASCII",
		"21° and ± 5",
	}
	for _, in := range inputs {
		once := String(in)
		twice := String(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestValue(t *testing.T) {
	if got := Value(42); got != "42" {
		t.Fatalf("Value(42) = %q, want %q", got, "42")
	}
	if got := Value("—"); got != "--" {
		t.Fatalf("Value(em dash) = %q, want %q", got, "--")
	}
}
