package normalize

import (
	"strings"
	"sync"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "hello world", out: "hello world"},
		{name: "empty", in: "", out: ""},
		{name: "lowercase", in: "Love This MOISTURIZER", out: "love this moisturizer"},
		{name: "punctuation dropped", in: "Great for dry skin!", out: "great for dry skin"},
		{name: "digits kept", in: "5 stars, 10/10", out: "5 stars 1010"},
		{name: "whitespace kept as is", in: "a\t\tb\nc   d", out: "a\t\tb\nc   d"},
		{name: "accents collapse to nothing", in: "Café crème", out: "caf crme"},
		{name: "emoji dropped", in: "so good 😍😍", out: "so good "},
		{name: "hyphen dropped", in: "Anti-Pollution shield", out: "antipollution shield"},
		{name: "apostrophe dropped", in: "It's okay I guess", out: "its okay i guess"},
		{name: "kelvin sign lowercases to ascii k", in: "\u212Aeep", out: "keep"},
		{name: "information separators are whitespace", in: "a\x1cb", out: "a\x1cb"},
		{name: "utf8 repair drops invalid bytes", in: string([]byte{0xff, 'o', 'k', 0x80}), out: "ok"},
		{name: "whitespace only", in: " \t\n ", out: ""},
		{name: "punctuation only", in: "!!! ... ???", out: ""},
		{name: "symbols around spaces", in: "!! ??", out: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestNormalize_OutputAlphabet(t *testing.T) {
	in := "Ünïcödé ÅÉÎ ß ﬁ «quotes» — dashes ½ ١٢٣ ＦＵＬＬ"
	out := Normalize(in)
	for _, r := range out {
		if !allowed(r) {
			t.Fatalf("rune %q escaped the filter in %q", r, out)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hydration HERO!!",
		"dry, DRY, dry...",
		"   leading and trailing   ",
		"Mixed\tCase\nLines",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	const in = "The Pimple Patch WORKS! 10/10"
	want := Normalize(in)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for n := 0; n < 64; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Normalize(in); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Normalize = %q, want %q", got, want)
	}
}

func BenchmarkNormalize(b *testing.B) {
	in := strings.Repeat("This cleanser left my skin SO soft!! ", 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Normalize(in)
	}
}
