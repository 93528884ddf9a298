package strings

import (
	"testing"

	kit "reviewlens/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty kept = %v", got)
	}
	if got := IfEmpty(nil, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty default = %v", got)
	}
}

func TestBlankAndMustString(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", " ", "\t\n"} {
		if !Blank(s) {
			t.Fatalf("Blank(%q) = false", s)
		}
	}
	if Blank(" x ") {
		t.Fatalf("Blank(\" x \") = true")
	}
	if got := MustString("analyses", "name"); got != "analyses" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"analyses":   "/analyses",
		"/analyses/": "/analyses",
		" //meta// ": "/meta",
		"/a/b":       "/a/b",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { _ = MustPrefix(" / ") })
}
