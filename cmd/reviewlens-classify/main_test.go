package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/platform/testkit"
)

const reviews = "review,product,rating\n" +
	"\"Great moisturizer, no more dry skin!\",HydraGlow,5\n" +
	"\"Broke me out badly, acne everywhere\",ClearFace,1\n" +
	"It's okay I guess,PlainBase,3\n"

func stubScorer(t *testing.T) {
	t.Helper()
	testkit.Serial(t)
	testkit.Swap(t, &newScorer, func() sentiment.Scorer {
		return sentiment.ScorerFunc(func(text string) float64 {
			switch {
			case strings.HasPrefix(text, "great"):
				return 0.8
			case strings.HasPrefix(text, "broke"):
				return -0.6
			}
			return 0
		})
	})
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestClassifyToFile(t *testing.T) {
	stubScorer(t)
	in := testkit.WriteFile(t, "reviews.csv", reviews)
	out := filepath.Join(t.TempDir(), "results.csv")

	code, stdout, stderr := runCLI(t, "", "-in", in, "-out", out, "-workers", "2")
	if code != exitOK {
		t.Fatalf("exit = %d stderr = %s", code, stderr)
	}
	if stdout != "Hydration: HydraGlow\nAcne: No recommendations available\nOther: No recommendations available\n" {
		t.Fatalf("recommendations = %q", stdout)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	want := []string{
		"review,product,rating,cleaned_review,sentiment,concern",
		`"Great moisturizer, no more dry skin!",HydraGlow,5,great moisturizer no more dry skin,Positive,Hydration`,
		`"Broke me out badly, acne everywhere",ClearFace,1,broke me out badly acne everywhere,Negative,Acne`,
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if len(lines) != 4 || !strings.HasSuffix(lines[3], ",PlainBase,3,its okay i guess,Neutral,Other") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestClassifyToStdout(t *testing.T) {
	stubScorer(t)

	code, stdout, stderr := runCLI(t, reviews, "-in", "-", "-concern", "Hydration")
	if code != exitOK {
		t.Fatalf("exit = %d stderr = %s", code, stderr)
	}
	testkit.MustContain(t, stdout, "review,product,rating,cleaned_review,sentiment,concern\n")
	testkit.MustNotContain(t, stdout, "Hydration: ")
	testkit.MustContain(t, stderr, "Hydration: HydraGlow\n")
}

func TestExitCodes(t *testing.T) {
	stubScorer(t)
	noReview := testkit.WriteFile(t, "bad.csv", "text,product\nhello,P1\n")
	malformed := testkit.WriteFile(t, "malformed.csv", "review,product\na,b,c\n")

	cases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"schema", []string{"-in", noReview}, exitUsage, "CSV must contain 'review' and 'product' columns"},
		{"missing in", nil, exitUsage, "-in is required"},
		{"bad flag", []string{"-nope"}, exitUsage, "flag provided but not defined"},
		{"negative workers", []string{"-in", noReview, "-workers", "-1"}, exitUsage, "-workers must be >= 0"},
		{"no such file", []string{"-in", filepath.Join(t.TempDir(), "absent.csv")}, exitFailed, "absent.csv"},
		{"malformed", []string{"-in", malformed}, exitFailed, "has 3 fields"},
		{"bad taxonomy", []string{"-in", noReview, "-taxonomy", "tax.toml"}, exitFailed, "unsupported file extension"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", c.args...)
			if code != c.code {
				t.Fatalf("exit = %d, want %d (stderr %s)", code, c.code, stderr)
			}
			testkit.MustContain(t, stderr, c.want)
		})
	}
}

func TestTaxonomyOverride(t *testing.T) {
	stubScorer(t)
	tax := testkit.WriteFile(t, "tax.yaml", "version: 1\ncategories:\n  - name: Glow\n    keywords: [moisturizer]\n")

	code, stdout, stderr := runCLI(t, reviews, "-in", "-", "-taxonomy", tax, "-concern", "Glow")
	if code != exitOK {
		t.Fatalf("exit = %d stderr = %s", code, stderr)
	}
	testkit.MustContain(t, stdout, ",Positive,Glow\n")
	testkit.MustContain(t, stdout, ",Negative,Other\n")
	testkit.MustContain(t, stderr, "Glow: HydraGlow\n")
}
