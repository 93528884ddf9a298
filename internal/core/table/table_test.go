package table

import (
	stderrs "errors"
	"strings"
	"testing"

	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/testkit"
)

func TestRead(t *testing.T) {
	doc := testkit.ReviewsCSV("\ufeffreview,product,rating",
		`"Great, really",P1,5`,
		``,
		`short row`,
		`"multi
line",P2,`,
	)
	tab, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := strings.Join(tab.Header, "|"); got != "review|product|rating" {
		t.Fatalf("header = %q", got)
	}
	if tab.Len() != 3 {
		t.Fatalf("rows = %d, want 3 (blank line skipped)", tab.Len())
	}
	if tab.Rows[0][0] != "Great, really" {
		t.Fatalf("quoted cell = %q", tab.Rows[0][0])
	}
	if len(tab.Rows[1]) != 3 || tab.Rows[1][1] != "" {
		t.Fatalf("short row not padded: %q", tab.Rows[1])
	}
	if tab.Rows[2][0] != "multi\nline" {
		t.Fatalf("multiline cell = %q", tab.Rows[2][0])
	}
	if tab.Index("rating") != 2 || tab.Index("missing") != -1 || !tab.Has("review") {
		t.Fatalf("Index/Has mismatch")
	}
}

func TestReadHeaderOnly(t *testing.T) {
	tab, err := ReadBytes([]byte("review,product\n"))
	if err != nil || tab.Len() != 0 {
		t.Fatalf("header only = %+v, %v", tab, err)
	}
}

func TestReadRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "CSV is empty"},
		{"long row", "review,product\na,b,c\n", "line 2 has 3 fields"},
		{"bad quote", "review,product\n\"a,b\n", "malformed CSV"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadBytes([]byte(c.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v", perr.CodeOf(err))
			}
			testkit.MustContain(t, err.Error(), c.want)
		})
	}
}

func TestRequireColumns(t *testing.T) {
	tab := &Table{Header: []string{"review", "stars"}}
	if err := tab.RequireColumns("review"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := tab.RequireColumns("review", "product")
	var se *perr.SchemaError
	if !stderrs.As(err, &se) {
		t.Fatalf("want *SchemaError, got %T", err)
	}
	if strings.Join(se.Missing, ",") != "product" {
		t.Fatalf("Missing = %v", se.Missing)
	}
	if err.Error() != "CSV must contain 'review' and 'product' columns" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tab := &Table{
		Header: []string{"review", "product"},
		Rows:   [][]string{{"has, comma", "P1"}, {`has "quote"`, "P2"}},
	}
	b, err := tab.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := "review,product\n\"has, comma\",P1\n\"has \"\"quote\"\"\",P2\n"
	if string(b) != want {
		t.Fatalf("Bytes = %q, want %q", b, want)
	}
	back, err := ReadBytes(b)
	if err != nil || back.Rows[1][0] != `has "quote"` {
		t.Fatalf("re-read = %+v, %v", back, err)
	}
}
