package term

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapErrorWithSource_Caret_Position(t *testing.T) {
	src := "sin()"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()
	if !strings.Contains(msg, "PARSE ERROR") {
		t.Fatalf("missing header:\n%s", msg)
	}
	if !strings.Contains(msg, src) {
		t.Fatalf("missing source line:\n%s", msg)
	}
	lines := strings.Split(msg, "\n")
	caret := lines[len(lines)-1]
	idx := strings.IndexByte(caret, '^')
	if idx < 0 {
		t.Fatalf("missing caret:\n%s", msg)
	}
	// caret lines up with the ")" under the "  | " gutter
	if got := idx - len("  | "); got != 4 {
		t.Fatalf("caret at column %d, want 4:\n%s", got, msg)
	}
}

func Test_WrapErrorWithSource_Clamps_End_Of_Input(t *testing.T) {
	src := "2+"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret:\n%s", msg)
	}
}

func Test_WrapErrorWithSource_Passes_Other_Errors_Through(t *testing.T) {
	sentinel := errors.New("boom")
	if got := WrapErrorWithSource(sentinel, "x"); got != sentinel {
		t.Fatalf("foreign error was rewritten: %v", got)
	}
}

func Test_ParseError_Messages(t *testing.T) {
	cases := []struct {
		src     string
		substr  string
	}{
		{"x)", "trailing"},
		{"(x", "missing closing"},
		{"2+", "end of input"},
		{"$", "unexpected token"},
	}
	for _, c := range cases {
		_, err := Parse(c.src)
		if err == nil {
			t.Errorf("parse %q: expected error", c.src)
			continue
		}
		if !strings.Contains(err.Error(), c.substr) {
			t.Errorf("parse %q: error %q does not mention %q", c.src, err, c.substr)
		}
	}
}
