package tools

import (
	"reflect"
	"testing"
)

func TestSplitArgs_QuotedPhrasesStaySingleTokens(t *testing.T) {
	got, err := SplitArgs(`issues create --project PROJ --summary "Fix login bug"`)
	if err != nil {
		t.Fatalf("SplitArgs error: %v", err)
	}
	want := []string{"issues", "create", "--project", "PROJ", "--summary", "Fix login bug"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected argv: %#v", got)
	}
}

func TestSplitArgs_MultipleQuotedFlags(t *testing.T) {
	got, err := SplitArgs(`issues create --project PROJ --summary "Fix bug" --description "Users cannot log in"`)
	if err != nil {
		t.Fatalf("SplitArgs error: %v", err)
	}
	if got[idx(t, got, "--summary")+1] != "Fix bug" {
		t.Fatalf("summary token broken: %#v", got)
	}
	if got[idx(t, got, "--description")+1] != "Users cannot log in" {
		t.Fatalf("description token broken: %#v", got)
	}
}

func TestSplitArgs_PlainTokens(t *testing.T) {
	got, err := SplitArgs("issues get PROJ-123 --output json")
	if err != nil {
		t.Fatalf("SplitArgs error: %v", err)
	}
	want := []string{"issues", "get", "PROJ-123", "--output", "json"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected argv: %#v", got)
	}
}

func TestSplitArgs_SingleQuotes(t *testing.T) {
	got, err := SplitArgs(`logs query --nrql 'SELECT * FROM Log'`)
	if err != nil {
		t.Fatalf("SplitArgs error: %v", err)
	}
	if got[idx(t, got, "--nrql")+1] != "SELECT * FROM Log" {
		t.Fatalf("nrql token broken: %#v", got)
	}
}

func TestSplitArgs_EdgeCases(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   \t  ", nil},
		{`""`, []string{""}},
		{`''`, []string{""}},
		{`a "" b`, []string{"a", "", "b"}},
		{`glued"to gether"x`, []string{"gluedto getherx"}},
		{`back\ slash`, []string{"back slash"}},
		{`"escaped \" quote"`, []string{`escaped " quote`}},
		{`"double \\ backslash"`, []string{`double \ backslash`}},
		{`'literal \ backslash'`, []string{`literal \ backslash`}},
		{"multi\nline args", []string{"multi", "line", "args"}},
	}
	for _, c := range cases {
		got, err := SplitArgs(c.in)
		if err != nil {
			t.Fatalf("SplitArgs(%q) error: %v", c.in, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitArgs(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestSplitArgs_ShellMetacharactersAreLiteral(t *testing.T) {
	got, err := SplitArgs(`search "a; rm -rf /" && echo $HOME | cat`)
	if err != nil {
		t.Fatalf("SplitArgs error: %v", err)
	}
	want := []string{"search", "a; rm -rf /", "&&", "echo", "$HOME", "|", "cat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("metacharacters must stay literal tokens: %#v", got)
	}
}

func TestSplitArgs_Malformed(t *testing.T) {
	for _, in := range []string{`"open`, `'open`, `a "b`, `tail\`} {
		if _, err := SplitArgs(in); err == nil {
			t.Fatalf("SplitArgs(%q) expected error", in)
		}
	}
}

func idx(t *testing.T, args []string, want string) int {
	t.Helper()
	for i, a := range args {
		if a == want {
			return i
		}
	}
	t.Fatalf("token %q not found in %#v", want, args)
	return -1
}
