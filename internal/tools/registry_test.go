package tools

import (
	"errors"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	wantOrder := []ToolID{ToolJira, ToolSlack, ToolConfl, ToolNewRelic, ToolGoogle}
	ids := reg.IDs()
	if len(ids) != len(wantOrder) {
		t.Fatalf("unexpected registry size: %d", len(ids))
	}
	for i, id := range wantOrder {
		if ids[i] != id {
			t.Fatalf("registry order broken at %d: got %s, want %s", i, ids[i], id)
		}
	}
	for _, d := range reg.Descriptors() {
		if d.Binary == "" || d.Summary == "" || len(d.VersionArgs) == 0 || len(d.JSONArgs) == 0 {
			t.Fatalf("incomplete descriptor: %+v", d)
		}
		if d.Source != SourceCask || d.Cask == "" {
			t.Fatalf("builtin %s must be cask-sourced: %+v", d.ID, d)
		}
	}

	// the jira tool's binary name differs from its logical ID
	jira, err := reg.Lookup(ToolJira)
	if err != nil {
		t.Fatalf("Lookup jira-ticket-cli: %v", err)
	}
	if jira.Binary != "jtk" {
		t.Fatalf("unexpected jira binary: %s", jira.Binary)
	}

	// cask names that differ from the tool ID
	slck, err := reg.Lookup(ToolSlack)
	if err != nil {
		t.Fatalf("Lookup slck: %v", err)
	}
	if slck.Cask != "open-cli-collective/tap/slack-chat-cli" {
		t.Fatalf("unexpected slck cask: %s", slck.Cask)
	}
	gro, err := reg.Lookup(ToolGoogle)
	if err != nil {
		t.Fatalf("Lookup gro: %v", err)
	}
	if gro.Cask != "open-cli-collective/tap/google-readonly" {
		t.Fatalf("unexpected gro cask: %s", gro.Cask)
	}
	if len(gro.JSONArgs) != 1 || gro.JSONArgs[0] != "--json" {
		t.Fatalf("gro uses a bare --json flag: %#v", gro.JSONArgs)
	}
}

func TestLookup_UnknownCarriesSuggestions(t *testing.T) {
	reg := Default()
	_, err := reg.Lookup("slk")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownToolError, got %T: %v", err, err)
	}
	if unknown.ID != "slk" {
		t.Fatalf("unexpected ID in error: %s", unknown.ID)
	}
	if len(unknown.Suggestions) == 0 || unknown.Suggestions[0] != ToolSlack {
		t.Fatalf("expected slck suggested first, got %v", unknown.Suggestions)
	}
}

func TestSuggest(t *testing.T) {
	reg := Default()
	if got := reg.Suggest("jira"); len(got) == 0 || got[0] != ToolJira {
		t.Fatalf("jira suggestion: %v", got)
	}
	// binary names count as aliases
	if got := reg.Suggest("jtk"); len(got) == 0 || got[0] != ToolJira {
		t.Fatalf("jtk alias suggestion: %v", got)
	}
	if got := reg.Suggest(""); got != nil {
		t.Fatalf("empty input must not suggest: %v", got)
	}
	if got := reg.Suggest("zzzz"); len(got) != 0 {
		t.Fatalf("hopeless input must not suggest: %v", got)
	}
}

func TestWithout(t *testing.T) {
	reg := Default().Without(string(ToolGoogle), "  slck ", "never-existed")
	if reg.Len() != 3 {
		t.Fatalf("unexpected size after Without: %d", reg.Len())
	}
	if reg.Has(ToolGoogle) || reg.Has(ToolSlack) {
		t.Fatal("removed tools still present")
	}
	if !reg.Has(ToolJira) {
		t.Fatal("unrelated tool lost")
	}
	// the original registry is untouched
	if Default().Len() != 5 {
		t.Fatal("Default registry mutated")
	}
}
