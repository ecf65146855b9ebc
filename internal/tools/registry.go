package tools

import "strings"

// builtins is the static descriptor table. All five CLIs ship as casks
// from the open-cli-collective tap. IDs are logical names: the jira tool
// installs a binary called jtk, and two casks are published under names
// that differ from their tool ID.
var builtins = []ToolDescriptor{
	{
		ID:          ToolJira,
		DisplayName: "Jira Ticket CLI",
		Binary:      "jtk",
		Summary:     "Issues, sprints, transitions and comments in Jira",
		VersionArgs: []string{"--version"},
		JSONArgs:    []string{"--output", "json"},
		Source:      SourceCask,
		Cask:        "open-cli-collective/tap/jira-ticket-cli",
	},
	{
		ID:          ToolSlack,
		DisplayName: "Slack Chat CLI",
		Binary:      "slck",
		Summary:     "Channels, messages, users and search in Slack",
		VersionArgs: []string{"--version"},
		JSONArgs:    []string{"--output", "json"},
		Source:      SourceCask,
		Cask:        "open-cli-collective/tap/slack-chat-cli",
	},
	{
		ID:          ToolConfl,
		DisplayName: "Confluence CLI",
		Binary:      "cfl",
		Summary:     "Pages, spaces, attachments and search in Confluence",
		VersionArgs: []string{"--version"},
		JSONArgs:    []string{"--output", "json"},
		Source:      SourceCask,
		Cask:        "open-cli-collective/tap/cfl",
	},
	{
		ID:          ToolNewRelic,
		DisplayName: "New Relic CLI",
		Binary:      "newrelic-cli",
		Summary:     "Apps, logs, alerts, dashboards and NRQL in New Relic",
		VersionArgs: []string{"--version"},
		JSONArgs:    []string{"--output", "json"},
		Source:      SourceCask,
		Cask:        "open-cli-collective/tap/newrelic-cli",
	},
	{
		ID:          ToolGoogle,
		DisplayName: "Google Readonly CLI",
		Binary:      "gro",
		Summary:     "Read-only Gmail, Calendar, Contacts and Drive access",
		VersionArgs: []string{"--version"},
		JSONArgs:    []string{"--json"},
		Source:      SourceCask,
		Cask:        "open-cli-collective/tap/google-readonly",
	},
}

// Registry is an immutable, ordered set of tool descriptors.
type Registry struct {
	order []ToolID
	byID  map[ToolID]ToolDescriptor
}

// NewRegistry builds a registry preserving descriptor order. A later
// duplicate of an ID replaces the earlier entry.
func NewRegistry(ds ...ToolDescriptor) *Registry {
	r := &Registry{byID: make(map[ToolID]ToolDescriptor, len(ds))}
	for _, d := range ds {
		if _, ok := r.byID[d.ID]; !ok {
			r.order = append(r.order, d.ID)
		}
		r.byID[d.ID] = d
	}
	return r
}

// Default returns the built-in registry of wrapped CLIs.
func Default() *Registry {
	return NewRegistry(builtins...)
}

// Lookup finds a descriptor by ID. A miss returns an UnknownToolError
// carrying close-match suggestions.
func (r *Registry) Lookup(id ToolID) (ToolDescriptor, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	return ToolDescriptor{}, &UnknownToolError{ID: id, Suggestions: r.Suggest(string(id))}
}

// Has reports whether the ID is registered.
func (r *Registry) Has(id ToolID) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns the registered IDs in registry order.
func (r *Registry) IDs() []ToolID {
	return append([]ToolID(nil), r.order...)
}

// Descriptors returns all descriptors in registry order.
func (r *Registry) Descriptors() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Without returns a copy of the registry with the given IDs removed.
// Unknown IDs are ignored.
func (r *Registry) Without(ids ...string) *Registry {
	drop := make(map[ToolID]bool, len(ids))
	for _, id := range ids {
		drop[ToolID(strings.TrimSpace(id))] = true
	}
	keep := make([]ToolDescriptor, 0, len(r.order))
	for _, d := range r.Descriptors() {
		if !drop[d.ID] {
			keep = append(keep, d)
		}
	}
	return NewRegistry(keep...)
}
