package tools

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Suggest returns registered IDs that fuzzily match the given input,
// best match first. Binary names count as aliases, so a caller who
// types "gro" or "slck" variants still lands on the right tool.
func (r *Registry) Suggest(input string) []ToolID {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || len(r.order) == 0 {
		return nil
	}
	cands := make([]string, 0, 2*len(r.order))
	owner := make(map[string]ToolID, 2*len(r.order))
	for _, id := range r.order {
		d := r.byID[id]
		cands = append(cands, string(id))
		owner[string(id)] = id
		if d.Binary != "" && d.Binary != string(id) {
			cands = append(cands, d.Binary)
			owner[d.Binary] = id
		}
	}
	seen := make(map[ToolID]bool, maxSuggestions)
	var out []ToolID
	for _, m := range fuzzy.Find(input, cands) {
		id := owner[m.Str]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
