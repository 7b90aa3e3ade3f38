package graph

import "strings"

var separatorReplacer = strings.NewReplacer("-", " ", "_", " ")

// NormalizeKey maps an entity name to the key used to resolve edge endpoints
// within one document: lower-cased, hyphens and underscores turned into
// spaces, surrounding whitespace trimmed.
//
// The key never decides store identity, which is the exact (name, type)
// pair.
func NormalizeKey(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(separatorReplacer.Replace(strings.ToLower(name)))
}
