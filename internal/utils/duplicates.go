package utils

// SuggestionFilter drops repeated keys, keeping the first occurrence.
// Not safe for concurrent use; create one per suggestion pass.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter creates a filter that already rejects the given keys.
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	seen := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		seen[key] = struct{}{}
	}
	return &SuggestionFilter{seen: seen}
}

// ShouldInclude reports whether key is new, and records it.
func (f *SuggestionFilter) ShouldInclude(key string) bool {
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
