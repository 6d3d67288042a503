package models

// SuggestionItem is one suggested antecedent or consequence.
type SuggestionItem struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// SuggestionSet holds the suggestion lists for one behavior label.
type SuggestionSet struct {
	Antecedents  []SuggestionItem `json:"antecedents"`
	Consequences []SuggestionItem `json:"consequences"`
}

// SuggestionResult is what callers receive: the set plus whether it came
// from the static fallback tables instead of the remote endpoint. Fallback
// results are never written to the cache.
type SuggestionResult struct {
	SuggestionSet
	IsFallback bool `json:"isFallback"`
}

// CachedSuggestion is the cache entry stored per normalized behavior label.
// Timestamp is epoch milliseconds; entries expire after a fixed 24 hours.
type CachedSuggestion struct {
	Suggestions SuggestionSet `json:"suggestions"`
	Timestamp   int64         `json:"timestamp"`
}
