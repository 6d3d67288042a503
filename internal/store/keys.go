package store

import "strings"

// Reserved keys that live alongside child records in the flat keyspace.
// Listing must skip them so they are never misread as child documents.
const (
	keySelectedChild    = "current_selected_child"
	keyOnboarding       = "onboarding_completed"
	keyReminderSettings = "reminder_settings"

	// suggestionPrefix marks cache entries written by the suggestion service.
	suggestionPrefix = "gpt_suggestion_"
)

// userPrefix namespaces every key by caregiver so one deployment serves many
// accounts. The portion after the prefix is the mobile app's original key.
func userPrefix(userID string) string {
	return "u:" + userID + ":"
}

func userKey(userID, key string) string {
	return userPrefix(userID) + key
}

// isReserved reports whether a bare (unprefixed) key is one of the
// non-child keys sharing the keyspace.
func isReserved(key string) bool {
	switch key {
	case keySelectedChild, keyOnboarding, keyReminderSettings:
		return true
	}
	return strings.HasPrefix(key, suggestionPrefix)
}
