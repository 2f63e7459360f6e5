package driven

// ResponseCache stores decoded API response bodies by request key.
// Entries expire after an implementation-defined timeout; expiry is lazy.
type ResponseCache interface {
	// Get returns the cached body for key.
	// An expired entry is removed and reported as a miss.
	Get(key string) ([]byte, bool)

	// Set stores body under key, stamped with the current time.
	Set(key string, body []byte)

	// Clear removes every entry.
	Clear()

	// Len returns the number of stored entries, expired or not.
	Len() int
}
