package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation for nesting (e.g. "chunking.max_words").
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset or wrong type.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset or wrong type.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if unset or wrong type.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads configuration from the backing store.
	Load() error
}
