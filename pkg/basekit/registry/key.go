package registry

// Keys are any comparable Go type; the stores place no further requirements
// on them. StringKey covers the common case of a plain string identifier
// while keeping key and value namespaces visually distinct at call sites.
type StringKey string

// String returns the key's text.
func (k StringKey) String() string {
	return string(k)
}

// Key builds a StringKey from s.
func Key(s string) StringKey {
	return StringKey(s)
}
