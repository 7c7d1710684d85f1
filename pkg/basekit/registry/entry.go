package registry

import "fmt"

// Entry pairs a key with its registered value. Entry identity follows the
// key alone: two entries with equal keys denote the same registration even
// if their values differ.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// String returns a printable form naming only the key.
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("[Entry]: %q", fmt.Sprint(e.Key))
}

// OwnedEntry additionally records the principal that registered the value.
type OwnedEntry[K comparable, V any] struct {
	Key         K
	Value       V
	Registrator Registrator
}

// String returns a printable form naming the key and its owner.
func (e OwnedEntry[K, V]) String() string {
	return fmt.Sprintf("[Entry]: %q, registered by %q", fmt.Sprint(e.Key), e.Registrator.String())
}

// Entry drops the ownership axis.
func (e OwnedEntry[K, V]) Entry() Entry[K, V] {
	return Entry[K, V]{Key: e.Key, Value: e.Value}
}
