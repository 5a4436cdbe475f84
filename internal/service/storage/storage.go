package storage

// Storage is a keyed snapshot store: readers look entries up while a writer
// swaps the whole content.
type Storage[K comparable, V any] interface {
	Get(key K) (V, bool)
	Replace(entries map[K]V)
	Count() int
}
