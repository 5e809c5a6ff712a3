package port

// Cache stores recent upstream answers keyed by normalized query.
// Implementations are safe for concurrent use and may drop entries at any
// time, either on capacity pressure or when they expire.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Remove(key K)
	Len() int
}
