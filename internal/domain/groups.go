package domain

// Groups is an insertion-ordered multimap.
type Groups[K comparable, V any] struct {
	keys  []K
	items map[K][]V
}

// GroupBy partitions items by keyFn, keeping first-seen key order and the
// relative order of items within each key.
func GroupBy[K comparable, V any](items []V, keyFn func(V) K) Groups[K, V] {
	g := Groups[K, V]{items: make(map[K][]V)}
	for _, it := range items {
		k := keyFn(it)
		if _, ok := g.items[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.items[k] = append(g.items[k], it)
	}
	return g
}

// Keys returns the keys in insertion order.
func (g Groups[K, V]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the items grouped under k.
func (g Groups[K, V]) Get(k K) []V {
	return g.items[k]
}

// Len returns the number of distinct keys.
func (g Groups[K, V]) Len() int {
	return len(g.keys)
}

// Flatten concatenates all groups in key order.
func (g Groups[K, V]) Flatten() []V {
	var out []V
	for _, k := range g.keys {
		out = append(out, g.items[k]...)
	}
	return out
}
