package db

import (
	"fmt"
	"hash/fnv"
)

const (
	loadFactor = 0.7
)

type Entry[K comparable, V any] struct {
	Key   K
	Value V
	Next  *Entry[K, V]
}

// HashTable is a chained hash table that doubles its bucket array once the
// load factor passes 0.7.
type HashTable[K comparable, V any] struct {
	Table []*Entry[K, V]
	Size  int
	Count int
}

func NewHashTable[K comparable, V any](initSize int) *HashTable[K, V] {
	if initSize < 1 {
		initSize = 1
	}
	return &HashTable[K, V]{
		Table: make([]*Entry[K, V], initSize),
		Size:  initSize,
	}
}

func (h *HashTable[K, V]) Hash(key K) int {
	hasher := fnv.New32a()
	switch k := any(key).(type) {
	case string:
		hasher.Write([]byte(k))
	default:
		fmt.Fprintf(hasher, "%v", key)
	}
	return int(hasher.Sum32() % uint32(h.Size))
}

// Set inserts or replaces the value stored under key. It reports whether the
// key was newly added.
func (h *HashTable[K, V]) Set(key K, value V) bool {
	if float64(h.Count)/float64(h.Size) > loadFactor {
		h.resize()
	}

	index := h.Hash(key)
	for curr := h.Table[index]; curr != nil; curr = curr.Next {
		if curr.Key == key {
			curr.Value = value
			return false
		}
	}
	h.Table[index] = &Entry[K, V]{Key: key, Value: value, Next: h.Table[index]}
	h.Count++
	return true
}

func (h *HashTable[K, V]) resize() {
	oldTable := h.Table
	h.Size *= 2
	h.Table = make([]*Entry[K, V], h.Size)

	for _, entry := range oldTable {
		for entry != nil {
			next := entry.Next
			index := h.Hash(entry.Key)
			entry.Next = h.Table[index]
			h.Table[index] = entry
			entry = next
		}
	}
}

func (h *HashTable[K, V]) Delete(key K) bool {
	index := h.Hash(key)

	var prev *Entry[K, V]
	for curr := h.Table[index]; curr != nil; curr = curr.Next {
		if curr.Key == key {
			if prev == nil {
				h.Table[index] = curr.Next
			} else {
				prev.Next = curr.Next
			}
			h.Count--
			return true
		}
		prev = curr
	}
	return false
}

func (h *HashTable[K, V]) Get(key K) (V, bool) {
	index := h.Hash(key)
	for curr := h.Table[index]; curr != nil; curr = curr.Next {
		if curr.Key == key {
			return curr.Value, true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of elements in the hash table
func (h *HashTable[K, V]) Len() int {
	return h.Count
}

// Empty returns true if the hash table is empty
func (h *HashTable[K, V]) Empty() bool {
	return h.Count == 0
}

// Range calls fn for every entry in bucket order until fn returns false.
func (h *HashTable[K, V]) Range(fn func(key K, value V) bool) {
	for _, curr := range h.Table {
		for ; curr != nil; curr = curr.Next {
			if !fn(curr.Key, curr.Value) {
				return
			}
		}
	}
}

// Keys returns every key in bucket order.
func (h *HashTable[K, V]) Keys() []K {
	keys := make([]K, 0, h.Count)
	h.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
