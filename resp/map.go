package resp

import "sort"

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   string
	Value Frame
}

// Map maps text keys to frames. Entries are kept sorted by key, so
// iteration and encoding are always in ascending key order no matter how
// the map was built. Setting an existing key overwrites its value.
//
// The zero value is an empty map ready to use.
type Map struct {
	entries []MapEntry
}

func NewMap() Map {
	return Map{}
}

// search returns the index of key, or the index it should be inserted at.
func (m *Map) search(key string) (int, bool) {
	idx := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Key >= key
	})
	return idx, idx < len(m.entries) && m.entries[idx].Key == key
}

// Set inserts key in sorted position, or replaces its value. Set never
// writes to the entries m shares with copies of it.
func (m *Map) Set(key string, value Frame) {
	idx, found := m.search(key)
	if found {
		entries := make([]MapEntry, len(m.entries))
		copy(entries, m.entries)
		entries[idx].Value = value
		m.entries = entries
		return
	}

	entries := make([]MapEntry, len(m.entries)+1)
	copy(entries, m.entries[:idx])
	entries[idx] = MapEntry{Key: key, Value: value}
	copy(entries[idx+1:], m.entries[idx:])
	m.entries = entries
}

func (m Map) Get(key string) (Frame, bool) {
	idx, found := m.search(key)
	if !found {
		return nil, false
	}
	return m.entries[idx].Value, true
}

func (m Map) Len() int {
	return len(m.entries)
}

// Keys returns the keys in ascending order.
func (m Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in ascending key order.
func (m Map) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Range calls fn for each entry in ascending key order until fn returns false.
func (m Map) Range(fn func(key string, value Frame) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}
