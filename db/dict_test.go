package db

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTableSetAndGet(t *testing.T) {
	ht := NewHashTable[string, int](10)
	assert.True(t, ht.Set("one", 1))
	assert.True(t, ht.Set("two", 2))

	value, exists := ht.Get("one")
	assert.True(t, exists, "Key 'one' should exist")
	assert.Equal(t, 1, value, "Value for key 'one' should be 1")

	value, exists = ht.Get("two")
	assert.True(t, exists, "Key 'two' should exist")
	assert.Equal(t, 2, value, "Value for key 'two' should be 2")

	_, exists = ht.Get("three")
	assert.False(t, exists, "Key 'three' should not exist")
}

func TestHashTableOverwrite(t *testing.T) {
	ht := NewHashTable[string, int](4)
	ht.Set("one", 1)
	assert.False(t, ht.Set("one", 11))

	value, _ := ht.Get("one")
	assert.Equal(t, 11, value)
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableDelete(t *testing.T) {
	ht := NewHashTable[string, int](10)
	ht.Set("one", 1)
	ht.Set("two", 2)
	assert.True(t, ht.Delete("one"))
	assert.False(t, ht.Delete("one"))

	_, exists := ht.Get("one")
	assert.False(t, exists, "Expected key 'one' to be deleted")
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableDeleteChained(t *testing.T) {
	// one bucket forces every key onto the same chain
	ht := &HashTable[string, int]{Table: make([]*Entry[string, int], 1), Size: 1}
	ht.Table[0] = &Entry[string, int]{Key: "a", Value: 1}
	ht.Table[0].Next = &Entry[string, int]{Key: "b", Value: 2}
	ht.Table[0].Next.Next = &Entry[string, int]{Key: "c", Value: 3}
	ht.Count = 3

	assert.True(t, ht.Delete("b"))
	assert.True(t, ht.Delete("a"))
	value, exists := ht.Get("c")
	assert.True(t, exists)
	assert.Equal(t, 3, value)
	assert.Equal(t, 1, ht.Len())
}

func TestHashTableResize(t *testing.T) {
	ht := NewHashTable[string, int](10)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key%d", i)
		ht.Set(key, i)
	}

	assert.Equal(t, 100, ht.Len())
	assert.Greater(t, ht.Size, 100)

	value, exists := ht.Get("key50")
	assert.True(t, exists, "Key 'key50' should exist")
	assert.Equal(t, 50, value, "Value for key 'key50' should be 50")

	value, exists = ht.Get("key99")
	assert.True(t, exists, "Key 'key99' should exist")
	assert.Equal(t, 99, value, "Value for key 'key99' should be 99")
}

func TestHashTableKeys(t *testing.T) {
	ht := NewHashTable[int, string](2)
	for i := 0; i < 5; i++ {
		ht.Set(i, fmt.Sprint(i))
	}

	keys := ht.Keys()
	sort.Ints(keys)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, keys)

	visited := 0
	ht.Range(func(int, string) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
