// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[int](3)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string](3)

	c.Add("a", "A")
	c.Add("b", "B")
	c.Add("c", "C")

	// Access 'a' to make it most recently used
	c.Get("a")

	// 'b' is now the least recently used
	c.Add("d", "D")

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Expected len 3 after eviction, got %d", c.Len())
	}
}

func TestLRU_AddReplacesValue(t *testing.T) {
	c := NewLRU[int](2)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)

	// Replacing 'a' refreshes it, so 'b' is evicted next
	c.Add("c", 3)

	if got, _ := c.Get("a"); got != 10 {
		t.Errorf("Get(a) = %d, want 10", got)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Expected len 2, got %d", c.Len())
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	c := NewLRU[int](0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int](50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity 50", c.Len())
	}
}
