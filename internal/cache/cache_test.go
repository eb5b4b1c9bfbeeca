package cache

import (
	"fmt"
	"testing"
)

func TestCacheGetPut(t *testing.T) {
	c := New[int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Put("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("got %v %v", v, ok)
	}
}

func TestCacheFIFOEviction(t *testing.T) {
	c := New[int](1000)

	for i := 0; i < 1001; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}

	if c.Len() != 1000 {
		t.Fatalf("expected 1000 entries, got %d", c.Len())
	}
	if _, ok := c.Get("key-0"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("key-1"); !ok {
		t.Error("second entry should survive")
	}
	if _, ok := c.Get("key-1000"); !ok {
		t.Error("newest entry should be present")
	}
}

func TestCacheHitsDoNotRefreshPosition(t *testing.T) {
	c := New[int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a stays oldest regardless of hits
	c.Put("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected 'a' evicted despite recent hit")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected 'b' to survive")
	}
}

func TestCacheUpdateKeepsPosition(t *testing.T) {
	c := New[int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // update, not reinsertion
	c.Put("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected 'a' evicted, updates keep insertion order")
	}
	v, ok := c.Get("b")
	if !ok || v != 2 {
		t.Errorf("got %v %v", v, ok)
	}
}
