package bimap

import (
	"testing"
)

// TestBimapLookups tests lookups in both directions.
func TestBimapLookups(t *testing.T) {
	m := New[string, int]()
	if err := m.Insert("one", 1); err != nil {
		t.Fatal("unable to insert pair:", err)
	}
	if err := m.Insert("two", 2); err != nil {
		t.Fatal("unable to insert pair:", err)
	}

	if value, ok := m.ByKey("two"); !ok || value != 2 {
		t.Error("forward lookup failed:", value, ok)
	}
	if key, ok := m.ByValue(1); !ok || key != "one" {
		t.Error("reverse lookup failed:", key, ok)
	}
	if _, ok := m.ByKey("three"); ok {
		t.Error("lookup of absent key succeeded")
	}
	if m.Len() != 2 {
		t.Error("unexpected length:", m.Len())
	}
}

// TestBimapDuplicates tests that duplicate keys and values are rejected.
func TestBimapDuplicates(t *testing.T) {
	m := New[string, int]().MustInsert("one", 1)
	if m.Insert("one", 2) == nil {
		t.Error("duplicate key accepted")
	}
	if m.Insert("uno", 1) == nil {
		t.Error("duplicate value accepted")
	}
	if m.Len() != 1 {
		t.Error("failed insertion modified map")
	}
}

// TestBimapDeletion tests deletion from both sides.
func TestBimapDeletion(t *testing.T) {
	m := New[string, int]().
		MustInsert("a", 1).
		MustInsert("b", 2).
		MustInsert("c", 3)

	m.DeleteKey("b")
	if _, ok := m.ByValue(2); ok {
		t.Error("reverse entry survived key deletion")
	}
	m.DeleteValue(3)
	if _, ok := m.ByKey("c"); ok {
		t.Error("forward entry survived value deletion")
	}

	keys := m.Keys()
	if len(keys) != 1 || keys[0] != "a" {
		t.Error("unexpected remaining keys:", keys)
	}

	// The value should be reusable after deletion.
	if err := m.Insert("d", 2); err != nil {
		t.Error("unable to reuse deleted value:", err)
	}
}
