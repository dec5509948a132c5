package utilities

import "testing"

// Rapid generation lands many IDs in the same millisecond; the shared node's
// sequence counter must keep them distinct.
func TestNewRecordIDUniqueUnderRapidGeneration(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewRecordID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestNewAccessTokenUnique(t *testing.T) {
	a, b := NewAccessToken(), NewAccessToken()
	if a == "" || a == b {
		t.Fatalf("tokens not unique: %q %q", a, b)
	}
}
