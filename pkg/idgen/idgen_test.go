// Package idgen provides ID generation utilities for the application.
// This file contains unit tests for the idgen package.
package idgen

import (
	"regexp"
	"testing"
)

// TestNewID tests the NewID function
func TestNewID(t *testing.T) {
	t.Run("returns 20 character ID", func(t *testing.T) {
		id := NewID()
		if len(id) != 20 {
			t.Errorf("NewID() returned ID with length %d, want 20", len(id))
		}
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		ids := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			if ids[id] {
				t.Errorf("NewID() generated duplicate ID: %s", id)
			}
			ids[id] = true
		}
	})

	t.Run("generates URL-safe IDs", func(t *testing.T) {
		// xid uses base32 encoding which is URL-safe (alphanumeric)
		urlSafe := regexp.MustCompile(`^[a-z0-9]+$`)
		for i := 0; i < 100; i++ {
			id := NewID()
			if !urlSafe.MatchString(id) {
				t.Errorf("NewID() returned non-URL-safe ID: %s", id)
			}
		}
	})
}

// TestNewReportID tests the NewReportID function
func TestNewReportID(t *testing.T) {
	id := NewReportID()
	if len(id) != 20 {
		t.Errorf("NewReportID() returned ID with length %d, want 20", len(id))
	}
	if id == NewReportID() {
		t.Error("NewReportID() generated duplicate IDs")
	}
}
