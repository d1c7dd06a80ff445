// ABOUTME: Tests for version constants
// ABOUTME: Checks the version format and that the strings fit in mDNS TXT records
package version

import (
	"strconv"
	"strings"
	"testing"
)

func TestVersionFormat(t *testing.T) {
	// Version is major.minor.patch
	parts := strings.Split(Version, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 version parts, got %d in %q", len(parts), Version)
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			t.Errorf("expected numeric version part, got %q", p)
		}
	}
}

func TestTXTRecordValues(t *testing.T) {
	// A DNS-SD TXT string holds at most 255 bytes including "key="
	tests := []struct {
		key   string
		value string
	}{
		{"version", Version},
		{"product", Product},
		{"manufacturer", Manufacturer},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if strings.TrimSpace(tt.value) == "" {
				t.Fatalf("expected a value for %s", tt.key)
			}
			if n := len(tt.key) + 1 + len(tt.value); n > 255 {
				t.Errorf("expected record under 255 bytes, got %d", n)
			}
		})
	}
}
