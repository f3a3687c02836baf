package service

import (
	"strings"
	"testing"

	"github.com/parcelx-next/internal/constants"
)

func TestGenerateTrackingIDFormat(t *testing.T) {
	id := GenerateTrackingID()
	if !strings.HasPrefix(id, constants.TrackingIDPrefix) {
		t.Fatalf("tracking id should start with %s, got %s", constants.TrackingIDPrefix, id)
	}
	wantLen := len(constants.TrackingIDPrefix) + constants.TrackingIDRandomLength
	if len(id) != wantLen {
		t.Fatalf("tracking id len want %d got %d (%s)", wantLen, len(id), id)
	}
	for _, ch := range id[len(constants.TrackingIDPrefix):] {
		if !strings.ContainsRune(trackingIDCharset, ch) {
			t.Fatalf("tracking id contains invalid char %q: %s", ch, id)
		}
	}
}

func TestGenerateTrackingIDDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTrackingID()
		if seen[id] {
			t.Fatalf("tracking id repeated within 100 draws: %s", id)
		}
		seen[id] = true
	}
}
