package service

import (
	"testing"
	"time"

	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/models"
)

func TestNewStatusEntryLocationFallback(t *testing.T) {
	shipping := models.Shipping{From: "Chicago, IL", To: "Springfield, IL"}
	now := time.Date(2026, 3, 2, 14, 40, 0, 0, time.UTC)

	entry := newStatusEntry(constants.OrderStatusInTransit, "", "  ", shipping, now)
	if entry.Location != "Springfield, IL" {
		t.Fatalf("empty location should fall back to destination, got %q", entry.Location)
	}
	if entry.Completed {
		t.Fatalf("in transit entry should not be completed")
	}
	if entry.Time != "2:40:00 PM" {
		t.Fatalf("clock time want 2:40:00 PM got %s", entry.Time)
	}
	if entry.Notes != "" {
		t.Fatalf("blank notes should be trimmed, got %q", entry.Notes)
	}

	entry = newStatusEntry(constants.OrderStatusInTransit, "Bloomington, IL", "depot scan", shipping, now)
	if entry.Location != "Bloomington, IL" {
		t.Fatalf("explicit location should be kept, got %q", entry.Location)
	}
	if entry.Notes != "depot scan" {
		t.Fatalf("notes want depot scan got %q", entry.Notes)
	}
}

func TestNewStatusEntryDeliveredCompleted(t *testing.T) {
	shipping := models.Shipping{To: "Boston, MA"}
	entry := newStatusEntry(constants.OrderStatusDelivered, "", "", shipping, time.Now())
	if !entry.Completed {
		t.Fatalf("delivered entry should be completed")
	}
}

func TestInitialTimeline(t *testing.T) {
	shipping := models.Shipping{From: "New York, NY", To: "Boston, MA"}
	now := time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)

	timeline := initialTimeline(shipping, now)
	if len(timeline) != 1 {
		t.Fatalf("initial timeline len want 1 got %d", len(timeline))
	}
	entry := timeline[0]
	if entry.Status != constants.OrderStatusPlaced {
		t.Fatalf("initial status want %s got %s", constants.OrderStatusPlaced, entry.Status)
	}
	if entry.Location != "New York, NY" {
		t.Fatalf("initial location should be origin, got %q", entry.Location)
	}
	if !entry.Completed {
		t.Fatalf("initial entry should be completed")
	}
}

func TestTimelineStatusChanged(t *testing.T) {
	base := models.Timeline{
		{Status: constants.OrderStatusPlaced},
		{Status: constants.OrderStatusPickedUp},
	}

	if timelineStatusChanged(base, base) {
		t.Fatalf("identical timelines should not report change")
	}

	appended := append(models.Timeline{}, base...)
	appended = append(appended, models.TimelineEntry{Status: constants.OrderStatusInTransit})
	if !timelineStatusChanged(base, appended) {
		t.Fatalf("appended entry should report change")
	}

	replaced := models.Timeline{
		{Status: constants.OrderStatusPlaced},
		{Status: constants.OrderStatusInTransit},
	}
	if !timelineStatusChanged(base, replaced) {
		t.Fatalf("different last status should report change")
	}

	sameLenSameLast := models.Timeline{
		{Status: constants.OrderStatusOutForDelivery},
		{Status: constants.OrderStatusPickedUp},
	}
	if timelineStatusChanged(base, sameLenSameLast) {
		t.Fatalf("same length and same last status should not report change")
	}

	if timelineStatusChanged(models.Timeline{}, models.Timeline{}) {
		t.Fatalf("two empty timelines should not report change")
	}
}
