package models

import (
	"testing"
	"time"
)

func TestTimelineValueScanRoundTrip(t *testing.T) {
	timeline := Timeline{
		{
			Status:    "Order Placed",
			Date:      time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC),
			Time:      "9:15:00 AM",
			Location:  "Chicago, IL",
			Completed: true,
		},
		{
			Status:   "Delivered",
			Date:     time.Date(2026, 3, 4, 15, 20, 0, 0, time.UTC),
			Time:     "3:20:00 PM",
			Location: "Springfield, IL",
			Notes:    "Left at front desk",
			ProofOfDelivery: &ProofOfDelivery{
				Kind:    "text",
				Content: "Signed by recipient",
			},
			Completed: true,
		},
	}

	value, err := timeline.Value()
	if err != nil {
		t.Fatalf("timeline value failed: %v", err)
	}

	var got Timeline
	if err := got.Scan(value); err != nil {
		t.Fatalf("timeline scan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("timeline len want 2 got %d", len(got))
	}
	if got[1].Status != "Delivered" {
		t.Fatalf("last status want Delivered got %s", got[1].Status)
	}
	if got[1].ProofOfDelivery == nil || got[1].ProofOfDelivery.Content != "Signed by recipient" {
		t.Fatalf("proof of delivery should survive round trip: %+v", got[1].ProofOfDelivery)
	}
}

func TestTimelineScanNilAndString(t *testing.T) {
	var timeline Timeline
	if err := timeline.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if len(timeline) != 0 {
		t.Fatalf("scan nil should yield empty timeline, got %d", len(timeline))
	}

	if err := timeline.Scan(`[{"status":"In Transit"}]`); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if timeline.CurrentStatus() != "In Transit" {
		t.Fatalf("current status want In Transit got %s", timeline.CurrentStatus())
	}
}

func TestTimelineLastAndCurrentStatus(t *testing.T) {
	var empty Timeline
	if empty.Last() != nil {
		t.Fatalf("empty timeline last should be nil")
	}
	if empty.CurrentStatus() != "" {
		t.Fatalf("empty timeline status should be empty string")
	}

	timeline := Timeline{
		{Status: "Order Placed"},
		{Status: "Picked Up"},
	}
	if last := timeline.Last(); last == nil || last.Status != "Picked Up" {
		t.Fatalf("last entry mismatch: %+v", last)
	}
	if timeline.CurrentStatus() != "Picked Up" {
		t.Fatalf("current status want Picked Up got %s", timeline.CurrentStatus())
	}
}

func TestCustomerValueScanRoundTrip(t *testing.T) {
	customer := Customer{
		Name:    "Alice Johnson",
		Email:   "alice@example.com",
		Phone:   "+1-202-555-0143",
		Address: "221B Maple Street",
	}

	value, err := customer.Value()
	if err != nil {
		t.Fatalf("customer value failed: %v", err)
	}

	var got Customer
	if err := got.Scan(value); err != nil {
		t.Fatalf("customer scan failed: %v", err)
	}
	if got != customer {
		t.Fatalf("customer round trip mismatch: %+v", got)
	}
}

func TestOrderBeforeSaveNormalizes(t *testing.T) {
	order := &Order{
		TrackingID: "  pxabc123def ",
		Customer:   Customer{Email: " Alice@Example.COM "},
	}
	if err := order.BeforeSave(nil); err != nil {
		t.Fatalf("before save failed: %v", err)
	}
	if order.TrackingID != "PXABC123DEF" {
		t.Fatalf("tracking id want PXABC123DEF got %q", order.TrackingID)
	}
	if order.Customer.Email != "alice@example.com" {
		t.Fatalf("email want alice@example.com got %q", order.Customer.Email)
	}
}
