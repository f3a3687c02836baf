package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) *GormOrderRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("migrate orders failed: %v", err)
	}
	if err := db.Exec("DELETE FROM orders").Error; err != nil {
		t.Fatalf("clean orders failed: %v", err)
	}
	return NewOrderRepository(db)
}

func newTestOrder(trackingID string) *models.Order {
	return &models.Order{
		TrackingID: trackingID,
		Customer: models.Customer{
			Name:    "Alice Johnson",
			Email:   "alice@example.com",
			Phone:   "+1-202-555-0143",
			Address: "221B Maple Street",
		},
		Shipping: models.Shipping{
			From: "Chicago, IL",
			To:   "Springfield, IL",
		},
		Package: models.Package{
			Category:   constants.PackageCategoryElectronics,
			Weight:     "2.4 kg",
			Dimensions: "30x20x15 cm",
		},
		Timeline: models.Timeline{
			{
				Status:    constants.OrderStatusPlaced,
				Date:      time.Now(),
				Time:      "9:15:00 AM",
				Location:  "Chicago, IL",
				Completed: true,
			},
		},
	}
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	order := newTestOrder("PXTESTCR001")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("order id should be assigned")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil {
		t.Fatalf("get by id returned nil")
	}
	if got.TrackingID != "PXTESTCR001" {
		t.Fatalf("tracking id want PXTESTCR001 got %s", got.TrackingID)
	}
	if got.Customer.Email != "alice@example.com" {
		t.Fatalf("customer email want alice@example.com got %s", got.Customer.Email)
	}
	if got.Timeline.CurrentStatus() != constants.OrderStatusPlaced {
		t.Fatalf("current status want %s got %s", constants.OrderStatusPlaced, got.Timeline.CurrentStatus())
	}
}

func TestOrderRepositoryGetByTrackingIDCaseInsensitive(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	if err := repo.Create(newTestOrder("PXTESTGT001")); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := repo.GetByTrackingID("pxtestgt001")
	if err != nil {
		t.Fatalf("get by tracking id failed: %v", err)
	}
	if got == nil {
		t.Fatalf("lowercase lookup should find the order")
	}

	missing, err := repo.GetByTrackingID("PXNOSUCHID1")
	if err != nil {
		t.Fatalf("get missing tracking id failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing tracking id should return nil")
	}
}

func TestOrderRepositoryDuplicateTrackingID(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	if err := repo.Create(newTestOrder("PXTESTDUP01")); err != nil {
		t.Fatalf("create first order failed: %v", err)
	}
	err := repo.Create(newTestOrder("PXTESTDUP01"))
	if !errors.Is(err, ErrDuplicateTrackingID) {
		t.Fatalf("duplicate create want ErrDuplicateTrackingID got %v", err)
	}
}

func TestOrderRepositoryUpdateAppendsTimeline(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	order := newTestOrder("PXTESTUP001")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	order.Timeline = append(order.Timeline, models.TimelineEntry{
		Status:   constants.OrderStatusInTransit,
		Date:     time.Now(),
		Time:     "2:40:00 PM",
		Location: "Bloomington, IL",
	})
	if err := repo.Update(order); err != nil {
		t.Fatalf("update order failed: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(got.Timeline) != 2 {
		t.Fatalf("timeline len want 2 got %d", len(got.Timeline))
	}
	if got.Timeline.CurrentStatus() != constants.OrderStatusInTransit {
		t.Fatalf("current status want %s got %s", constants.OrderStatusInTransit, got.Timeline.CurrentStatus())
	}
}

func TestOrderRepositoryDelete(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	order := newTestOrder("PXTESTDEL01")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get deleted order failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted order should not be found")
	}
}

func TestOrderRepositoryListSearch(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	first := newTestOrder("PXTESTLS001")
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first order failed: %v", err)
	}
	second := newTestOrder("PXTESTLS002")
	second.Customer.Name = "Bob Martinez"
	second.Customer.Email = "bob@example.com"
	second.Shipping.From = "San Francisco, CA"
	second.Shipping.To = "San Diego, CA"
	if err := repo.Create(second); err != nil {
		t.Fatalf("create second order failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 10, Search: "Martinez"})
	if err != nil {
		t.Fatalf("list with search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search total want 1 got %d", total)
	}
	if len(orders) != 1 || orders[0].TrackingID != "PXTESTLS002" {
		t.Fatalf("search should match second order, got %+v", orders)
	}

	orders, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10, Search: "PXTESTLS"})
	if err != nil {
		t.Fatalf("list with tracking search failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("tracking search total want 2 got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("tracking search rows want 2 got %d", len(orders))
	}

	orders, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10, TrackingID: "pxtestls001"})
	if err != nil {
		t.Fatalf("list with tracking id filter failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].TrackingID != "PXTESTLS001" {
		t.Fatalf("tracking id filter should match first order, total=%d rows=%d", total, len(orders))
	}
}

func TestOrderRepositoryListCreatedRange(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	if err := repo.Create(newTestOrder("PXTESTRG001")); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	future := time.Now().Add(time.Hour)
	_, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 10, CreatedFrom: &future})
	if err != nil {
		t.Fatalf("list with created_from failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("created_from in future should match nothing, got %d", total)
	}

	past := time.Now().Add(-time.Hour)
	_, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10, CreatedFrom: &past})
	if err != nil {
		t.Fatalf("list with past created_from failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("past created_from should match the order, got %d", total)
	}
}

func TestOrderRepositoryCountAndRecent(t *testing.T) {
	repo := setupOrderRepositoryTest(t)

	for _, id := range []string{"PXTESTCN001", "PXTESTCN002", "PXTESTCN003"} {
		if err := repo.Create(newTestOrder(id)); err != nil {
			t.Fatalf("create order %s failed: %v", id, err)
		}
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("count want 3 got %d", count)
	}

	recent, err := repo.ListRecent(2)
	if err != nil {
		t.Fatalf("list recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent len want 2 got %d", len(recent))
	}
}
