package queue

import (
	"testing"

	"github.com/parcelx-next/internal/config"
)

func TestClientDisabled(t *testing.T) {
	client, err := NewClient(nil)
	if err != nil {
		t.Fatalf("new client with nil config failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("nil config client should be disabled")
	}

	client, err = NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new disabled client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled config client should be disabled")
	}

	// 未启用时入队为空操作
	if err := client.EnqueueOrderConfirmationEmail(OrderConfirmationEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("disabled close should be a no-op, got %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("default addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("default concurrency want 10 got %d", cfg.Concurrency)
	}
	if weight, ok := cfg.Queues[DefaultQueue]; !ok || weight != 1 {
		t.Fatalf("default queue weight want 1 got %v", cfg.Queues)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{
		Host:        "redis.internal",
		Port:        6380,
		Concurrency: 4,
		Queues:      map[string]int{"default": 2},
	})
	if opt.Addr != "redis.internal:6380" {
		t.Fatalf("addr want redis.internal:6380 got %s", opt.Addr)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("concurrency want 4 got %d", cfg.Concurrency)
	}
	if cfg.Queues["default"] != 2 {
		t.Fatalf("queue weight want 2 got %v", cfg.Queues)
	}
}
