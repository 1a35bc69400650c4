package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()))
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientWithConfigAppliesTuning(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClientWithConfig(context.Background(), ClientConfig{
		URL:         fmt.Sprintf("redis://%s/2", s.Addr()),
		PoolSize:    7,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	opts := client.Options()
	if opts.PoolSize != 7 {
		t.Fatalf("expected pool size 7, got %d", opts.PoolSize)
	}
	if opts.DialTimeout != 2*time.Second {
		t.Fatalf("expected dial timeout 2s, got %v", opts.DialTimeout)
	}
	if opts.DB != 2 {
		t.Fatalf("expected db 2 from URL, got %d", opts.DB)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url)
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}
