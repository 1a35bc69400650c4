package main

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/infrastructure/config"
	"github.com/iho/stockledger/internal/infrastructure/eventpublisher"
)

func TestServerAddr(t *testing.T) {
	if got := serverAddr("8080"); got != ":8080" {
		t.Fatalf("expected :8080, got %s", got)
	}
}

func TestNewOutboxPublisher_LogsWithoutKafka(t *testing.T) {
	publisher, closeFn := newOutboxPublisher(&config.Config{}, zerolog.Nop())
	defer closeFn()

	if _, ok := publisher.(*eventpublisher.LogPublisher); !ok {
		t.Fatalf("expected log publisher without brokers, got %T", publisher)
	}
}

func TestNewOutboxPublisher_UsesKafkaWithBrokers(t *testing.T) {
	publisher, closeFn := newOutboxPublisher(&config.Config{
		KafkaBrokers:     []string{"localhost:9092"},
		KafkaEventsTopic: "stock.events",
	}, zerolog.Nop())
	defer closeFn()

	if _, ok := publisher.(*eventpublisher.KafkaPublisher); !ok {
		t.Fatalf("expected kafka publisher with brokers, got %T", publisher)
	}
}
