package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/stockledger/internal/usecase"
)

// Consumption outcomes reported to the Observer.
const (
	OutcomeRecorded  = "recorded"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MovementRecorder records a stock movement.
type MovementRecorder interface {
	RecordMovement(ctx context.Context, input usecase.RecordMovementInput) (*usecase.RecordMovementResult, error)
}

// Observer receives per-message outcomes, e.g. for metrics.
type Observer interface {
	MessageConsumed(outcome string)
}

// NewMovementReader creates a consumer group reader for topic.
func NewMovementReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// MovementConsumer records movements read from Kafka.
//
// Offsets are committed only after a message is handled. Messages that can
// never succeed are logged and skipped. Messages carrying an event_id are
// deduplicated through the idempotency store so redelivery does not append
// the same movement twice.
type MovementConsumer struct {
	reader         MessageReader
	recorder       MovementRecorder
	idempotency    usecase.IdempotencyStore
	idempotencyTTL time.Duration
	observer       Observer
	logger         zerolog.Logger

	maxRetries      uint64
	initialInterval time.Duration
}

// ConsumerConfig configures a MovementConsumer.
type ConsumerConfig struct {
	Reader         MessageReader
	Recorder       MovementRecorder
	Idempotency    usecase.IdempotencyStore // optional
	IdempotencyTTL time.Duration
	Observer       Observer // optional
	Logger         zerolog.Logger
}

// NewMovementConsumer creates a new MovementConsumer.
func NewMovementConsumer(cfg ConsumerConfig) *MovementConsumer {
	if cfg.IdempotencyTTL == 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}

	return &MovementConsumer{
		reader:          cfg.Reader,
		recorder:        cfg.Recorder,
		idempotency:     cfg.Idempotency,
		idempotencyTTL:  cfg.IdempotencyTTL,
		observer:        cfg.Observer,
		logger:          cfg.Logger.With().Str("component", "movement_consumer").Logger(),
		maxRetries:      5,
		initialInterval: 100 * time.Millisecond,
	}
}

// Run consumes messages until ctx is cancelled.
func (c *MovementConsumer) Run(ctx context.Context) error {
	c.logger.Info().Msg("movement consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info().Msg("movement consumer shutting down")
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("error fetching message")
			continue
		}

		outcome := c.handle(ctx, msg)
		c.observer.MessageConsumed(outcome)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error().Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("failed to commit message")
		}
	}
}

func (c *MovementConsumer) handle(ctx context.Context, msg kafka.Message) string {
	log := c.logger.With().
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Logger()

	input, err := DecodeMovement(msg.Value)
	if err != nil {
		log.Warn().Err(err).Bytes("raw_value", msg.Value).Msg("skipping undecodable movement")
		return OutcomeRejected
	}

	log = log.With().Str("stock_card_id", input.StockCardID).Str("event_id", input.EventID).Logger()

	key := ""
	if input.EventID != "" && c.idempotency != nil {
		key = "movement:" + input.EventID
		exists, _, err := c.idempotency.CheckAndSet(ctx, key, nil, c.idempotencyTTL)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency check failed, recording without it")
			key = ""
		} else if exists {
			log.Info().Msg("duplicate movement skipped")
			return OutcomeDuplicate
		}
	}

	result, err := c.record(ctx, input)
	if err != nil {
		if key != "" {
			if relErr := c.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				log.Warn().Err(relErr).Msg("failed to release idempotency key")
			}
		}

		if isPermanent(err) {
			log.Warn().Err(err).Msg("movement rejected")
			return OutcomeRejected
		}

		log.Error().Err(err).Msg("movement failed after retries")
		return OutcomeFailed
	}

	if key != "" {
		if body, err := json.Marshal(lineItemIDs(result)); err == nil {
			if err := c.idempotency.Update(ctx, key, body, c.idempotencyTTL); err != nil {
				log.Warn().Err(err).Msg("failed to store idempotency result")
			}
		}
	}

	return OutcomeRecorded
}

func (c *MovementConsumer) record(ctx context.Context, input usecase.RecordMovementInput) (*usecase.RecordMovementResult, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval

	var result *usecase.RecordMovementResult
	err := backoff.Retry(func() error {
		var err error
		result, err = c.recorder.RecordMovement(ctx, input)
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx))

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return nil, permanent.Err
	}

	return result, err
}

func lineItemIDs(result *usecase.RecordMovementResult) []string {
	ids := make([]string, 0, len(result.LineItems))
	for _, item := range result.LineItems {
		ids = append(ids, item.ID)
	}
	return ids
}

// Close closes the underlying reader.
func (c *MovementConsumer) Close() error {
	return c.reader.Close()
}

type nopObserver struct{}

func (nopObserver) MessageConsumed(string) {}
