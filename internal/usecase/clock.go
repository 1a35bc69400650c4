package usecase

import (
	"context"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type noopMetrics struct{}

func (noopMetrics) ObserveLineItem(*domain.LineItem) {}
func (noopMetrics) ObserveRecordError(error) {}
func (noopMetrics) ObserveRecordDuration(time.Duration) {}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}
