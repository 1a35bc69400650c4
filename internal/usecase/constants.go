package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	defaultPageSize = 20
	maxPageSize     = 100
)

func clampPage(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}

	if limit > maxPageSize {
		return maxPageSize
	}

	return limit
}
