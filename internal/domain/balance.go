package domain

import (
	"fmt"
	"strings"
)

// NegativeStockPolicy decides whether a debit may drive stock on hand below zero.
type NegativeStockPolicy string

const (
	NegativeStockAllow  NegativeStockPolicy = "allow"
	NegativeStockReject NegativeStockPolicy = "reject"
)

// ParseNegativeStockPolicy parses a policy name, case-insensitively.
func ParseNegativeStockPolicy(s string) (NegativeStockPolicy, error) {
	switch NegativeStockPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case NegativeStockAllow:
		return NegativeStockAllow, nil
	case NegativeStockReject:
		return NegativeStockReject, nil
	default:
		return "", fmt.Errorf("unknown negative stock policy %q", s)
	}
}

// Check validates a computed stock on hand against the policy.
func (p NegativeStockPolicy) Check(stockOnHand int) error {
	if p == NegativeStockReject && stockOnHand < 0 {
		return fmt.Errorf("%w: would be %d", ErrNegativeStockOnHand, stockOnHand)
	}
	return nil
}

// ClassifyPhysicalCount returns the reason explaining the difference between a
// physical count and the balance that preceded it.
func ClassifyPhysicalCount(quantity, previousStockOnHand int) *Reason {
	switch {
	case quantity > previousStockOnHand:
		return PhysicalCredit()
	case quantity < previousStockOnHand:
		return PhysicalDebit()
	default:
		return PhysicalBalance()
	}
}

// ComputeStockOnHand returns the balance after item given the balance before it.
// A physical count replaces the balance, credits add and debits subtract.
func ComputeStockOnHand(item *LineItem, previousStockOnHand int) (int, error) {
	switch item.Kind {
	case KindPhysicalCount:
		return item.Quantity, nil
	case KindCredit:
		return previousStockOnHand + item.Quantity, nil
	case KindDebit:
		return previousStockOnHand - item.Quantity, nil
	default:
		return 0, fmt.Errorf("%w: line item %s has kind %s", ErrInvalidShape, item.ID, item.Kind)
	}
}

// ApplyLineItem computes the balance after item, checks it against policy and
// records the outcome on the item: the before/after snapshot and, for physical
// counts, the classified reason. The item is left untouched on error.
func ApplyLineItem(item *LineItem, previousStockOnHand int, policy NegativeStockPolicy) (int, error) {
	stockOnHand, err := ComputeStockOnHand(item, previousStockOnHand)
	if err != nil {
		return 0, err
	}

	if err := policy.Check(stockOnHand); err != nil {
		return 0, err
	}

	if item.IsPhysicalCount() {
		item.Reason = ClassifyPhysicalCount(item.Quantity, previousStockOnHand)
	}

	item.PreviousStockOnHand = previousStockOnHand
	item.StockOnHand = stockOnHand

	return stockOnHand, nil
}

// ReplayStep is the outcome of folding one line item.
type ReplayStep struct {
	LineItemID          string
	Sequence            int64
	Kind                MovementKind
	Quantity            int
	PreviousStockOnHand int
	StockOnHand         int
	Reason              *Reason
}

// ReplayResult is the outcome of folding a line item sequence.
type ReplayResult struct {
	InitialStockOnHand int
	StockOnHand        int
	Steps              []ReplayStep
}

// Replay folds items left to right starting from initial. It does not mutate
// the items: physical count reasons are reported on the steps instead.
func Replay(items []*LineItem, initial int, policy NegativeStockPolicy) (*ReplayResult, error) {
	result := &ReplayResult{
		InitialStockOnHand: initial,
		StockOnHand:        initial,
		Steps:              make([]ReplayStep, 0, len(items)),
	}

	for _, item := range items {
		previous := result.StockOnHand

		stockOnHand, err := ComputeStockOnHand(item, previous)
		if err != nil {
			return nil, err
		}

		if err := policy.Check(stockOnHand); err != nil {
			return nil, fmt.Errorf("line item %s: %w", item.ID, err)
		}

		reason := item.Reason
		if item.IsPhysicalCount() {
			reason = ClassifyPhysicalCount(item.Quantity, previous)
		}

		result.Steps = append(result.Steps, ReplayStep{
			LineItemID:          item.ID,
			Sequence:            item.Sequence,
			Kind:                item.Kind,
			Quantity:            item.Quantity,
			PreviousStockOnHand: previous,
			StockOnHand:         stockOnHand,
			Reason:              reason,
		})
		result.StockOnHand = stockOnHand
	}

	return result, nil
}
