package domain

import "time"

// ReasonType tells the balance engine which way a reason moves stock.
type ReasonType string

const (
	ReasonTypeCredit            ReasonType = "CREDIT"
	ReasonTypeDebit             ReasonType = "DEBIT"
	ReasonTypeBalanceAdjustment ReasonType = "BALANCE_ADJUSTMENT"
)

// Valid reports whether t is a known reason type.
func (t ReasonType) Valid() bool {
	switch t {
	case ReasonTypeCredit, ReasonTypeDebit, ReasonTypeBalanceAdjustment:
		return true
	}
	return false
}

// ReasonCategory groups reasons for reporting.
type ReasonCategory string

const (
	ReasonCategoryTransfer          ReasonCategory = "TRANSFER"
	ReasonCategoryAdjustment        ReasonCategory = "ADJUSTMENT"
	ReasonCategoryPhysicalInventory ReasonCategory = "PHYSICAL_INVENTORY"
)

// Valid reports whether c is a known reason category.
func (c ReasonCategory) Valid() bool {
	switch c {
	case ReasonCategoryTransfer, ReasonCategoryAdjustment, ReasonCategoryPhysicalInventory:
		return true
	}
	return false
}

// Reason classifies a movement or a physical count discrepancy.
type Reason struct {
	ID                string
	Name              string
	Description       string
	Type              ReasonType
	Category          ReasonCategory
	IsFreeTextAllowed bool
	CreatedAt         time.Time
}

// IsCredit reports whether the reason increases stock.
func (r *Reason) IsCredit() bool {
	return r != nil && r.Type == ReasonTypeCredit
}

// IsDebit reports whether the reason decreases stock.
func (r *Reason) IsDebit() bool {
	return r != nil && r.Type == ReasonTypeDebit
}

// Well-known physical inventory reason ids. They are seeded by the initial migration.
const (
	PhysicalCreditReasonID  = "00000000-0000-0000-0000-000000000001"
	PhysicalDebitReasonID   = "00000000-0000-0000-0000-000000000002"
	PhysicalBalanceReasonID = "00000000-0000-0000-0000-000000000003"
)

// PhysicalCredit is the reason attached to a count that found more stock than expected.
func PhysicalCredit() *Reason {
	return &Reason{
		ID:          PhysicalCreditReasonID,
		Name:        "Physical credit",
		Description: "Physical count found more stock than the running balance",
		Type:        ReasonTypeCredit,
		Category:    ReasonCategoryPhysicalInventory,
	}
}

// PhysicalDebit is the reason attached to a count that found less stock than expected.
func PhysicalDebit() *Reason {
	return &Reason{
		ID:          PhysicalDebitReasonID,
		Name:        "Physical debit",
		Description: "Physical count found less stock than the running balance",
		Type:        ReasonTypeDebit,
		Category:    ReasonCategoryPhysicalInventory,
	}
}

// PhysicalBalance is the reason attached to a count that matched the running balance.
func PhysicalBalance() *Reason {
	return &Reason{
		ID:          PhysicalBalanceReasonID,
		Name:        "Physical balance",
		Description: "Physical count matched the running balance",
		Type:        ReasonTypeBalanceAdjustment,
		Category:    ReasonCategoryPhysicalInventory,
	}
}

// IsPhysicalReasonID reports whether id names one of the physical inventory reasons.
func IsPhysicalReasonID(id string) bool {
	switch id {
	case PhysicalCreditReasonID, PhysicalDebitReasonID, PhysicalBalanceReasonID:
		return true
	}
	return false
}
