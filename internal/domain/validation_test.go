package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestValidateQuantity(t *testing.T) {
	t.Parallel()

	if err := ValidateQuantity(intPtr(0)); err != nil {
		t.Fatalf("zero must be accepted, got %v", err)
	}
	if err := ValidateQuantity(nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for missing quantity, got %v", err)
	}
	if err := ValidateQuantity(intPtr(-1)); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative quantity, got %v", err)
	}
	if err := ValidateQuantity(intPtr(MaxQuantity + 1)); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity above maximum, got %v", err)
	}
}

func TestValidateActorID(t *testing.T) {
	t.Parallel()

	if err := ValidateActorID("9f1c2b9e-1f6e-4a53-9d7b-3f8f0f6a4e21"); err != nil {
		t.Fatalf("expected valid UUID, got %v", err)
	}
	if err := ValidateActorID("alice"); !errors.Is(err, ErrInvalidActorID) {
		t.Fatalf("expected ErrInvalidActorID, got %v", err)
	}
}

func TestValidateFreeText(t *testing.T) {
	t.Parallel()

	ok := map[string]string{"signature": "J. Doe", "document_number": ""}
	if err := ValidateFreeText(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	long := map[string]string{"reason_free_text": strings.Repeat("x", MaxFreeTextLength+1)}
	if err := ValidateFreeText(long); !errors.Is(err, ErrInvalidFreeText) {
		t.Fatalf("expected ErrInvalidFreeText, got %v", err)
	}
}

func TestValidateReason(t *testing.T) {
	t.Parallel()

	if err := ValidateReason(&Reason{Name: "Transfer In", Type: ReasonTypeCredit, Category: ReasonCategoryTransfer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateReason(&Reason{Name: "  ", Type: ReasonTypeCredit}); !errors.Is(err, ErrInvalidReasonName) {
		t.Fatalf("expected ErrInvalidReasonName, got %v", err)
	}
	if err := ValidateReason(&Reason{Name: "Odd", Type: "SIDEWAYS"}); !errors.Is(err, ErrInvalidReasonType) {
		t.Fatalf("expected ErrInvalidReasonType, got %v", err)
	}
}

func TestValidateNodeAndStockCard(t *testing.T) {
	t.Parallel()

	if err := ValidateNode(&Node{Code: "WH-A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateNode(&Node{Code: ""}); !errors.Is(err, ErrInvalidNodeCode) {
		t.Fatalf("expected ErrInvalidNodeCode, got %v", err)
	}

	card := &StockCard{FacilityID: "f", ProgramID: "p"}
	if err := ValidateStockCard(card); !errors.Is(err, ErrInvalidStockCardID) {
		t.Fatalf("expected ErrInvalidStockCardID, got %v", err)
	}
	card.OrderableID = "o"
	if err := ValidateStockCard(card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-03-01", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: " 2026-03-01 ", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2026-03-01T10:30:00+02:00", want: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
		{in: "", wantErr: true},
		{in: "01/03/2026", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOccurredDate) {
				t.Fatalf("ParseDate(%q): expected ErrInvalidOccurredDate, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
