// Package ledger holds the append-only financial record book. Records are
// immutable once written; corrections are made with compensating entries,
// never updates or deletes.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Direction marks a record as money in or money out of the beneficiary.
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// SourceBucket identifies which pool of platform money a record touches.
// Only platform-side records carry a bucket; owner payouts leave it empty.
// Tax collections are fenced off in TAX_RESERVE so remittance obligations
// are never mixed with operating funds.
type SourceBucket string

const (
	BucketOperatingCash SourceBucket = "OPERATING_CASH"
	BucketPersonalCash  SourceBucket = "PERSONAL_CASH"
	BucketTaxReserve    SourceBucket = "TAX_RESERVE"
)

// Well-known categories written by the settlement engine. Reporting
// aggregates match on these exact strings.
const (
	CategoryRentDisbursement = "Pencairan Sewa"
	CategoryServiceFee       = "Service Fee"
	CategoryTax              = "Pajak (PPN/PB1)"
)

// PlatformAccountID is the synthetic beneficiary for platform-owned records:
// service fees, tax reserves, and operator entries.
var PlatformAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Record is one immutable ledger line. BeneficiaryID is the account the
// money belongs to: a property owner for payouts, the platform itself for
// fees and tax reserves.
type Record struct {
	ID                 uuid.UUID    `json:"id"`
	BeneficiaryID      uuid.UUID    `json:"beneficiary_id"`
	Direction          Direction    `json:"direction"`
	Amount             int64        `json:"amount"` // Whole rupiah, always positive
	Category           string       `json:"category"`
	Description        string       `json:"description"`
	SourceBucket       SourceBucket `json:"source_bucket,omitempty"`
	ReferenceBookingID uuid.UUID    `json:"reference_booking_id,omitempty"`
	Date               time.Time    `json:"date"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Summary is the platform-level financial position derived from the ledger.
type Summary struct {
	OperatingCash  int64 `json:"operating_cash"`  // Service fee income minus operating expenses
	TaxReserve     int64 `json:"tax_reserve"`     // Collected tax minus remitted tax
	TotalDisbursed int64 `json:"total_disbursed"` // Lifetime rent payouts to owners
}
