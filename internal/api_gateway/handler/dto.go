package handler

// CreateBookingRequest represents a request to open a new booking
type CreateBookingRequest struct {
	TenantID    string `json:"tenant_id" binding:"required,uuid"`
	PropertyID  string `json:"property_id" binding:"required,uuid"`
	RoomTypeID  string `json:"room_type_id" binding:"required,uuid"`
	CheckInDate string `json:"check_in_date" binding:"required"` // YYYY-MM-DD
}

// AttachPaymentProofRequest carries the tenant's payment proof reference
type AttachPaymentProofRequest struct {
	ProofRef string `json:"proof_ref" binding:"required"`
}

// ChangeRoomRequest represents a request to swap the booked room type
type ChangeRoomRequest struct {
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
}

// ManualCheckoutRequest ends a confirmed rental early with a fault assignment
type ManualCheckoutRequest struct {
	Reason string `json:"reason" binding:"required,oneof=OWNER_FAULT TENANT_FAULT"`
}

// OperatorEntryRequest represents a manually recorded platform ledger line
type OperatorEntryRequest struct {
	Direction    string `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	Category     string `json:"category" binding:"required"`
	Description  string `json:"description,omitempty"`
	SourceBucket string `json:"source_bucket" binding:"required,oneof=OPERATING_CASH PERSONAL_CASH TAX_RESERVE"`
	Date         string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID              string `json:"id"`
	TenantID        string `json:"tenant_id"`
	PropertyID      string `json:"property_id"`
	RoomTypeID      string `json:"room_type_id"`
	RoomTypeLabel   string `json:"room_type_label"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	BasePrice       int64  `json:"base_price"`
	TaxAmount       int64  `json:"tax_amount"`
	PlatformFee     int64  `json:"platform_fee"`
	TotalPrice      int64  `json:"total_price"`
	Status          string `json:"status"`
	PaymentProofRef string `json:"payment_proof_ref,omitempty"`
	IsDisbursed     bool   `json:"is_disbursed"`
	IsCheckedOut    bool   `json:"is_checked_out"`
	CheckoutReason  string `json:"checkout_reason,omitempty"`
	RefundAmount    int64  `json:"refund_amount,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// ChangeRoomResponse carries the updated booking and the price difference
// left for out-of-band reconciliation
type ChangeRoomResponse struct {
	Booking    BookingResponse `json:"booking"`
	PriceDelta int64           `json:"price_delta"`
}

// LedgerRecordResponse represents a ledger record in API responses
type LedgerRecordResponse struct {
	ID                 string `json:"id"`
	BeneficiaryID      string `json:"beneficiary_id"`
	Direction          string `json:"direction"`
	Amount             int64  `json:"amount"`
	Category           string `json:"category"`
	Description        string `json:"description,omitempty"`
	SourceBucket       string `json:"source_bucket,omitempty"`
	ReferenceBookingID string `json:"reference_booking_id,omitempty"`
	Date               string `json:"date"`
	CreatedAt          string `json:"created_at"`
}

// DisbursementResponse carries the disbursed booking and its settlement legs
type DisbursementResponse struct {
	Booking BookingResponse        `json:"booking"`
	Records []LedgerRecordResponse `json:"records"`
}

// SummaryResponse represents the platform financial position
type SummaryResponse struct {
	OperatingCash  int64 `json:"operating_cash"`
	TaxReserve     int64 `json:"tax_reserve"`
	TotalDisbursed int64 `json:"total_disbursed"`
}

// BookingListQuery represents filters for the booking list endpoint
type BookingListQuery struct {
	TenantID   string `form:"tenant_id" binding:"omitempty,uuid"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED REJECTED CHECKED_OUT"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PerPage    int    `form:"per_page,default=10" binding:"min=1,max=100"`
}

// LedgerListQuery represents filters for the ledger record list endpoint
type LedgerListQuery struct {
	BeneficiaryID string `form:"beneficiary_id" binding:"omitempty,uuid"`
	Direction     string `form:"direction" binding:"omitempty,oneof=INCOME EXPENSE"`
	SourceBucket  string `form:"source_bucket" binding:"omitempty,oneof=OPERATING_CASH PERSONAL_CASH TAX_RESERVE"`
	Category      string `form:"category"`
	From          string `form:"from"` // YYYY-MM-DD
	To            string `form:"to"`   // YYYY-MM-DD
	Page          int    `form:"page,default=1" binding:"min=1"`
	PerPage       int    `form:"per_page,default=10" binding:"min=1,max=100"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
