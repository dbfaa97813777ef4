package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway/middleware"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway/service"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/property"
)

const dateLayout = "2006-01-02"

// BookingHandler handles booking lifecycle HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
	ledgerService  service.LedgerService
	logger         *slog.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(log *slog.Logger, bookingService service.BookingService, ledgerService service.LedgerService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		ledgerService:  ledgerService,
		logger:         log,
	}
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	tenantID, _ := uuid.Parse(req.TenantID)
	propertyID, _ := uuid.Parse(req.PropertyID)
	roomID, _ := uuid.Parse(req.RoomTypeID)

	checkInDate, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		RespondBadRequest(c, "Invalid check_in_date, expected YYYY-MM-DD")
		return
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), tenantID, propertyID, roomID, checkInDate)
	if err != nil {
		h.logger.Error("Failed to create booking",
			"tenant_id", req.TenantID,
			"property_id", req.PropertyID,
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		h.respondDomainError(c, err)
		return
	}

	RespondCreated(c, toBookingResponse(b))
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	b, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, toBookingResponse(b))
}

// ListBookings handles GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := booking.Filter{
		Status:   booking.Status(query.Status),
		Page:     query.Page,
		PageSize: query.PerPage,
	}
	if query.TenantID != "" {
		filter.TenantID, _ = uuid.Parse(query.TenantID)
	}
	if query.PropertyID != "" {
		filter.PropertyID, _ = uuid.Parse(query.PropertyID)
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list bookings",
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		RespondInternalError(c)
		return
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}

	RespondWithPaginatedData(c, 200, responses, query.Page, query.PerPage, int(total))
}

// AttachPaymentProof handles POST /api/v1/bookings/:id/payment-proof
func (h *BookingHandler) AttachPaymentProof(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	var req AttachPaymentProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	b, err := h.bookingService.AttachPaymentProof(c.Request.Context(), id, req.ProofRef)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, toBookingResponse(b))
}

// Confirm handles POST /api/v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Confirm(c.Request.Context(), id, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, toBookingResponse(b))
}

// Reject handles POST /api/v1/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	b, err := h.bookingService.Reject(c.Request.Context(), id)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, toBookingResponse(b))
}

// ChangeRoom handles POST /api/v1/bookings/:id/change-room
func (h *BookingHandler) ChangeRoom(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	var req ChangeRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}
	roomID, _ := uuid.Parse(req.RoomTypeID)

	b, priceDelta, err := h.bookingService.ChangeRoom(c.Request.Context(), id, roomID)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, ChangeRoomResponse{
		Booking:    toBookingResponse(b),
		PriceDelta: priceDelta,
	})
}

// Disburse handles POST /api/v1/bookings/:id/disburse
func (h *BookingHandler) Disburse(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	b, records, err := h.bookingService.Disburse(c.Request.Context(), id, middleware.GetCorrelationID(c))
	if err != nil {
		h.logger.Error("Failed to disburse booking",
			"booking_id", id,
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		h.respondDomainError(c, err)
		return
	}

	recordResponses := make([]LedgerRecordResponse, 0, len(records))
	for _, r := range records {
		recordResponses = append(recordResponses, toLedgerRecordResponse(r))
	}

	RespondOK(c, DisbursementResponse{
		Booking: toBookingResponse(b),
		Records: recordResponses,
	})
}

// ManualCheckout handles POST /api/v1/bookings/:id/checkout
func (h *BookingHandler) ManualCheckout(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	var req ManualCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	b, err := h.bookingService.ManualCheckout(c.Request.Context(), id, booking.CheckoutReason(req.Reason), middleware.GetCorrelationID(c))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	RespondOK(c, toBookingResponse(b))
}

// GetBookingLedger handles GET /api/v1/bookings/:id/ledger
func (h *BookingHandler) GetBookingLedger(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	// Missing bookings return an empty list rather than 404; the ledger is
	// queried by reference, not ownership.
	records, err := h.ledgerService.ListByBooking(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list booking ledger records",
			"booking_id", id,
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		RespondInternalError(c)
		return
	}

	responses := make([]LedgerRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toLedgerRecordResponse(r))
	}

	RespondOK(c, responses)
}

func (h *BookingHandler) parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid booking ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps domain errors onto HTTP status codes. Transitions
// rejected by the state machine are 422 so clients can tell a lifecycle
// violation apart from a malformed request.
func (h *BookingHandler) respondDomainError(c *gin.Context, err error) {
	var (
		notFound     booking.ErrBookingNotFound
		propNotFound property.ErrPropertyNotFound
		roomNotFound property.ErrRoomNotFound
		transition   booking.ErrInvalidTransition
		invalidInput booking.ErrInvalidInput
		concurrent   booking.ErrConcurrentModification
	)

	switch {
	case errors.As(err, &notFound):
		RespondNotFound(c, err.Error())
	case errors.As(err, &propNotFound):
		RespondNotFound(c, err.Error())
	case errors.As(err, &roomNotFound):
		RespondNotFound(c, err.Error())
	case errors.As(err, &transition):
		RespondUnprocessable(c, err.Error())
	case errors.As(err, &invalidInput):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &concurrent):
		RespondConflict(c, "Booking was modified concurrently, please retry")
	default:
		h.logger.Error("Unhandled service error",
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		RespondInternalError(c)
	}
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		TenantID:        b.TenantID.String(),
		PropertyID:      b.PropertyID.String(),
		RoomTypeID:      b.RoomTypeID.String(),
		RoomTypeLabel:   b.RoomTypeLabel,
		CheckInDate:     b.CheckInDate.Format(dateLayout),
		CheckOutDate:    b.CheckOutDate.Format(dateLayout),
		BasePrice:       b.BasePrice,
		TaxAmount:       b.TaxAmount,
		PlatformFee:     b.PlatformFee,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentProofRef: b.PaymentProofRef,
		IsDisbursed:     b.IsDisbursed,
		IsCheckedOut:    b.IsCheckedOut,
		CheckoutReason:  string(b.CheckoutReason),
		RefundAmount:    b.RefundAmount,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

func toLedgerRecordResponse(r *ledger.Record) LedgerRecordResponse {
	resp := LedgerRecordResponse{
		ID:            r.ID.String(),
		BeneficiaryID: r.BeneficiaryID.String(),
		Direction:     string(r.Direction),
		Amount:        r.Amount,
		Category:      r.Category,
		Description:   r.Description,
		SourceBucket:  string(r.SourceBucket),
		Date:          r.Date.Format(dateLayout),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.ReferenceBookingID != uuid.Nil {
		resp.ReferenceBookingID = r.ReferenceBookingID.String()
	}
	return resp
}
