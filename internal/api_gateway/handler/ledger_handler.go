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
)

// LedgerHandler handles ledger reporting HTTP requests
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(log *slog.Logger, ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        log,
	}
}

// GetSummary handles GET /api/v1/ledger/summary
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	summary, err := h.ledgerService.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate ledger summary",
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		RespondInternalError(c)
		return
	}

	RespondOK(c, SummaryResponse{
		OperatingCash:  summary.OperatingCash,
		TaxReserve:     summary.TaxReserve,
		TotalDisbursed: summary.TotalDisbursed,
	})
}

// ListRecords handles GET /api/v1/ledger/records
func (h *LedgerHandler) ListRecords(c *gin.Context) {
	var query LedgerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := ledger.Filter{
		Direction:    ledger.Direction(query.Direction),
		SourceBucket: ledger.SourceBucket(query.SourceBucket),
		Category:     query.Category,
		Page:         query.Page,
		PageSize:     query.PerPage,
	}
	if query.BeneficiaryID != "" {
		filter.BeneficiaryID, _ = uuid.Parse(query.BeneficiaryID)
	}
	if query.From != "" {
		from, err := time.Parse(dateLayout, query.From)
		if err != nil {
			RespondBadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = from
	}
	if query.To != "" {
		to, err := time.Parse(dateLayout, query.To)
		if err != nil {
			RespondBadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		filter.To = to
	}

	records, total, err := h.ledgerService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list ledger records",
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

	RespondWithPaginatedData(c, 200, responses, query.Page, query.PerPage, int(total))
}

// RecordOperatorEntry handles POST /api/v1/ledger/entries
func (h *LedgerHandler) RecordOperatorEntry(c *gin.Context) {
	var req OperatorEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := service.OperatorEntryInput{
		Direction:    ledger.Direction(req.Direction),
		Amount:       req.Amount,
		Category:     req.Category,
		Description:  req.Description,
		SourceBucket: ledger.SourceBucket(req.SourceBucket),
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			RespondBadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	record, err := h.ledgerService.RecordOperatorEntry(c.Request.Context(), input)
	if err != nil {
		var invalidInput booking.ErrInvalidInput
		if errors.As(err, &invalidInput) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to record operator ledger entry",
			"category", req.Category,
			"error", err,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, toLedgerRecordResponse(record))
}
