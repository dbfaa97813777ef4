package api_gateway

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway/handler"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/api_gateway/middleware"
)

// setupRouter configures the gin router with all middleware and routes
func setupRouter(logger *slog.Logger, router *gin.Engine, bookingHandler *handler.BookingHandler, ledgerHandler *handler.LedgerHandler) {
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.GET("/:id/ledger", bookingHandler.GetBookingLedger)
			bookings.POST("/:id/payment-proof", bookingHandler.AttachPaymentProof)
			bookings.POST("/:id/confirm", bookingHandler.Confirm)
			bookings.POST("/:id/reject", bookingHandler.Reject)
			bookings.POST("/:id/change-room", bookingHandler.ChangeRoom)
			bookings.POST("/:id/disburse", bookingHandler.Disburse)
			bookings.POST("/:id/checkout", bookingHandler.ManualCheckout)
		}

		ledgerRoutes := v1.Group("/ledger")
		{
			ledgerRoutes.GET("/summary", ledgerHandler.GetSummary)
			ledgerRoutes.GET("/records", ledgerHandler.ListRecords)
			ledgerRoutes.POST("/entries", ledgerHandler.RecordOperatorEntry)
		}
	}
}
