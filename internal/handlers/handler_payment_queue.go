package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/obrasoft/obra-backoffice/internal/core/ports/services"
	"github.com/obrasoft/obra-backoffice/internal/middleware"
)

// paymentQueueHandler handles HTTP requests for the unified payment queue.
type paymentQueueHandler struct {
	queueService portssvc.PaymentQueueSvcFacade
}

// newPaymentQueueHandler creates a new paymentQueueHandler.
func newPaymentQueueHandler(qs portssvc.PaymentQueueSvcFacade) *paymentQueueHandler {
	return &paymentQueueHandler{
		queueService: qs,
	}
}

// registerPaymentQueueRoutes registers the payment queue route.
func registerPaymentQueueRoutes(rg *gin.RouterGroup, queueService portssvc.PaymentQueueSvcFacade) {
	h := newPaymentQueueHandler(queueService)

	rg.GET("/payment-queue", h.listQueue)
}

// listQueue godoc
// @Summary List the unified payment queue
// @Description Merges every APPROVED payable into one queue ordered by reference date, then kind priority
// @Tags payment-queue
// @Produce  json
// @Success 200 {object} dto.PaymentQueueResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read payment queue"
// @Security BearerAuth
// @Router /payment-queue [get]
func (h *paymentQueueHandler) listQueue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.queueService.ListQueue(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read payment queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read payment queue"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
