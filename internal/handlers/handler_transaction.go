package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction lifecycle.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	detectionService   portssvc.DetectionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, ds portssvc.DetectionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		detectionService:   ds,
	}
}

// registerTransactionRoutes registers transaction routes nested under a
// specific company.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, ds portssvc.DetectionSvcFacade) {
	h := newTransactionHandler(ts, ds)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransaction)
		transactions.PUT("/:transaction_id", h.updateTransaction)
		transactions.DELETE("/:transaction_id", h.deleteTransaction)
		transactions.POST("/:transaction_id/post", h.postTransaction)
		transactions.POST("/:transaction_id/void", h.voidTransaction)
		transactions.GET("/:transaction_id/detection", h.detectTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	companyID := c.Param("company_id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), companyID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), companyID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), companyID, transactionID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), companyID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.VoidTransaction(c.Request.Context(), companyID, transactionID, req.Reason, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// detectTransaction previews the edge-case flags the current draft would
// raise if posted now, without changing any state.
func (h *transactionHandler) detectTransaction(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), companyID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	result, err := h.detectionService.DetectForTransaction(c.Request.Context(), txn)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDetectionResponse(transactionID, result))
}
