package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// approvalHandler handles the approval workflow around flagged
// transactions.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approvalService: as}
}

// registerApprovalRoutes registers approval routes nested under a
// specific company.
func registerApprovalRoutes(rg *gin.RouterGroup, as portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(as)

	rg.GET("/transactions/:transaction_id/approvals", h.listApprovals)
	rg.POST("/transactions/:transaction_id/approvals", h.requestApproval)
	rg.POST("/approvals/:approval_id/decision", h.decide)
}

func (h *approvalHandler) listApprovals(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	approvals, err := h.approvalService.ListApprovalsForTransaction(c.Request.Context(), companyID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approvals": dto.ToApprovalResponses(approvals)})
}

func (h *approvalHandler) requestApproval(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.RequestApproval(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToApprovalResponse(approval))
}

func (h *approvalHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	approvalID := c.Param("approval_id")

	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApprovalDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	approval, err := h.approvalService.Decide(c.Request.Context(), companyID, approvalID, req.Approve, req.Notes, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponse(approval))
}
