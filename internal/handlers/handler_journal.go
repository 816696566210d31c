package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/dto"
)

// journalHandler exposes the immutable journal: listing, per-transaction
// lookup and chain verification.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal routes nested under a specific
// company.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js)

	journal := rg.Group("/journal")
	{
		journal.GET("/entries", h.listEntries)
		journal.GET("/verify", h.verifyChain)
	}
	rg.GET("/transactions/:transaction_id/journal-entries", h.entriesForTransaction)
}

func (h *journalHandler) listEntries(c *gin.Context) {
	companyID := c.Param("company_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.journalService.ListEntries(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToJournalEntryResponses(entries)})
}

func (h *journalHandler) entriesForTransaction(c *gin.Context) {
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	entries, err := h.journalService.EntriesForTransaction(c.Request.Context(), companyID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToJournalEntryResponses(entries)})
}

func (h *journalHandler) verifyChain(c *gin.Context) {
	companyID := c.Param("company_id")

	result, err := h.journalService.VerifyChain(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
