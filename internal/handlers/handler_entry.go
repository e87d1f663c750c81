package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

// entryHandler handles HTTP requests related to journal entries and items.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers routes related to journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/items", h.addItem)
		entries.DELETE("/:entryID/items/:itemID", h.removeItem)
		entries.POST("/:entryID/post", h.postEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates an empty draft entry; the next sequential reference is assigned automatically
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to create entry", slog.String("journal_id", req.JournalID))

	entry, err := h.entryService.CreateDraftEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create entry")
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its items
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// addItem godoc
// @Summary Add an item to a draft entry
// @Description Appends a ledger line and recomputes the affected account's balance atomically
// @Tags entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param item body dto.AddItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input format or negative amount"
// @Failure 404 {object} map[string]string "Entry or account not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Router /entries/{entryID}/items [post]
func (h *entryHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to add item", slog.String("entry_id", entryID), slog.String("account_id", req.AccountID))

	item, err := h.entryService.AddItem(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "add item")
		return
	}

	logger.Info("Item added", slog.String("entry_id", entryID), slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// removeItem godoc
// @Summary Remove an item from a draft entry
// @Description Deletes a ledger line and recomputes the affected account's balance atomically
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry or item not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Router /entries/{entryID}/items/{itemID} [delete]
func (h *entryHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	itemID := c.Param("itemID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to remove item", slog.String("entry_id", entryID), slog.String("item_id", itemID))

	if err := h.entryService.RemoveItem(c.Request.Context(), entryID, itemID, userID); err != nil {
		respondServiceError(c, logger, err, "remove item")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a balanced draft entry
// @Description Transitions a balanced draft entry to posted; posting an already-posted entry is a no-op
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry is not balanced"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to post entry", slog.String("entry_id", entryID))

	entry, err := h.entryService.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
