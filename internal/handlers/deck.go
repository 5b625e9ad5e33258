package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slideforge/slideforge-backend/internal/middleware"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/services"
	"github.com/slideforge/slideforge-backend/internal/types"
)

type DeckHandler struct {
	log   *logger.Logger
	decks services.DeckService
}

func NewDeckHandler(baseLog *logger.Logger, decks services.DeckService) *DeckHandler {
	return &DeckHandler{
		log:   baseLog.With("handler", "DeckHandler"),
		decks: decks,
	}
}

type generateDeckRequest struct {
	Topic      string `json:"topic" binding:"required"`
	SlideCount int    `json:"slide_count"`
	Audience   string `json:"audience"`
}

func (h *DeckHandler) Generate(c *gin.Context) {
	var req generateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	deck, err := h.decks.Generate(c.Request.Context(), services.GenerateRequest{
		Topic:       req.Topic,
		SlideCount:  req.SlideCount,
		Audience:    req.Audience,
		RequestedBy: c.GetString(middleware.SubjectKey),
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (h *DeckHandler) List(c *gin.Context) {
	decks, err := h.decks.List(c.Request.Context(), 50)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if decks == nil {
		decks = []*types.Deck{}
	}
	RespondOK(c, gin.H{"decks": decks})
}

func (h *DeckHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	deck, trail, err := h.decks.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deck": deck, "events": trail})
}

func (h *DeckHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	data, filename, err := h.decks.Export(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

func (h *DeckHandler) QA(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	report, err := h.decks.RunQA(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}
