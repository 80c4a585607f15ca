package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hallowgraph/backend/internal/services"
)

type CharacterHandler struct {
	views *services.GraphViewService
}

func NewCharacterHandler(views *services.GraphViewService) *CharacterHandler {
	return &CharacterHandler{views: views}
}

func (h *CharacterHandler) List(c *gin.Context) {
	chars, err := h.views.Characters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chars)
}

func (h *CharacterHandler) Search(c *gin.Context) {
	q := c.Query("q")
	names, err := h.views.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}
