package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hallowgraph/backend/internal/services"
)

type FeatureHandler struct {
	features *services.FeatureService
}

func NewFeatureHandler(features *services.FeatureService) *FeatureHandler {
	return &FeatureHandler{features: features}
}

func (h *FeatureHandler) PersonFeatures(c *gin.Context) {
	name := c.Param("name")
	switch c.DefaultQuery("set", "relations") {
	case "survival":
		f, err := h.features.PersonSurvival(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if f == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
			return
		}
		c.JSON(http.StatusOK, f)
	default:
		f, err := h.features.PersonVector(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if f == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

func (h *FeatureHandler) Export(c *gin.Context) {
	rows, err := h.features.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *FeatureHandler) Predict(c *gin.Context) {
	var req struct {
		Name     string   `json:"name"`
		Friends  []string `json:"friends"`
		Enemies  []string `json:"enemies"`
		Family   []string `json:"family"`
		Romances []string `json:"romances"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	vec, err := h.features.AdhocVector(c.Request.Context(), services.AdhocInput{
		Name:     req.Name,
		Friends:  req.Friends,
		Enemies:  req.Enemies,
		Family:   req.Family,
		Romances: req.Romances,
	})
	if err != nil {
		if errors.Is(err, services.ErrInsufficientInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "at least one relationship name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vector": vec})
}
