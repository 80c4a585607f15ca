package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hallowgraph/backend/internal/services"
)

type GraphHandler struct {
	views *services.GraphViewService
}

func NewGraphHandler(views *services.GraphViewService) *GraphHandler {
	return &GraphHandler{views: views}
}

func (h *GraphHandler) Neighborhood(c *gin.Context) {
	name := c.Param("name")
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	view, err := h.views.Neighborhood(c.Request.Context(), name, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toElements(view))
}

func (h *GraphHandler) HouseFilter(c *gin.Context) {
	raw := c.Query("houses")
	var houses []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			houses = append(houses, h)
		}
	}
	if len(houses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "houses query parameter required"})
		return
	}
	view, err := h.views.HouseSubgraph(c.Request.Context(), houses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toElements(view))
}

// toElements wraps a view in the cytoscape envelope the front end
// renders: every node and edge nested under a "data" key.
func toElements(view *services.GraphView) gin.H {
	nodes := make([]gin.H, 0, len(view.Nodes))
	for _, n := range view.Nodes {
		nodes = append(nodes, gin.H{"data": n})
	}
	edges := make([]gin.H, 0, len(view.Edges))
	for _, e := range view.Edges {
		edges = append(edges, gin.H{"data": e})
	}
	return gin.H{"elements": gin.H{"nodes": nodes, "edges": edges}}
}
