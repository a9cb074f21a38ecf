package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/models"
)

type groupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func newGroupResponse(g *models.Group) groupResponse {
	return groupResponse{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

type GroupHandler struct {
	groups *group.Service
	log    *zap.Logger
}

func NewGroupHandler(groups *group.Service, log *zap.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, log: log}
}

func (h *GroupHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/groups")
	g.GET("/", h.list)
	g.GET("/:group_id/", h.get)
}

func (h *GroupHandler) list(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, newGroupResponse(g))
	}
	c.JSON(http.StatusOK, out)
}

func (h *GroupHandler) get(c *gin.Context) {
	id, ok := parseID(c, "group_id")
	if !ok {
		NotFound(c)
		return
	}

	g, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(g))
}
