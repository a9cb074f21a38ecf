package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/models"
)

type followResponse struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Following string `json:"following"`
}

func newFollowResponse(f *models.Follow) followResponse {
	return followResponse{ID: f.ID, User: f.User.Username, Following: f.Following.Username}
}

type FollowHandler struct {
	follows *follow.Service
	log     *zap.Logger
}

func NewFollowHandler(follows *follow.Service, log *zap.Logger) *FollowHandler {
	return &FollowHandler{follows: follows, log: log}
}

func (h *FollowHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/follow")
	g.GET("/", h.list)
	g.POST("/", h.create)
}

func (h *FollowHandler) list(c *gin.Context) {
	follows, err := h.follows.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]followResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, newFollowResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FollowHandler) create(c *gin.Context) {
	var body rawBody
	if err := bindJSON(c, &body); err != nil {
		respondError(c, h.log, err)
		return
	}

	verr := &apperr.Error{Kind: apperr.KindValidation}
	var following *string
	if !body.isNull("following") {
		following = body.str("following", verr)
	}
	if len(verr.Fields) > 0 {
		respondError(c, h.log, verr)
		return
	}

	f, err := h.follows.Create(c.Request.Context(), following)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Location", baseURL(c)+c.Request.URL.Path)
	c.JSON(http.StatusCreated, newFollowResponse(f))
}
