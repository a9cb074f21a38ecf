package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type userResponse struct {
	Email    string `json:"email"`
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{Email: u.Email, ID: u.ID, Username: u.Username}
}

type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type refreshRequest struct {
	Refresh *string `json:"refresh"`
}

type verifyRequest struct {
	Token *string `json:"token"`
}

type UserHandler struct {
	users    *user.Service
	throttle gin.HandlerFunc
	log      *zap.Logger
}

// NewUserHandler wires registration and the token routes; throttle guards
// token creation and may be nil.
func NewUserHandler(users *user.Service, throttle gin.HandlerFunc, log *zap.Logger) *UserHandler {
	if throttle == nil {
		throttle = func(c *gin.Context) { c.Next() }
	}
	return &UserHandler{users: users, throttle: throttle, log: log}
}

func (h *UserHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/users/", h.register)
	r.GET("/users/me/", h.me)

	jwt := r.Group("/jwt")
	jwt.POST("/create/", h.throttle, h.createToken)
	jwt.POST("/refresh/", h.refreshToken)
	jwt.POST("/verify/", h.verifyToken)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	u, err := h.users.Register(c.Request.Context(), user.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(u))
}

func (h *UserHandler) me(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(u))
}

func (h *UserHandler) createToken(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	pair, err := h.users.ObtainTokens(c.Request.Context(), user.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *UserHandler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	access, err := h.users.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *UserHandler) verifyToken(c *gin.Context) {
	var req verifyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.users.Verify(req.Token); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
