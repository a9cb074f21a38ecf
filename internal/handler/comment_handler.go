package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/models"
)

type commentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Post    uint      `json:"post"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		Created: c.Created,
		Post:    c.PostID,
	}
}

type CommentHandler struct {
	comments *comment.Service
	log      *zap.Logger
}

func NewCommentHandler(comments *comment.Service, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

func (h *CommentHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/posts/:post_id/comments")
	g.GET("/", h.list)
	g.POST("/", h.create)
	g.GET("/:comment_id/", h.get)
	g.PUT("/:comment_id/", h.update)
	g.PATCH("/:comment_id/", h.partialUpdate)
	g.DELETE("/:comment_id/", h.delete)
}

// ids читает post_id и, если нужно, comment_id из пути
func ids(c *gin.Context, withComment bool) (postID, commentID uint, ok bool) {
	postID, ok = parseID(c, "post_id")
	if !ok || !withComment {
		return postID, 0, ok
	}
	commentID, ok = parseID(c, "comment_id")
	return postID, commentID, ok
}

func (h *CommentHandler) list(c *gin.Context) {
	postID, _, ok := ids(c, false)
	if !ok {
		NotFound(c)
		return
	}

	comments, err := h.comments.List(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, newCommentResponse(cm))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentHandler) get(c *gin.Context) {
	postID, commentID, ok := ids(c, true)
	if !ok {
		NotFound(c)
		return
	}

	cm, err := h.comments.Get(c.Request.Context(), postID, commentID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(cm))
}

// readText returns the text field; author and post in the body are ignored.
func readText(c *gin.Context) (*string, error) {
	var body rawBody
	if err := bindJSON(c, &body); err != nil {
		return nil, err
	}

	verr := &apperr.Error{Kind: apperr.KindValidation}
	text := body.str("text", verr)
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return text, nil
}

func (h *CommentHandler) create(c *gin.Context) {
	postID, _, ok := ids(c, false)
	if !ok {
		NotFound(c)
		return
	}

	text, err := readText(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	cm, err := h.comments.Create(c.Request.Context(), postID, text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(cm))
}

func (h *CommentHandler) update(c *gin.Context) {
	h.save(c, false)
}

func (h *CommentHandler) partialUpdate(c *gin.Context) {
	h.save(c, true)
}

func (h *CommentHandler) save(c *gin.Context, partial bool) {
	postID, commentID, ok := ids(c, true)
	if !ok {
		NotFound(c)
		return
	}

	text, err := readText(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	cm, err := h.comments.Update(c.Request.Context(), postID, commentID, text, partial)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(cm))
}

func (h *CommentHandler) delete(c *gin.Context) {
	postID, commentID, ok := ids(c, true)
	if !ok {
		NotFound(c)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), postID, commentID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
