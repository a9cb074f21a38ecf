package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/pagination"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/models"
)

const (
	msgNotAFile      = "The submitted data was not a file. Check the encoding type on the form."
	msgIncorrectType = "Incorrect type. Expected pk value, received %s."
	maxUploadMemory  = 8 << 20
)

type postResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

type PostHandler struct {
	posts *post.Service
	media *media.Storage
	log   *zap.Logger
}

func NewPostHandler(posts *post.Service, mediaStorage *media.Storage, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, media: mediaStorage, log: log}
}

func (h *PostHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/posts")
	g.GET("/", h.list)
	g.POST("/", h.create)
	g.GET("/:post_id/", h.get)
	g.PUT("/:post_id/", h.update)
	g.PATCH("/:post_id/", h.partialUpdate)
	g.DELETE("/:post_id/", h.delete)
}

func (h *PostHandler) render(c *gin.Context, p *models.Post) postResponse {
	out := postResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Group:   p.GroupID,
	}
	if p.Image != "" {
		image := baseURL(c) + h.media.PublicPath(p.Image)
		out.Image = &image
	}
	return out
}

func (h *PostHandler) list(c *gin.Context) {
	params, paginated := pagination.Parse(c.Request.URL.Query())

	posts, total, err := h.posts.List(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, h.render(c, p))
	}

	if !paginated {
		c.JSON(http.StatusOK, out)
		return
	}

	requestURL, err := url.Parse(baseURL(c) + c.Request.URL.RequestURI())
	if err != nil {
		respondError(c, h.log, fmt.Errorf("could not build page links: %w", err))
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(requestURL, params, total, out))
}

func (h *PostHandler) get(c *gin.Context) {
	id, ok := parseID(c, "post_id")
	if !ok {
		NotFound(c)
		return
	}

	p, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, p))
}

func (h *PostHandler) create(c *gin.Context) {
	fields, err := h.readFields(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	p, err := h.posts.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, h.render(c, p))
}

func (h *PostHandler) update(c *gin.Context) {
	h.save(c, false)
}

func (h *PostHandler) partialUpdate(c *gin.Context) {
	h.save(c, true)
}

func (h *PostHandler) save(c *gin.Context, partial bool) {
	id, ok := parseID(c, "post_id")
	if !ok {
		NotFound(c)
		return
	}

	fields, err := h.readFields(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	p, err := h.posts.Update(c.Request.Context(), id, fields, partial)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, p))
}

func (h *PostHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "post_id")
	if !ok {
		NotFound(c)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// readFields принимает JSON или multipart-форму с файлом image.
// Поле author в теле игнорируется.
func (h *PostHandler) readFields(c *gin.Context) (post.Fields, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.readForm(c)
	}

	var body rawBody
	if err := bindJSON(c, &body); err != nil {
		return post.Fields{}, err
	}

	verr := &apperr.Error{Kind: apperr.KindValidation}
	fields := post.Fields{Text: body.str("text", verr)}

	if body.has("group") {
		fields.GroupSet = true
		if !body.isNull("group") {
			fields.Group = parseGroup(body["group"], verr)
		}
	}

	if body.has("image") {
		if body.isNull("image") {
			empty := ""
			fields.Image = &empty
		} else {
			verr.Add("image", msgNotAFile)
		}
	}

	if len(verr.Fields) > 0 {
		return post.Fields{}, verr
	}
	return fields, nil
}

func (h *PostHandler) readForm(c *gin.Context) (post.Fields, error) {
	err := c.Request.ParseMultipartForm(maxUploadMemory)
	if isTooLarge(err) {
		return post.Fields{}, apperr.Validation(apperr.MessageField, msgTooLarge)
	}
	if err != nil {
		return post.Fields{}, apperr.Validation(apperr.MessageField, "Multipart form parse error - "+err.Error())
	}

	var fields post.Fields
	if text, ok := c.GetPostForm("text"); ok {
		fields.Text = &text
	}

	verr := &apperr.Error{Kind: apperr.KindValidation}
	if raw, ok := c.GetPostForm("group"); ok {
		fields.GroupSet = true
		if raw != "" {
			fields.Group = parseGroup(json.RawMessage(strconv.Quote(raw)), verr)
		}
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		fields.SaveImage = func() (string, error) {
			rel, err := h.media.SavePostImage(fh)
			if errors.Is(err, media.ErrNotImage) {
				return "", apperr.Validation("image", media.MsgInvalidImage)
			}
			if err != nil {
				return "", fmt.Errorf("could not save image: %w", err)
			}
			return rel, nil
		}
	case errors.Is(err, http.ErrMissingFile):
		// изображение не прислали
	default:
		return post.Fields{}, fmt.Errorf("could not read image: %w", err)
	}

	if len(verr.Fields) > 0 {
		return post.Fields{}, verr
	}
	return fields, nil
}

// parseGroup accepts a number or a numeric string, like a primary key field.
func parseGroup(raw json.RawMessage, verr *apperr.Error) *uint {
	var n uint64
	if err := json.Unmarshal(raw, &n); err == nil {
		id := uint(n)
		return &id
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
			id := uint(n)
			return &id
		}
		verr.Add("group", fmt.Sprintf(msgIncorrectType, "str"))
		return nil
	}

	verr.Add("group", fmt.Sprintf(msgIncorrectType, jsonTypeName(raw)))
	return nil
}

func jsonTypeName(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return "dict"
	case strings.HasPrefix(trimmed, "["):
		return "list"
	case trimmed == "true" || trimmed == "false":
		return "bool"
	default:
		return "float"
	}
}
