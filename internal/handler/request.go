package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/VitaminP8/yatube/internal/apperr"
)

const (
	msgNull       = "This field may not be null."
	msgNotString  = "Not a valid string."
	msgParseError = "JSON parse error - "
	msgTooLarge   = "Request body is too large."
)

// bindJSON decodes the body into dst; an empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	err := c.ShouldBindBodyWith(dst, binding.JSON)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if isTooLarge(err) {
		return apperr.Validation(apperr.MessageField, msgTooLarge)
	}
	if err != nil {
		return apperr.Validation(apperr.MessageField, msgParseError+err.Error())
	}
	return nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// rawBody keeps presence and null apart, which a struct with pointers cannot.
type rawBody map[string]json.RawMessage

func (b rawBody) has(field string) bool {
	_, ok := b[field]
	return ok
}

func (b rawBody) isNull(field string) bool {
	raw, ok := b[field]
	return ok && strings.TrimSpace(string(raw)) == "null"
}

// str returns nil when the field is absent and records type errors into verr.
func (b rawBody) str(field string, verr *apperr.Error) *string {
	raw, ok := b[field]
	if !ok {
		return nil
	}
	if b.isNull(field) {
		verr.Add(field, msgNull)
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			verr.Add(field, msgNotString)
			return nil
		}
		s = n.String()
	}
	return &s
}

// parseID reads a numeric path parameter; anything else is treated as an unknown route.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// baseURL is scheme and host of the request, used for absolute links.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
