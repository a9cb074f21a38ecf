// Package pagination implements limit/offset paging with next and previous links.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	LimitParam  = "limit"
	OffsetParam = "offset"
)

type Params struct {
	Limit  int
	Offset int
}

// Page is the envelope returned when the client asked for a limit.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Parse reads limit and offset. Without a positive limit the listing is not
// paginated and ok is false. A bad offset counts as zero.
func Parse(query url.Values) (p Params, ok bool) {
	limit, err := strconv.Atoi(query.Get(LimitParam))
	if err != nil || limit <= 0 {
		return Params{}, false
	}

	offset, err := strconv.Atoi(query.Get(OffsetParam))
	if err != nil || offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}, true
}

// NewPage builds the envelope; requestURL must be absolute.
func NewPage(requestURL *url.URL, p Params, count int, results interface{}) Page {
	return Page{
		Count:    count,
		Next:     nextLink(requestURL, p, count),
		Previous: previousLink(requestURL, p),
		Results:  results,
	}
}

func nextLink(u *url.URL, p Params, count int) *string {
	if p.Offset+p.Limit >= count {
		return nil
	}
	return link(u, p.Limit, p.Offset+p.Limit, true)
}

func previousLink(u *url.URL, p Params) *string {
	if p.Offset <= 0 {
		return nil
	}
	if p.Offset-p.Limit <= 0 {
		return link(u, p.Limit, 0, false)
	}
	return link(u, p.Limit, p.Offset-p.Limit, true)
}

func link(u *url.URL, limit, offset int, withOffset bool) *string {
	out := *u
	q := out.Query()
	q.Set(LimitParam, strconv.Itoa(limit))
	if withOffset {
		q.Set(OffsetParam, strconv.Itoa(offset))
	} else {
		q.Del(OffsetParam)
	}
	out.RawQuery = q.Encode()

	s := out.String()
	return &s
}
