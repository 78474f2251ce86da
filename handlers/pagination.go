package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

type page struct {
	Number int
	Size   int
}

func (p page) offset() int {
	return (p.Number - 1) * p.Size
}

// parsePage reads page and page_size, falling back to defaultSize.
func parsePage(c *gin.Context, defaultSize int) (page, error) {
	p := page{Number: 1, Size: defaultSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errors.New("invalid page")
		}
		p.Number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errors.New("invalid page_size")
		}
		p.Size = min(n, maxPageSize)
	}
	return p, nil
}

type paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func newPaginated[T any](c *gin.Context, p page, count int, results []T) paginated[T] {
	resp := paginated[T]{Count: count, Results: results}
	if p.offset()+len(results) < count {
		next := pageURL(c, p.Number+1)
		resp.Next = &next
	}
	if p.Number > 1 {
		prev := pageURL(c, p.Number-1)
		resp.Previous = &prev
	}
	return resp
}

// pageURL rebuilds the request URL with another page number.
func pageURL(c *gin.Context, number int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}

	query := c.Request.URL.Query()
	if number <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = query.Encode()
	return u.String()
}
