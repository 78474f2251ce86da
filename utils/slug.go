package utils

import (
	"github.com/gosimple/slug"
)

// Slugify turns a display name into a URL slug. Names without any
// sluggable characters fall back to "item".
func Slugify(name string) string {
	s := slug.Make(name)
	if s == "" {
		return "item"
	}
	return s
}
