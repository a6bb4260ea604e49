package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// GenerateAPIToken generates an opaque API token value.
func GenerateAPIToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// Slugify derives a URL-safe slug from a location name.
func Slugify(name string) string {
	return slug.Make(name)
}
