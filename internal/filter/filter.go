// Package filter trims external crop payloads before they are cached or shown.
package filter

import (
	"regexp"
	"strings"
)

// droppedAttributes are OpenFarm attribute keys that carry media, icons or
// bookkeeping data. They waste tokens and cache space.
var droppedAttributes = map[string]bool{
	"main_image_path":      true,
	"svg_icon":             true,
	"slug":                 true,
	"taxon":                true,
	"tags_array":           true,
	"guides_count":         true,
	"processing_pictures":  true,
	"is_deleted":           true,
	"created_at":           true,
	"updated_at":           true,
	"crop_data_source":     true,
	"main_image_thumbnail": true,
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FilterAttributes returns a copy of attrs without media and bookkeeping
// keys. Keys with null values are dropped as well.
func FilterAttributes(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}

	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if droppedAttributes[k] || v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// CountFilteredAttributes counts how many keys FilterAttributes would drop.
func CountFilteredAttributes(attrs map[string]any) int {
	n := 0
	for k, v := range attrs {
		if droppedAttributes[k] || v == nil {
			n++
		}
	}
	return n
}

// CleanText strips HTML tags and collapses runs of whitespace.
func CleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
