package common

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text and trims it.
// Entities produced by the policy are decoded again so the stored value is plain text.
func SanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(input)))
}

// SanitizeOptional applies SanitizeText to an optional value; empty results become nil
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	s := SanitizeText(*input)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeGuestName 게스트 이름 정규화 (claim/unclaim 양쪽에서 동일하게 사용)
func NormalizeGuestName(name string) string {
	return SanitizeText(name)
}
