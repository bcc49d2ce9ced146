package notes

import (
	"regexp"
	"strings"
)

var (
	// firstSlidePattern matches "slide 1" followed by a separator.
	firstSlidePattern = regexp.MustCompile(`(?i)^[^\p{L}\p{N}]*slide\s*0*1\s*[:\-–—]`)

	// labelPrefix matches the label-number-separator prefix of a header.
	labelPrefix = regexp.MustCompile(`(?i)^[^\p{L}\p{N}]*(?:slide|lecture)\s*\d+\s*[:\-–—]?\s*`)
)

// IsFirstSlide reports whether rawHeader is the deck's title slide header,
// which the intro slide already represents.
func IsFirstSlide(rawHeader string) bool {
	return firstSlidePattern.MatchString(strings.TrimSpace(rawHeader))
}

// NormalizeTitle converts a raw header into a display title.
//
// The first slide's title is always lectureTitle, whatever text followed its
// label. Other headers lose their label prefix and any trailing decoration.
// The result may be empty, in which case the caller decides on a fallback.
func NormalizeTitle(rawHeader, lectureTitle string) string {
	rawHeader = strings.TrimSpace(rawHeader)
	if IsFirstSlide(rawHeader) {
		return lectureTitle
	}

	title := labelPrefix.ReplaceAllString(rawHeader, "")
	title = strings.TrimRight(title, " \t*_#")
	return strings.TrimSpace(title)
}
