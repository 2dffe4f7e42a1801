// README: Input sanitation; strips script blocks and HTML tags from user text.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]+>`)
)

// Clean removes script blocks first, then any remaining markup, and trims
// the result. User text passes through here before reaching the model or
// the history log.
func Clean(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
