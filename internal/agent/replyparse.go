package agent

import (
	"regexp"
	"strings"
)

var markerPattern = regexp.MustCompile(`^\s*(?:[-*•·]|\d+[.)])\s+`)

// bulletLines collects up to max bulleted or numbered lines from a reply,
// stripped of their list markers
func bulletLines(reply string, max int) []string {
	var out []string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !markerPattern.MatchString(trimmed) {
			continue
		}
		if item := stripMarker(trimmed); item != "" {
			out = append(out, item)
		}
		if len(out) >= max {
			break
		}
	}
	return out
}

// linesAfterHeading collects list items that follow a heading containing
// one of the keywords, stopping at the next heading
func linesAfterHeading(reply string, keywords []string, max int) []string {
	var out []string
	collecting := false

	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)

		if looksLikeHeading(trimmed) {
			collecting = false
			lower := strings.ToLower(trimmed)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					collecting = true
					break
				}
			}
			continue
		}

		if !collecting || trimmed == "" {
			continue
		}
		if item := stripMarker(trimmed); item != "" {
			out = append(out, item)
		}
		if len(out) >= max {
			break
		}
	}
	return out
}

func looksLikeHeading(line string) bool {
	if line == "" || markerPattern.MatchString(line) {
		return false
	}
	if strings.HasPrefix(line, "#") {
		return true
	}
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) < 80 {
		return true
	}
	return strings.HasSuffix(line, ":") && len(line) <= 60
}

// stripMarker removes the list marker and bold wrappers from a line
func stripMarker(line string) string {
	item := markerPattern.ReplaceAllString(line, "")
	item = strings.Trim(item, "*")
	return strings.TrimSpace(item)
}

// splitListBlock turns a labeled block into list items, accepting both
// one-per-line and comma-separated layouts
func splitListBlock(block string) []string {
	var out []string

	lines := strings.Split(block, "\n")
	multiline := len(lines) > 1

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		item := stripMarker(trimmed)
		if item == "" {
			continue
		}
		if !multiline && strings.Contains(item, ",") {
			for _, part := range strings.Split(item, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			continue
		}
		out = append(out, item)
	}
	return out
}
