package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// bulletPrefixes are list markers kept verbatim, including the glyphs PDF
// text extraction yields for resume bullets.
var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "}

// CleanText normalizes PDF resume text: LF line endings, single spaces inside
// ordinary lines, at most one blank line between blocks. Bullet lines and
// markdown headings keep their spacing; leading indentation is preserved.
func CleanText(content string) string {
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return ""
	}
	if strings.HasPrefix(body, "#") {
		return body
	}

	indent := strings.Repeat(" ", len(line)-len(body))
	if isBulletLine(body) {
		return indent + body
	}
	return indent + spaceRun.ReplaceAllString(body, " ")
}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
