package utils

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
	codeStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	coordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("72"))

	orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`_([^_]+)_`)
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	// "41.0082, 28.9784" style coordinate pairs, as the agent tends to
	// format them in place listings.
	coordPairRe = regexp.MustCompile(`-?\d{1,3}\.\d{2,},\s*-?\d{1,3}\.\d{2,}`)
)

// RenderMarkdown renders the subset of markdown the map agent actually
// emits: headings, ordered/unordered lists, bold, italic, inline code, and
// highlighted coordinate pairs.
func RenderMarkdown(text string) string {
	var out strings.Builder
	for i, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(renderLine(line))
	}
	return out.String()
}

func renderLine(line string) string {
	trimmed := strings.TrimSpace(line)

	if title, found := cutHeading(trimmed); found {
		return headingStyle.Render(renderInline(title))
	}
	if item, found := strings.CutPrefix(trimmed, "- "); found {
		return "  • " + renderInline(item)
	}
	if item, found := strings.CutPrefix(trimmed, "* "); found {
		return "  • " + renderInline(item)
	}
	if m := orderedItemRe.FindStringSubmatch(trimmed); len(m) == 3 {
		return "  " + m[1] + ". " + renderInline(m[2])
	}
	return renderInline(line)
}

func cutHeading(line string) (string, bool) {
	for _, prefix := range []string{"### ", "## ", "# "} {
		if title, found := strings.CutPrefix(line, prefix); found {
			return title, true
		}
	}
	return "", false
}

func renderInline(line string) string {
	line = inlineCodeRe.ReplaceAllStringFunc(line, func(match string) string {
		return codeStyle.Render(strings.Trim(match, "`"))
	})
	line = boldRe.ReplaceAllStringFunc(line, func(match string) string {
		return boldStyle.Render(strings.Trim(match, "*"))
	})
	line = italicRe.ReplaceAllStringFunc(line, func(match string) string {
		return italicStyle.Render(strings.Trim(match, "_"))
	})
	line = coordPairRe.ReplaceAllStringFunc(line, func(match string) string {
		return coordStyle.Render(match)
	})
	return line
}
