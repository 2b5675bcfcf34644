package term

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var colorIndexes = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// parseStyle converts a color spec like "blue+bu:white" into a style.
// A style has the form "fg+attrs:bg+attrs" where colors are names,
// 256-color indexes or hex values and attrs are single letters:
// b (bold), d (faint), i (reverse), s (strikethrough), u (underline),
// B (blink), h (bright).
func parseStyle(r *lipgloss.Renderer, spec string) lipgloss.Style {
	style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if spec == "" {
		return style
	}

	fg, bg, _ := strings.Cut(spec, ":")

	fgName, fgAttrs, _ := strings.Cut(fg, "+")
	if c, ok := parseColor(fgName, strings.Contains(fgAttrs, "h")); ok {
		style = style.Foreground(c)
	}
	for _, a := range fgAttrs {
		switch a {
		case 'b':
			style = style.Bold(true)
		case 'd':
			style = style.Faint(true)
		case 'i':
			style = style.Reverse(true)
		case 's':
			style = style.Strikethrough(true)
		case 'u':
			style = style.Underline(true)
		case 'B':
			style = style.Blink(true)
		}
	}

	bgName, bgAttrs, _ := strings.Cut(bg, "+")
	if c, ok := parseColor(bgName, strings.Contains(bgAttrs, "h")); ok {
		style = style.Background(c)
	}

	return style
}

func parseColor(name string, bright bool) (lipgloss.Color, bool) {
	switch {
	case name == "" || name == "default":
		return "", false
	case strings.HasPrefix(name, "#"):
		return lipgloss.Color(name), true
	}
	if idx, ok := colorIndexes[name]; ok {
		if bright {
			idx += 8
		}
		return lipgloss.Color(strconv.Itoa(idx)), true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < 256 {
		return lipgloss.Color(name), true
	}
	return "", false
}
