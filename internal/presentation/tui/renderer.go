package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// Style selects how an outline reaches the terminal.
type Style string

const (
	StyleAuto  Style = "auto"
	StyleDark  Style = "dark"
	StyleLight Style = "light"
	// StylePlain prints the markdown source.
	StylePlain Style = "plain"
)

// DefaultWidth is the wrap column for outlines.
const DefaultWidth = 100

// OutlineRenderer styles outlines produced by Outline.
type OutlineRenderer struct {
	style Style
	term  *glamour.TermRenderer
}

// NewOutlineRenderer builds a renderer for style. A width of zero uses DefaultWidth.
func NewOutlineRenderer(style Style, width int) (*OutlineRenderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r := &OutlineRenderer{style: style}

	var styleOpt glamour.TermRendererOption
	switch style {
	case StylePlain:
		return r, nil
	case "", StyleAuto:
		r.style = StyleAuto
		styleOpt = glamour.WithAutoStyle()
	case StyleDark, StyleLight:
		styleOpt = glamour.WithStandardStyle(string(style))
	default:
		return nil, fmt.Errorf("unknown outline style %q (want auto, dark, light or plain)", style)
	}

	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("terminal style %s: %w", style, err)
	}
	r.term = term
	return r, nil
}

// Style reports the style in use.
func (r *OutlineRenderer) Style() Style { return r.style }

// Render writes the outline md to w.
func (r *OutlineRenderer) Render(w io.Writer, md string) error {
	if r.term == nil {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := r.term.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
