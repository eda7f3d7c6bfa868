package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown pages with the glamour library.
// Non-markdown pages pass through unchanged.
type GlamourRenderer struct {
	Style string // glamour style name or path; "auto" detects from the terminal
	Width int    // word-wrap width; 0 lets glamour decide
}

// NewGlamourRenderer creates a markdown renderer that adapts its style
// to the terminal, falling back to plain output when there is none.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" && r.Style != "auto" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
