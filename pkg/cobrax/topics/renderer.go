package topics

// Renderer formats page content for terminal display. The ext argument
// is the page's file extension and tells the renderer what markup, if
// any, the content carries.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns page content unchanged. It is the default and
// the fallback for output that is not a terminal.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
