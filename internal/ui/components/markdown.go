package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdMu        sync.Mutex
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// Markdown renders markdown source as styled terminal text wrapped to width.
// Source that fails to render is returned unchanged.
func Markdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdMu.Lock()
	defer mdMu.Unlock()

	r, ok := mdRenderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		mdRenderers[width] = r
	}

	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

// markdownStyle is the dark style without the document margin, since the
// result is placed inside a padded card.
func markdownStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	var zero uint
	cfg.Document.Margin = &zero
	return cfg
}
