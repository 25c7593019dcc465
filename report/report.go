package report

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"golang.org/x/term"

	"github.com/scipunch/ytrss/fetcher/types"
	"github.com/scipunch/ytrss/pipeline"
)

//go:embed templates/*.tmpl
var templates embed.FS

var tmpl = template.Must(template.ParseFS(templates, "templates/*.tmpl"))

const maxSeparatorWidth = 80

// WriteChannel prints the resolved channel and its feed URL
func WriteChannel(w io.Writer, ch pipeline.Channel, copied bool) error {
	data := struct {
		Channel pipeline.Channel
		Copied  bool
	}{ch, copied}
	if err := tmpl.ExecuteTemplate(w, "channel", data); err != nil {
		return fmt.Errorf("could not render channel with %w", err)
	}
	return nil
}

// WriteVideos prints one block per video. A positive width adds a separator line first.
func WriteVideos(w io.Writer, videos []types.Video, width int) error {
	data := struct {
		Separator string
		Videos    []types.Video
	}{Videos: videos}
	if width > 0 {
		data.Separator = strings.Repeat("-", min(width, maxSeparatorWidth))
	}
	if err := tmpl.ExecuteTemplate(w, "videos", data); err != nil {
		return fmt.Errorf("could not render videos with %w", err)
	}
	return nil
}

// TerminalWidth returns the width of f when it is a terminal, zero otherwise
func TerminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
