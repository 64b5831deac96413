package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pixelgate/pixelgate/internal/upload"
)

var palette = map[upload.Color]string{
	upload.ColorError:   "#FF0000",
	upload.ColorInfo:    "#4682B4",
	upload.ColorSuccess: "#008000",
}

// Terminal renders the output surfaces as lines on a writer. Colours are
// downsampled to what the writer supports.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	status  upload.Status
	source  string
	visible bool
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) SetStatus(s upload.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s

	style := lipgloss.NewStyle()
	if hex, ok := palette[s.Color]; ok {
		style = style.Foreground(lipgloss.Color(hex))
	}
	lipgloss.Fprintln(t.out, style.Render(s.Text))
}

func (t *Terminal) SetSource(ref string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = ref
}

func (t *Terminal) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = visible
	if visible && t.source != "" {
		fmt.Fprintf(t.out, "Imagen: %s\n", t.source)
	}
}

// Status returns the last status rendered.
func (t *Terminal) Status() upload.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Source returns the image reference shown, or "" while the image is hidden.
func (t *Terminal) Source() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.visible {
		return ""
	}
	return t.source
}
