package display

import (
	"fmt"
	"sync"

	"github.com/pixelgate/pixelgate/internal/upload"
)

// Recorder keeps every change made to the output surfaces in memory.
// The image starts hidden with no source.
type Recorder struct {
	mu       sync.Mutex
	statuses []upload.Status
	source   string
	visible  bool
	events   []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetStatus(s upload.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
	r.events = append(r.events, fmt.Sprintf("status:%s", s.Text))
}

func (r *Recorder) SetSource(ref string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.source = ref
	r.events = append(r.events, "source")
}

func (r *Recorder) SetVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = visible
	r.events = append(r.events, fmt.Sprintf("visible:%t", visible))
}

// Status returns the last status set, or the zero Status.
func (r *Recorder) Status() upload.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return upload.Status{}
	}
	return r.statuses[len(r.statuses)-1]
}

func (r *Recorder) Statuses() []upload.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]upload.Status(nil), r.statuses...)
}

func (r *Recorder) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

func (r *Recorder) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Events lists changes in the order they happened.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}
