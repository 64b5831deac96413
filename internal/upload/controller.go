package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pixelgate/pixelgate/internal/formdata"
)

const (
	// ProcessPath is the absolute path every submission is posted to.
	ProcessPath = "/process"
	// FieldName is the multipart field carrying the image.
	FieldName = "image"
)

// File is one selected file.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileSource exposes the current file selection.
type FileSource interface {
	Files() []File
}

// StatusSink renders the status line.
type StatusSink interface {
	SetStatus(Status)
}

// ImageSink receives the reference of the image to display.
type ImageSink interface {
	SetSource(ref string)
}

// VisibilitySink shows or hides the output image.
type VisibilitySink interface {
	SetVisible(visible bool)
}

// ObjectStore turns a blob into a reference an ImageSink can display.
type ObjectStore interface {
	CreateObjectURL(Blob) (string, error)
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// RejectedError is returned when the server answers with a non-2xx status.
// Its message never depends on the status code.
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return MessageServerFailed
}

// Controller submits the selected image to the processing endpoint and
// reflects the outcome onto its output ports.
//
// Overlapping calls to SubmitSelectedImage are not serialised: each call
// runs to completion on its own and the last one to finish decides what the
// sinks show.
type Controller struct {
	endpoint   string
	files      FileSource
	status     StatusSink
	image      ImageSink
	visibility VisibilitySink
	objects    ObjectStore
	client     Doer
	logger     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient replaces the transport used for the upload.
func WithHTTPClient(client Doer) Option {
	return func(c *Controller) {
		c.client = client
	}
}

// WithObjectStore replaces the default data URL store.
func WithObjectStore(store ObjectStore) Option {
	return func(c *Controller) {
		c.objects = store
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New returns a controller posting to ProcessPath on the given server origin.
func New(server string, files FileSource, status StatusSink, image ImageSink, visibility VisibilitySink, opts ...Option) (*Controller, error) {
	base, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", server, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", server)
	}

	c := &Controller{
		endpoint:   base.ResolveReference(&url.URL{Path: ProcessPath}).String(),
		files:      files,
		status:     status,
		image:      image,
		visibility: visibility,
		objects:    DataURLStore{},
		client:     http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the URL submissions are posted to.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

// SubmitSelectedImage posts the first selected file and renders the outcome.
// Every failure ends up on the status sink; nothing is returned.
func (c *Controller) SubmitSelectedImage(ctx context.Context) {
	files := c.files.Files()
	if len(files) == 0 {
		c.status.SetStatus(StatusOf(Failure{Kind: NoFileSelected}))
		return
	}

	file := files[0]
	body, contentType, err := formdata.Encode(FieldName, file.Name, file.ContentType, file.Data)
	if err != nil {
		c.fail(err)
		return
	}

	c.status.SetStatus(StatusOf(Processing{}))
	c.visibility.SetVisible(false)

	blob, err := c.post(ctx, body, contentType)
	if err != nil {
		c.fail(err)
		return
	}

	ref, err := c.objects.CreateObjectURL(blob)
	if err != nil {
		c.fail(err)
		return
	}

	c.image.SetSource(ref)
	c.visibility.SetVisible(true)
	c.status.SetStatus(StatusOf(Success{Image: blob}))
}

func (c *Controller) post(ctx context.Context, body io.Reader, contentType string) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Blob{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return Blob{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Blob{}, &RejectedError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Blob{}, err
	}

	return Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (c *Controller) fail(err error) {
	failure := Failure{Kind: TransportFailure, Message: err.Error()}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		failure.Kind = ServerRejected
		c.logger.Error("Error:", "err", err, "kind", failure.Kind, "status", rejected.StatusCode, "endpoint", c.endpoint)
	} else {
		c.logger.Error("Error:", "err", err, "kind", failure.Kind, "endpoint", c.endpoint)
	}

	c.status.SetStatus(StatusOf(failure))
}
