package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/pixelgate/pixelgate/internal/formdata"
)

var (
	// ErrUnavailable means no connection to the engine could be made.
	ErrUnavailable = errors.New("engine unavailable")
	// ErrTimeout means the engine did not answer in time.
	ErrTimeout = errors.New("engine timed out")
)

// StatusError is returned when the engine answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("engine returned status %d: %s", e.Code, e.Body)
}

// Client forwards images to the processing engine.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// New returns a client posting to url with the given timeout.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Process sends the image as multipart field "image" and returns the
// processed image bytes.
func (c *Client) Process(ctx context.Context, image []byte) ([]byte, error) {
	body, contentType, err := formdata.Encode("image", "image", "", image)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	return data, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var opErr *net.OpError
	if errors.Is(err, syscall.ECONNREFUSED) || (errors.As(err, &opErr) && opErr.Op == "dial") {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return fmt.Errorf("failed to send request: %w", err)
}
