package formdata

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// DefaultContentType is sent for a part whose type is unknown.
const DefaultContentType = "application/octet-stream"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode builds a multipart/form-data body holding a single file part.
// It returns the body and the Content-Type header (boundary included).
func Encode(field, filename, contentType string, data []byte) (*bytes.Buffer, string, error) {
	if contentType == "" {
		contentType = DefaultContentType
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// multipart.Writer.CreateFormFile always sends application/octet-stream,
	// so the header is built by hand to keep the file's own type.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
