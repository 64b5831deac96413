package formdata

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		expected    string
	}{
		{
			name:        "keeps the file content type",
			filename:    "cat.png",
			contentType: "image/png",
			expected:    "image/png",
		},
		{
			name:        "falls back to octet-stream",
			filename:    "blob",
			contentType: "",
			expected:    DefaultContentType,
		},
		{
			name:        "escapes quotes in filename",
			filename:    `my "cat".jpg`,
			contentType: "image/jpeg",
			expected:    "image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("payload-" + tt.name)
			body, contentType, err := Encode("image", tt.filename, tt.contentType, data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			mediaType, params, err := mime.ParseMediaType(contentType)
			if err != nil {
				t.Fatalf("invalid content type %q: %v", contentType, err)
			}
			if mediaType != "multipart/form-data" {
				t.Errorf("Expected multipart/form-data, got %s", mediaType)
			}

			reader := multipart.NewReader(body, params["boundary"])
			part, err := reader.NextPart()
			if err != nil {
				t.Fatalf("failed to read part: %v", err)
			}
			if part.FormName() != "image" {
				t.Errorf("Expected field image, got %s", part.FormName())
			}
			if part.FileName() != tt.filename {
				t.Errorf("Expected filename %s, got %s", tt.filename, part.FileName())
			}
			if got := part.Header.Get("Content-Type"); got != tt.expected {
				t.Errorf("Expected part type %s, got %s", tt.expected, got)
			}
			got, err := io.ReadAll(part)
			if err != nil {
				t.Fatalf("failed to read part body: %v", err)
			}
			if string(got) != string(data) {
				t.Errorf("Expected body %q, got %q", data, got)
			}

			if _, err := reader.NextPart(); err != io.EOF {
				t.Errorf("Expected a single part, got err=%v", err)
			}
		})
	}
}
