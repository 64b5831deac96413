package upload

import (
	"encoding/base64"

	"github.com/pixelgate/pixelgate/internal/formdata"
)

// DataURLStore derives an RFC 2397 data URL from a blob.
type DataURLStore struct{}

func (DataURLStore) CreateObjectURL(b Blob) (string, error) {
	contentType := b.ContentType
	if contentType == "" {
		contentType = formdata.DefaultContentType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(b.Data), nil
}
