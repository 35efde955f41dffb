package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DetectImageFormat sniffs the content type of the byte buffer and returns
// the image subtype ("jpeg", "png", ...). Non-image buffers are rejected
// before anything is sent over the network.
func DetectImageFormat(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported file type %q, expected an image", contentType)
	}
	return strings.TrimPrefix(contentType, "image/"), nil
}

// EncodeDataURI produces the inline base64 representation of an image,
// e.g. "data:image/jpeg;base64,...". Deterministic for a given input.
func EncodeDataURI(format string, data []byte) string {
	return fmt.Sprintf("data:image/%s;base64,%s", format, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI decodes an inline-encoded image ("data:image/<fmt>;base64,...")
// back into its format and raw bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return "", nil, fmt.Errorf("expected a data URI with an image MIME type")
	}
	rest := strings.TrimPrefix(uri, "data:image/")
	format, payload, found := strings.Cut(rest, ";base64,")
	if !found || format == "" {
		return "", nil, fmt.Errorf("data URI must be base64 encoded with an explicit MIME type")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image data: %v", err)
	}
	return format, data, nil
}
