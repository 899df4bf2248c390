// Package asset converts uploaded images into self-contained data URIs
// and substitutes the placeholder tokens the generated documents carry.
package asset

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// MaxEncodedBytes caps the size of an image accepted for inline embedding.
const MaxEncodedBytes = 2 << 20 // 2 MiB

// allowedMIMETypes lists the image types that may be embedded inline.
var allowedMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// EncodeDataURI converts raw image bytes into a data URI usable directly
// as an image source with no network fetch. The MIME type is sniffed
// from the content, never taken from the upload metadata.
func EncodeDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	if len(data) > MaxEncodedBytes {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", MaxEncodedBytes)
	}

	mimeType := http.DetectContentType(data)
	if !allowedMIMETypes[mimeType] {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
