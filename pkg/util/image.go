package util

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImage = errors.New("image must be a base64 data URI (data:image/<ext>;base64,...)")

// DecodedImage is the payload of a data:image URI
type DecodedImage struct {
	Filename    string // temp.<ext>
	Extension   string
	ContentType string
	Data        []byte
}

// DecodeImageDataURI decodes "data:image/<ext>;base64,<payload>".
// The extension must be ASCII letters and digits; MIME parameters are rejected.
func DecodeImageDataURI(uri string) (*DecodedImage, error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(uri, prefix) {
		return nil, ErrInvalidImage
	}

	header, payload, found := strings.Cut(uri, ";base64,")
	if !found || payload == "" {
		return nil, ErrInvalidImage
	}

	ext := strings.TrimPrefix(header, prefix)
	if !isAlphanumeric(ext) {
		return nil, ErrInvalidImage
	}
	ext = strings.ToLower(ext)
	contentType := "image/" + ext

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}

	return &DecodedImage{
		Filename:    "temp." + ext,
		Extension:   ext,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
