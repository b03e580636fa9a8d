package inline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrImageRead wraps I/O failures on image files that do exist.
var ErrImageRead = errors.New("failed to read image")

// DataURI reads path and returns it as a base64 data URI.
func DataURI(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path resolved under the dataset directory
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	return EncodeDataURI(MIMEType(path), data), nil
}

// EncodeDataURI formats data as "data:<mime>;base64,<payload>".
func EncodeDataURI(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI: %.20q", uri)
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URI payload: %w", err)
	}
	return mime, data, nil
}
