package inline

import (
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used for extensions missing from the table.
const DefaultMIMEType = "image/jpeg"

// imageTypes maps lower-case file extensions to MIME types.
var imageTypes = map[string]string{
	".apng": "image/apng",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".ico":  "image/vnd.microsoft.icon",
	".jfif": "image/jpeg",
	".jpe":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// MIMEType returns the MIME type for path's extension, or DefaultMIMEType.
func MIMEType(path string) string {
	if t, ok := imageTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return DefaultMIMEType
}
