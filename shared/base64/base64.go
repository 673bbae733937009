package base64

import "strings"

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType extracts the MIME type from a data URI. It returns an empty
// string when the value is not a base64 data URI.
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	end := strings.Index(file, base64Marker)
	if end <= len(dataPrefix) {
		return ""
	}

	return file[len(dataPrefix):end]
}
