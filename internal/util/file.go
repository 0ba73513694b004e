package util

import (
	"net/http"
	"strings"
)

// SniffContentType detects the MIME type of a file from its leading bytes
// and reports whether it matches the allowed list. Allowed entries match
// as prefixes, so "text/plain" also covers charset variants.
func SniffContentType(data []byte, allowed []string) (string, bool) {
	if len(data) > 512 {
		data = data[:512]
	}
	mimeType := http.DetectContentType(data)

	for _, a := range allowed {
		if strings.HasPrefix(mimeType, a) {
			return mimeType, true
		}
	}
	return mimeType, false
}
