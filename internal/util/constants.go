package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// ImportStampFormat names archived knowledge-base uploads.
const ImportStampFormat = "20060102T150405"

// AllowedImportMimeTypes lists what a knowledge-base upload may sniff as.
// JSON has no content signature, so browsers and curl send it as plain
// text, JSON or a generic octet stream.
var AllowedImportMimeTypes = []string{
	"application/json",
	"text/plain",
	"application/octet-stream",
}
