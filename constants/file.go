package constants

import "strings"

// URLNotFound is the sentinel stored on documents whose id has no entry in
// the provenance table. It is a known-absent lookup result, not an error.
const URLNotFound = "URL_NOT_FOUND"

// Document boundary markers injected by the text normalizer.
const (
	StartDocMarker  = "[START_DOC]"
	PageBreakMarker = "[PAGE_BREAK]"
	EndDocMarker    = "[END_DOC]"
)

// ArtifactExtensions holds the file extensions recognized as page artifacts.
var ArtifactExtensions = map[string]struct{}{
	"json": {},
}

// ImageExtensions holds the extensions the page OCR collaborator accepts.
var ImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tif":  {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
