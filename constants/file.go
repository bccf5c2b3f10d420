package constants

import "strings"

// ContentKind is the declared media type of an uploaded document.
type ContentKind string

const (
	KindPDF  ContentKind = "application/pdf"
	KindJPEG ContentKind = "image/jpeg"
	KindPNG  ContentKind = "image/png"
)

// AllowedContentKinds holds the media types the verification endpoint accepts.
var AllowedContentKinds = map[ContentKind]struct{}{
	KindPDF:  {},
	KindJPEG: {},
	KindPNG:  {},
}

// IsAllowed reports whether the declared media type is one we accept.
func IsAllowed(kind ContentKind) bool {
	_, ok := AllowedContentKinds[kind]
	return ok
}

// IsImage reports whether the kind is a single raster image.
func IsImage(kind ContentKind) bool {
	return strings.HasPrefix(string(kind), "image/")
}

// MapExtToKind maps a file extension to a content kind, or "" when unknown.
func MapExtToKind(ext string) ContentKind {
	switch NormalizeExt(ext) {
	case "pdf":
		return KindPDF
	case "jpg", "jpeg":
		return KindJPEG
	case "png":
		return KindPNG
	default:
		return ""
	}
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
