package mimetypes

import (
	"mime"
	"strings"

	"github.com/samber/lo"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextHTML  MIME = "text/html"

	ApplicationPDF         MIME = "application/pdf"
	ApplicationJSON        MIME = "application/json"
	ApplicationOctetStream MIME = "application/octet-stream"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
)

// ToMIME strips parameters (e.g. "; charset=utf-8") and lower-cases the media type.
func ToMIME(raw string) MIME {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return Unknown
	}
	return MIME(strings.ToLower(mt))
}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt := ToMIME(detected)
	if mt == Unknown {
		return Unknown, false
	}
	return expected, mt == expected
}

// Allowed returns the normalized type and whether it belongs to the allow-list.
func Allowed(declared string, allowList []MIME) (MIME, bool) {
	mt := ToMIME(declared)
	return mt, mt != Unknown && lo.Contains(allowList, mt)
}
