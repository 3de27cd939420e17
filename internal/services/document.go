package services

import (
	"path/filepath"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// Document is binary content with a declared media type.
type Document struct {
	Name     string
	Data     []byte
	MimeType string
}

var mimeByExtension = map[string]string{
	".pdf":  MimePDF,
	".doc":  MimeDOC,
	".docx": MimeDOCX,
	".txt":  MimeText,
}

// MimeTypeForFilename maps a resume filename to its media type, or "" when
// the extension is not a supported resume format.
func MimeTypeForFilename(name string) string {
	return mimeByExtension[strings.ToLower(filepath.Ext(name))]
}

func IsSupportedResumeType(mimeType string) bool {
	for _, m := range mimeByExtension {
		if m == mimeType {
			return true
		}
	}
	return false
}
