package util

import (
	"mime"
	"path/filepath"
	"strings"
)

// IsPDF reports whether a declared media type is exactly application/pdf.
// Parameters such as "; charset=" are ignored.
func IsPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == MimePDF
}

// ProofObjectName builds the storage key for a proof: <owner>/<record><ext>.
func ProofObjectName(ownerID, recordID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return ownerID + "/" + recordID + ext
}
