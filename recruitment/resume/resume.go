package resume

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// MaxUploadSize is the largest CV accepted, in bytes.
const MaxUploadSize int64 = 10 << 20

// StoredFile is a CV written to storage and not yet linked to a candidate.
type StoredFile struct {
	FilePath   kernel.FilePath `json:"filePath"`
	FileType   kernel.FileType `json:"fileType"`
	Size       int64           `json:"size"`
	UploadedAt time.Time       `json:"uploadedAt"`
}

var extensions = map[kernel.FileType]string{
	kernel.FileTypePDF:  ".pdf",
	kernel.FileTypeDOCX: ".docx",
}

// DetectFileType resolves the type an upload claims to be from its declared
// content type, falling back to the file extension.
func DetectFileType(filename, contentType string) (kernel.FileType, bool) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if t := kernel.FileType(mediaType); t.IsAllowedResume() {
			return t, true
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return kernel.FileTypePDF, true
	case ".docx":
		return kernel.FileTypeDOCX, true
	}
	return "", false
}

// MatchContent checks the type sniffed from an upload's leading bytes. The
// content decides the stored type; the declared type only matters for DOCX,
// whose head may sniff as a plain zip archive.
func MatchContent(declared kernel.FileType, detected *mimetype.MIME) (kernel.FileType, bool) {
	switch {
	case detected.Is(string(kernel.FileTypePDF)):
		return kernel.FileTypePDF, true
	case detected.Is(string(kernel.FileTypeDOCX)):
		return kernel.FileTypeDOCX, true
	case declared == kernel.FileTypeDOCX && detected.Is("application/zip"):
		return kernel.FileTypeDOCX, true
	}
	return "", false
}

// Extension returns the file extension used when storing t.
func Extension(t kernel.FileType) string {
	return extensions[t]
}
