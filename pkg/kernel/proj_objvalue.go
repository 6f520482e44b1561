package kernel

import (
	"strings"
)

type Email string

// Normalize lowercases and trims the address.
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

func (e Email) String() string { return string(e) }

type Phone string

func (p Phone) String() string { return string(p) }

type FirstName string

type LastName string

// FullName joins first and last name, skipping empty parts.
func FullName(first FirstName, last LastName) string {
	return strings.TrimSpace(strings.TrimSpace(string(first)) + " " + strings.TrimSpace(string(last)))
}

type PositionTitle string

type StepName string

// FilePath is the storage-relative location of an uploaded file.
type FilePath string

type FileType string

const (
	FileTypePDF  FileType = "application/pdf"
	FileTypeDOCX FileType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// IsAllowedResume reports whether resumes of this MIME type are accepted.
func (t FileType) IsAllowedResume() bool {
	return t == FileTypePDF || t == FileTypeDOCX
}
