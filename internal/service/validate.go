package service

import (
	"path/filepath"
	"strings"

	"expenseanalyzer/internal/model"
)

// ValidationKind identifies which input check failed.
type ValidationKind int

const (
	MissingCredential ValidationKind = iota + 1
	MissingFile
	MissingContext
	UnsupportedFileType
)

// User-facing validation messages.
const (
	MsgMissingCredential   = "Missing OPENAI_API_KEY in secrets."
	MsgMissingFile         = "Please upload a file!"
	MsgMissingContext      = "Please enter your context or reasoning!"
	MsgUnsupportedFileType = "Unsupported file type. Upload a PNG, JPG, JPEG, or PDF file."
)

// ValidationError halts a run before any external call is made.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Code returns a machine-readable code for API responses.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case MissingCredential:
		return "CREDENTIAL_MISSING"
	case MissingFile:
		return "FILE_REQUIRED"
	case MissingContext:
		return "CONTEXT_REQUIRED"
	case UnsupportedFileType:
		return "UNSUPPORTED_FILE_TYPE"
	default:
		return "BAD_REQUEST"
	}
}

// allowedTypes maps accepted file extensions to their declared media type.
var allowedTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".pdf":  "application/pdf",
}

// AcceptedExtensions is the value for the file input's accept attribute.
const AcceptedExtensions = ".png,.jpg,.jpeg,.pdf"

// ContentTypeFor returns the declared media type for an uploaded filename.
func ContentTypeFor(filename string) (string, bool) {
	ct, ok := allowedTypes[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

// Validate checks, in order, the credential, the file, the user text, and
// finally the file type. The first failing check is returned.
func Validate(credentialConfigured bool, doc *model.UploadedDocument, userText string) error {
	if !credentialConfigured {
		return &ValidationError{Kind: MissingCredential, Message: MsgMissingCredential}
	}
	if doc == nil || len(doc.Data) == 0 {
		return &ValidationError{Kind: MissingFile, Message: MsgMissingFile}
	}
	if strings.TrimSpace(userText) == "" {
		return &ValidationError{Kind: MissingContext, Message: MsgMissingContext}
	}
	if _, ok := ContentTypeFor(doc.Filename); !ok {
		return &ValidationError{Kind: UnsupportedFileType, Message: MsgUnsupportedFileType}
	}
	return nil
}
