package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenseanalyzer/internal/model"
)

func TestValidate(t *testing.T) {
	receipt := &model.UploadedDocument{Filename: "receipt.png", Data: []byte("0123456789")}

	tests := []struct {
		name       string
		credential bool
		doc        *model.UploadedDocument
		text       string
		wantKind   ValidationKind
		wantMsg    string
	}{
		{
			name:     "missing credential wins over everything",
			doc:      nil,
			text:     "",
			wantKind: MissingCredential,
			wantMsg:  "Missing OPENAI_API_KEY in secrets.",
		},
		{
			name:       "missing file",
			credential: true,
			doc:        nil,
			text:       "Bought coffee",
			wantKind:   MissingFile,
			wantMsg:    "Please upload a file!",
		},
		{
			name:       "empty file counts as missing",
			credential: true,
			doc:        &model.UploadedDocument{Filename: "receipt.png"},
			text:       "Bought coffee",
			wantKind:   MissingFile,
			wantMsg:    "Please upload a file!",
		},
		{
			name:       "missing file checked before empty text",
			credential: true,
			doc:        nil,
			text:       "   ",
			wantKind:   MissingFile,
			wantMsg:    "Please upload a file!",
		},
		{
			name:       "unsupported extension",
			credential: true,
			doc:        &model.UploadedDocument{Filename: "notes.txt", Data: []byte("hi")},
			text:       "Bought coffee",
			wantKind:   UnsupportedFileType,
			wantMsg:    MsgUnsupportedFileType,
		},
		{
			name:       "empty text checked before file type",
			credential: true,
			doc:        &model.UploadedDocument{Filename: "receipt", Data: []byte("0123456789")},
			text:       "   ",
			wantKind:   MissingContext,
			wantMsg:    "Please enter your context or reasoning!",
		},
		{
			name:       "whitespace-only text",
			credential: true,
			doc:        receipt,
			text:       " \t\n ",
			wantKind:   MissingContext,
			wantMsg:    "Please enter your context or reasoning!",
		},
		{
			name:       "empty text",
			credential: true,
			doc:        receipt,
			text:       "",
			wantKind:   MissingContext,
			wantMsg:    "Please enter your context or reasoning!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.credential, tt.doc, tt.text)

			require.Error(t, err)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantKind, vErr.Kind)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate_OK(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.pdf"} {
		t.Run(name, func(t *testing.T) {
			doc := &model.UploadedDocument{Filename: name, Data: []byte{1}}
			assert.NoError(t, Validate(true, doc, "  Bought coffee "))
		})
	}
}

func TestValidationError_Code(t *testing.T) {
	assert.Equal(t, "CREDENTIAL_MISSING", (&ValidationError{Kind: MissingCredential}).Code())
	assert.Equal(t, "FILE_REQUIRED", (&ValidationError{Kind: MissingFile}).Code())
	assert.Equal(t, "CONTEXT_REQUIRED", (&ValidationError{Kind: MissingContext}).Code())
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", (&ValidationError{Kind: UnsupportedFileType}).Code())
	assert.Equal(t, "BAD_REQUEST", (&ValidationError{}).Code())
}

func TestContentTypeFor(t *testing.T) {
	ct, ok := ContentTypeFor("Receipt.PDF")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", ct)

	ct, ok = ContentTypeFor("photo.jpg")
	assert.True(t, ok)
	assert.Equal(t, "image/jpeg", ct)

	_, ok = ContentTypeFor("archive.zip")
	assert.False(t, ok)

	_, ok = ContentTypeFor("noext")
	assert.False(t, ok)
}
