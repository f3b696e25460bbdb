package filetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataroomhq/dataroom/pkg/filetype"
)

var (
	pdfBytes  = []byte("%PDF-1.4\n%some content")
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}
	zipBytes  = []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}
	gzipBytes = []byte{0x1F, 0x8B, 0x08, 0x00}
	textBytes = []byte("plain notes, nothing binary here")
)

// legacyXlsBytes builds a minimal OLE compound file carrying the xls
// sub-header at offset 512.
func legacyXlsBytes() []byte {
	b := make([]byte, 520)
	copy(b, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	b[512] = 0x09
	b[513] = 0x08
	return b
}

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		filename     string
		declared     string
		wantMIME     string
		wantExt      string
		wantCategory filetype.Category
	}{
		{
			name:         "pdf document",
			data:         pdfBytes,
			filename:     "report.pdf",
			declared:     "application/pdf",
			wantMIME:     "application/pdf",
			wantExt:      ".pdf",
			wantCategory: filetype.CategoryDocument,
		},
		{
			name:         "docx resolved through zip container",
			data:         zipBytes,
			filename:     "report.docx",
			declared:     docxMIME,
			wantMIME:     docxMIME,
			wantExt:      ".docx",
			wantCategory: filetype.CategoryDocument,
		},
		{
			name:         "legacy xls sniffed from compound file sub-header",
			data:         legacyXlsBytes(),
			filename:     "ledger.xls",
			declared:     "application/vnd.ms-excel",
			wantMIME:     "application/vnd.ms-excel",
			wantExt:      ".xls",
			wantCategory: filetype.CategorySpreadsheet,
		},
		{
			name:         "plain zip archive stays zip",
			data:         zipBytes,
			filename:     "bundle.zip",
			declared:     "application/zip",
			wantMIME:     "application/zip",
			wantExt:      ".zip",
			wantCategory: filetype.CategoryArchive,
		},
		{
			name:         "unsniffable text with declared type",
			data:         textBytes,
			filename:     "notes.txt",
			declared:     "text/plain",
			wantMIME:     "text/plain",
			wantExt:      ".txt",
			wantCategory: filetype.CategoryText,
		},
		{
			name:         "unsniffable json without declared type",
			data:         []byte(`{"a":1}`),
			filename:     "data.json",
			declared:     "",
			wantMIME:     "application/json",
			wantExt:      ".json",
			wantCategory: filetype.CategoryText,
		},
		{
			name:         "jpeg with jpg alias declared",
			data:         jpegBytes,
			filename:     "photo.jpeg",
			declared:     "image/jpg",
			wantMIME:     "image/jpeg",
			wantExt:      ".jpg",
			wantCategory: filetype.CategoryImage,
		},
		{
			name:         "gzip archive",
			data:         gzipBytes,
			filename:     "dump.gz",
			declared:     "",
			wantMIME:     "application/gzip",
			wantExt:      ".gz",
			wantCategory: filetype.CategoryArchive,
		},
		{
			name:         "declared mime with charset parameter",
			data:         textBytes,
			filename:     "notes.txt",
			declared:     "text/plain; charset=utf-8",
			wantMIME:     "text/plain",
			wantExt:      ".txt",
			wantCategory: filetype.CategoryText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := filetype.Validate(tt.data, tt.filename, tt.declared)

			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, res.MIME)
			assert.Equal(t, tt.wantExt, res.Extension)
			assert.Equal(t, tt.wantCategory, res.Category)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		declared string
		wantErr  error
	}{
		{
			name:     "executable extension despite pdf content",
			data:     pdfBytes,
			filename: "a.exe",
			declared: "application/pdf",
			wantErr:  filetype.ErrDisallowedType,
		},
		{
			name:     "shell script",
			data:     []byte("#!/bin/sh\nrm -rf /"),
			filename: "setup.sh",
			declared: "",
			wantErr:  filetype.ErrDisallowedType,
		},
		{
			name:     "double extension disguise",
			data:     pdfBytes,
			filename: "invoice.exe.pdf",
			declared: "application/pdf",
			wantErr:  filetype.ErrDisallowedType,
		},
		{
			name:     "jpeg declared as png",
			data:     jpegBytes,
			filename: "photo.png",
			declared: "image/png",
			wantErr:  filetype.ErrMIMEMismatch,
		},
		{
			name:     "png content with jpg extension",
			data:     pngBytes,
			filename: "photo.jpg",
			declared: "",
			wantErr:  filetype.ErrExtensionMismatch,
		},
		{
			name:     "unsniffable binary",
			data:     []byte{0x00, 0x01, 0x02, 0x03},
			filename: "data.dat",
			declared: "application/octet-stream",
			wantErr:  filetype.ErrUnknownType,
		},
		{
			name:     "zip declared as docx but wrong extension",
			data:     zipBytes,
			filename: "report.zip",
			declared: docxMIME,
			wantErr:  filetype.ErrExtensionMismatch,
		},
		{
			name:     "html is not whitelisted",
			data:     []byte("<html><body>hi</body></html>"),
			filename: "page.html",
			declared: "text/html",
			wantErr:  filetype.ErrDisallowedType,
		},
		{
			name:     "text extension hiding mismatched declared type",
			data:     textBytes,
			filename: "notes.txt",
			declared: "application/pdf",
			wantErr:  filetype.ErrExtensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := filetype.Validate(tt.data, tt.filename, tt.declared)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMatchesSignature(t *testing.T) {
	assert.True(t, filetype.MatchesSignature(pdfBytes, "application/pdf"))
	assert.True(t, filetype.MatchesSignature(pngBytes, "image/png"))
	assert.True(t, filetype.MatchesSignature(jpegBytes, "image/jpg")) // alias folds to jpeg
	assert.False(t, filetype.MatchesSignature(pdfBytes, "image/png"))
	assert.False(t, filetype.MatchesSignature(nil, "application/pdf"))
}

func TestMatchesSignature_WebpNeedsRIFFPreamble(t *testing.T) {
	assert.True(t, filetype.MatchesSignature([]byte("RIFFxxxxWEBPzzzz"), "image/webp"))
	// "WEBP" at offset 8 alone is not a webp file.
	assert.False(t, filetype.MatchesSignature([]byte("XXXXxxxxWEBPzzzz"), "image/webp"))
}
