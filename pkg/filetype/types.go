package filetype

import "strings"

// Category classifies validated content into a fixed taxonomy.
type Category string

const (
	CategoryDocument     Category = "document"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryImage        Category = "image"
	CategoryText         Category = "text"
	CategoryArchive      Category = "archive"
	CategoryUnknown      Category = "unknown"
)

// Result is the outcome of a successful validation. Extension is always
// consistent with MIME per the whitelist table.
type Result struct {
	MIME      string
	Extension string
	Category  Category
}

type typeInfo struct {
	// extensions valid for the type; the first entry is canonical.
	extensions []string
	category   Category
}

// allowedTypes is the fixed whitelist of storable content types.
var allowedTypes = map[string]typeInfo{
	"application/pdf":    {[]string{".pdf"}, CategoryDocument},
	"application/msword": {[]string{".doc"}, CategoryDocument},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {[]string{".docx"}, CategoryDocument},
	"application/vnd.ms-excel": {[]string{".xls"}, CategorySpreadsheet},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {[]string{".xlsx"}, CategorySpreadsheet},
	"application/vnd.ms-powerpoint":                                     {[]string{".ppt"}, CategoryPresentation},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {[]string{".pptx"}, CategoryPresentation},
	"image/jpeg":                  {[]string{".jpg", ".jpeg"}, CategoryImage},
	"image/png":                   {[]string{".png"}, CategoryImage},
	"image/gif":                   {[]string{".gif"}, CategoryImage},
	"image/webp":                  {[]string{".webp"}, CategoryImage},
	"text/plain":                  {[]string{".txt", ".log"}, CategoryText},
	"text/csv":                    {[]string{".csv"}, CategorySpreadsheet},
	"text/markdown":               {[]string{".md", ".markdown"}, CategoryText},
	"application/json":            {[]string{".json"}, CategoryText},
	"application/xml":             {[]string{".xml"}, CategoryText},
	"application/zip":             {[]string{".zip"}, CategoryArchive},
	"application/gzip":            {[]string{".gz"}, CategoryArchive},
	"application/x-7z-compressed": {[]string{".7z"}, CategoryArchive},
}

// dangerousExtensions blocks executables, scripts, installers and other
// payload carriers regardless of content.
var dangerousExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".so": {}, ".bin": {}, ".run": {},
	".bat": {}, ".cmd": {}, ".com": {}, ".scr": {}, ".pif": {},
	".msi": {}, ".msp": {}, ".cpl": {}, ".gadget": {}, ".hta": {},
	".sh": {}, ".bash": {}, ".ps1": {}, ".psm1": {},
	".vbs": {}, ".vbe": {}, ".js": {}, ".jse": {}, ".wsf": {}, ".wsh": {},
	".jar": {}, ".apk": {}, ".app": {}, ".dmg": {}, ".deb": {}, ".rpm": {},
}

// textFallbackTypes maps plain-text family extensions to the type assumed
// when content sniffing yields no result.
var textFallbackTypes = map[string]string{
	".txt":  "text/plain",
	".log":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".md":   "text/markdown",
}

// officeZipTypes are the modern office formats that share the generic zip
// container signature.
var officeZipTypes = map[string]struct{}{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// mimeAliases folds common spellings into the canonical whitelist key.
var mimeAliases = map[string]string{
	"image/jpg":          "image/jpeg",
	"text/xml":           "application/xml",
	"application/x-gzip": "application/gzip",
}

// normalizeMIME lowercases a declared MIME type, strips parameters such as
// charset, and folds known aliases.
func normalizeMIME(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if canonical, ok := mimeAliases[mime]; ok {
		return canonical
	}
	return mime
}

// knownExtension reports whether ext is recognizable, either as a whitelisted
// extension or a blocked one. Used by the double-extension check.
func knownExtension(ext string) bool {
	if _, ok := dangerousExtensions[ext]; ok {
		return true
	}
	for _, info := range allowedTypes {
		for _, e := range info.extensions {
			if e == ext {
				return true
			}
		}
	}
	return false
}

// extensionMatches reports whether ext is valid for the given MIME type,
// treating .jpg and .jpeg as equivalent.
func extensionMatches(mime, ext string) bool {
	info, ok := allowedTypes[mime]
	if !ok {
		return false
	}
	for _, e := range info.extensions {
		if e == ext {
			return true
		}
	}
	return false
}
