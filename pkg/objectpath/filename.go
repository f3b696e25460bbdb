package objectpath

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxBodyLength keeps sanitized names under common filesystem limits
	// with room left for the extension.
	maxBodyLength = 200

	// placeholderName replaces filenames whose body is empty after sanitization.
	placeholderName = "unnamed"
)

// reservedNames are Windows device names that cannot be used as filenames
// on case-insensitive filesystems.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

var (
	unsafeCharsRegex = regexp.MustCompile(`[<>:"/\\|?*]`)
	extensionRegex   = regexp.MustCompile(`^\.[a-z0-9]+$`)
)

// SanitizeFilename strips path components and dangerous characters from an
// untrusted filename. The extension is preserved but lowercased; the body is
// stripped of separators, control characters and filesystem-unsafe
// characters, trimmed of leading/trailing dots and spaces, and truncated to
// 200 bytes on a rune boundary. Names colliding case-insensitively with
// reserved device
// names (CON, COM1, ...) get an underscore prefix. A body that ends up empty
// is replaced with "unnamed".
//
// Example:
//
//	safe, _ := objectpath.SanitizeFilename("../../etc/passwd") // "passwd"
//	safe, _ = objectpath.SanitizeFilename("CON.txt")           // "_CON.txt"
func SanitizeFilename(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidFilename
	}

	// Drop any directory components, treating backslashes as separators too.
	name = strings.ReplaceAll(name, "\\", "/")
	name = name[strings.LastIndex(name, "/")+1:]
	name = strings.ReplaceAll(name, "\x00", "")

	ext := strings.ToLower(filepath.Ext(name))
	if !extensionRegex.MatchString(ext) {
		ext = ""
	}
	body := strings.TrimSuffix(name, filepath.Ext(name))

	body = stripUnsafe(body)
	body = strings.Trim(body, " .")

	if len(body) > maxBodyLength {
		cut := maxBodyLength
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
		body = strings.TrimRight(body, " .")
	}

	if body == "" {
		body = placeholderName
	}

	if _, reserved := reservedNames[strings.ToUpper(body)]; reserved {
		body = "_" + body
	}

	return body + ext, nil
}

func stripUnsafe(s string) string {
	s = unsafeCharsRegex.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
