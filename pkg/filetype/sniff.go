package filetype

import (
	h2non "github.com/h2non/filetype"
)

// sniff inspects the buffer's leading bytes and returns the detected content
// type, or "" when no signature matches. Detection is independent of the
// filename and declared type. Modern office formats are reported as the
// generic zip container when the buffer is too short to identify the inner
// structure; container disambiguation handles that case downstream.
func sniff(data []byte) string {
	kind, err := h2non.Match(data)
	if err != nil || kind == h2non.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// MatchesSignature is a lightweight spot check: it reports whether the
// buffer's magic bytes identify it as the given MIME type, without running
// the full validation pipeline. Types without a registered signature, such
// as plain text, never match.
func MatchesSignature(data []byte, mime string) bool {
	return h2non.IsMIME(data, normalizeMIME(mime))
}
