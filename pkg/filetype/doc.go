// Package filetype validates untrusted upload content against its claimed
// filename and MIME type.
//
// Validation is a state-free pipeline; each stage can short-circuit with a
// rejection:
//
//  1. Executable blocklist on the filename extension
//  2. Double-extension disguise check (invoice.pdf.exe pattern)
//  3. Magic-byte content sniffing, with a narrow plain-text fallback
//  4. Allowed-type whitelist
//  5. Zip-container disambiguation for modern office formats
//  6. Declared-vs-sniffed MIME agreement
//  7. Extension-vs-type agreement
//
// Example usage:
//
//	res, err := filetype.Validate(data, "report.docx", declaredMIME)
//	if err != nil {
//		return err // deterministic rejection, surface as 4xx
//	}
//	// res.MIME, res.Extension and res.Category are whitelist-consistent
package filetype
