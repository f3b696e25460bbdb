package filetype

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate runs the full validation pipeline over an upload buffer, its
// declared filename and optional declared MIME type. It returns a Result
// whose MIME, Extension and Category are mutually consistent, or a
// deterministic rejection error. Rejections must not be retried; they are
// user-facing input errors.
func Validate(data []byte, filename, declaredMIME string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	declared := normalizeMIME(declaredMIME)

	// Cheapest, highest-confidence check first.
	if _, blocked := dangerousExtensions[ext]; blocked {
		return nil, fmt.Errorf("%w: extension %q is blocked", ErrDisallowedType, ext)
	}

	// invoice.pdf.exe-style disguises: the basename under the outer
	// extension must not itself end in a recognizable extension.
	inner := strings.ToLower(filepath.Ext(strings.TrimSuffix(filename, filepath.Ext(filename))))
	if inner != "" && knownExtension(inner) {
		return nil, fmt.Errorf("%w: double extension %q%s", ErrDisallowedType, inner, ext)
	}

	sniffed := sniff(data)
	if sniffed == "" {
		// Unsniffable content is trusted only within the plain-text family.
		fallback, textExt := textFallbackTypes[ext]
		switch {
		case declared != "" && (textExt || strings.HasPrefix(declared, "text/")):
			sniffed = declared
		case textExt:
			sniffed = fallback
		default:
			return nil, fmt.Errorf("%w: content signature not recognized", ErrUnknownType)
		}
	}

	if _, allowed := allowedTypes[sniffed]; !allowed {
		return nil, fmt.Errorf("%w: %s", ErrDisallowedType, sniffed)
	}

	resolved := sniffed

	// Modern office documents share the zip container signature with plain
	// archives; the signature alone cannot tell them apart. This is the one
	// place the declared type overrides sniffed content, and only within
	// the constrained container case.
	if sniffed == "application/zip" {
		if _, office := officeZipTypes[declared]; office {
			resolved = declared
		}
	}

	if declared != "" && declared != resolved {
		return nil, fmt.Errorf("%w: declared %s, content is %s", ErrMIMEMismatch, declared, resolved)
	}

	if !extensionMatches(resolved, ext) {
		return nil, fmt.Errorf("%w: %q is not valid for %s", ErrExtensionMismatch, ext, resolved)
	}

	info := allowedTypes[resolved]
	return &Result{
		MIME:      resolved,
		Extension: info.extensions[0],
		Category:  info.category,
	}, nil
}
