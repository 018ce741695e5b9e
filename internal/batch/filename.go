package batch

import (
	"regexp"
	"strings"
)

// Runs of whitespace, path separators and control characters each become a
// single "-", so a name can never introduce a directory level.
var separators = regexp.MustCompile(`[\s/\\\x00-\x1f\x7f]+`)

func collapse(s string) string {
	return separators.ReplaceAllString(strings.TrimSpace(s), "-")
}

// DocumentFilename is the suggested name for one participant's document.
// Names differing only in whitespace map to the same file.
func DocumentFilename(displayName string) string {
	return "certificate-" + collapse(displayName) + ".pdf"
}

func disambiguatedFilename(displayName, verificationID string) string {
	return "certificate-" + collapse(displayName) + "-" + collapse(verificationID) + ".pdf"
}

func ArchiveFilename(courseTitle string) string {
	return "certificates-" + collapse(courseTitle) + ".zip"
}
