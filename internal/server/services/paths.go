package services

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

const (
	objectPrefix    = "radicaciones"
	maxSafeNameLen  = 100
	fallbackName    = "archivo"
	radicadoPrefix  = "RAD"
	radicadoRandLen = 4
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName turns a user supplied file name into a safe object key
// segment: accents are folded, anything outside [A-Za-z0-9._-] becomes "_"
// and the result is capped in length, keeping the extension.
func SanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), base)
	if err == nil {
		base = folded
	}

	s := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if s == "" {
		return fallbackName
	}
	if len(s) > maxSafeNameLen {
		ext := path.Ext(s)
		if len(ext) >= maxSafeNameLen {
			ext = ""
		}
		s = s[:maxSafeNameLen-len(ext)] + ext
	}
	return s
}

// ObjectPath is the storage key of the ordinal-th (1-based) file of category
// c in a submission.
func ObjectPath(submissionID string, c common.Category, ordinal int, name string) string {
	return fmt.Sprintf("%s/%s/%s/%03d-%s", objectPrefix, submissionID, c, ordinal, SanitizeName(name))
}
