// Package charset resolves the DICOM Specific Character Set (0008,0005)
// defined terms to Go text encodings, and decodes the string-typed VRs
// (SH, LO, ST, LT, UC, UT, PN) from their stored bytes to UTF-8.
//
// Grounded on GoogleCloudPlatform-go-dicom-parser's charactersets.go: a
// defined-term-to-label lookup table feeding golang.org/x/net/html/charset's
// label registry, backed by golang.org/x/text/encoding implementations.
package charset

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/japanese"          // registers shift-jis, euc-jp, iso-2022-jp labels
	_ "golang.org/x/text/encoding/korean"             // registers euc-kr
	_ "golang.org/x/text/encoding/simplifiedchinese"  // registers gbk, gb18030
)

// defaultTerm is the DICOM default character repertoire (ISO-IR 6, the
// basic G0 set of ISO 646 / 7-bit ASCII), used when Specific Character Set
// is absent or empty.
const defaultTerm = ""

// lookupLabelByTerm maps DICOM Specific Character Set defined terms (PS3.3
// Table C.12-2 and C.12-3) to the http://www.iana.org/assignments/character-sets
// labels golang.org/x/net/html/charset understands.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.12.1.1.2
var lookupLabelByTerm = map[string]string{
	defaultTerm:     "us-ascii",
	"ISO_IR 6":      "us-ascii",
	"ISO_IR 100":    "iso-8859-1",
	"ISO_IR 101":    "iso-8859-2",
	"ISO_IR 109":    "iso-8859-3",
	"ISO_IR 110":    "iso-8859-4",
	"ISO_IR 144":    "iso-8859-5",
	"ISO_IR 127":    "iso-8859-6",
	"ISO_IR 126":    "iso-8859-7",
	"ISO_IR 138":    "iso-8859-8",
	"ISO_IR 148":    "iso-8859-9",
	"ISO_IR 13":     "shift-jis",
	"ISO_IR 166":    "tis-620",
	"ISO_IR 192":    "utf-8",
	"GB18030":       "gb18030",
	"GBK":           "gbk",
	"ISO 2022 IR 6":   "us-ascii",
	"ISO 2022 IR 100": "iso-8859-1",
	"ISO 2022 IR 101": "iso-8859-2",
	"ISO 2022 IR 109": "iso-8859-3",
	"ISO 2022 IR 110": "iso-8859-4",
	"ISO 2022 IR 144": "iso-8859-5",
	"ISO 2022 IR 127": "iso-8859-6",
	"ISO 2022 IR 126": "iso-8859-7",
	"ISO 2022 IR 138": "iso-8859-8",
	"ISO 2022 IR 148": "iso-8859-9",
	"ISO 2022 IR 13":  "shift-jis",
	"ISO 2022 IR 166": "tis-620",
	"ISO 2022 IR 87":  "iso-2022-jp",
	"ISO 2022 IR 159": "iso-2022-jp",
	"ISO 2022 IR 149": "euc-kr",
}

// NamedEncoding pairs a resolved text encoding with its canonical label, so
// callers needing encoding-specific post-processing (see DecodeString's
// euc-kr handling) can branch on the name.
type NamedEncoding struct {
	encoding.Encoding
	Term          string
	CanonicalName string
}

// Lookup resolves a Specific Character Set defined term to its encoding.
// An unrecognized term is not fatal to the caller: it returns ErrUnknownTerm
// so the caller can decide whether to fall back to the default repertoire.
func Lookup(term string) (*NamedEncoding, error) {
	label, ok := lookupLabelByTerm[strings.TrimSpace(term)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerm, term)
	}

	enc, canonicalName := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("%w: no encoding registered for label %q (term %q)", ErrUnknownTerm, label, term)
	}
	return &NamedEncoding{Encoding: enc, Term: term, CanonicalName: canonicalName}, nil
}

// System holds the encodings of the three PN component groups
// (alphabetic, ideographic, phonetic) for a Specific Character Set
// (0008,0005) value. NewSystem gives all three groups the same encoding.
type System struct {
	encodings [3]*NamedEncoding
}

// DefaultSystem returns a System using the ISO-IR 6 default repertoire for
// every component group.
func DefaultSystem() *System {
	def, _ := Lookup(defaultTerm)
	return &System{encodings: [3]*NamedEncoding{def, def, def}}
}

// NewSystem resolves a System from the (possibly multi-valued) Specific
// Character Set element values. Unresolvable terms are logged as a warning
// and skipped. When more than one term resolves (multi-valued code
// extensions), only the first is used, for all three groups, and a warning
// is logged; the result is never an error, matching the permissive-reader
// posture of the rest of the codec.
func NewSystem(terms []string) (*System, error) {
	if len(terms) == 0 {
		return DefaultSystem(), nil
	}

	sys := DefaultSystem()
	resolved := make([]*NamedEncoding, 0, len(terms))
	for _, term := range terms {
		enc, err := Lookup(term)
		if err != nil {
			log.Warn("unresolvable character set term, falling back to default repertoire", "term", term, "error", err)
			continue
		}
		resolved = append(resolved, enc)
	}
	if len(resolved) == 0 {
		return sys, nil
	}

	if len(resolved) > 1 {
		log.Warn("multiple character set terms, only the first is used", "terms", terms, "used", resolved[0].Term)
	}
	for i := range sys.encodings {
		sys.encodings[i] = resolved[0]
	}
	return sys, nil
}

// DecodeComponent decodes one PN component group (alphabetic=0,
// ideographic=1, phonetic=2) from its stored bytes to UTF-8.
func (s *System) DecodeComponent(group int, raw string) string {
	if group < 0 || group >= len(s.encodings) || s.encodings[group] == nil {
		return raw
	}
	return DecodeString(raw, s.encodings[group])
}

// DecodeString decodes a single string value using the given encoding,
// falling back to the raw string if decoding fails so a bad byte sequence
// degrades the one value rather than aborting the parse.
func DecodeString(s string, enc *NamedEncoding) string {
	if enc == nil {
		return s
	}
	decoded, err := enc.NewDecoder().String(s)
	if err != nil {
		log.Warn("character decode failed, keeping raw bytes", "encoding", enc.CanonicalName, "error", err)
		return s
	}

	if enc.CanonicalName == "euc-kr" {
		// golang.org/x/text doesn't strip the ISO 2022 escape sequence
		// switching to the GR half of KS X 1001; remove it post-decode.
		decoded = strings.ReplaceAll(decoded, "\x1b\x24\x29\x43", "")
	}
	return decoded
}
