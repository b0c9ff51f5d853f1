package dicom

import (
	"strings"

	"github.com/brightlake/dicomcore/dicom/charset"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
)

// specificCharacterSetTag is (0008,0005), the element naming the text
// encoding of every other text-VR value in the dataset. It only governs the
// main dataset: File Meta Information is always Explicit VR Little Endian
// with ASCII-only values, so applyCharacterSet is never run over it.
var specificCharacterSetTag = tag.New(0x0008, 0x0005)

// textVRNeedsDecoding reports whether a VR's string values are subject to
// Specific Character Set decoding. Per PS3.5 6.1.2.3, the VRs AE, AS, CS,
// DA, DS, DT, IS, TM, UI and UL are restricted to the default repertoire
// and are left alone.
func textVRNeedsDecoding(v vr.VR) bool {
	switch v {
	case vr.ShortString, vr.LongString, vr.ShortText, vr.LongText,
		vr.UnlimitedCharacters, vr.UnlimitedText, vr.PersonName:
		return true
	default:
		return false
	}
}

// applyCharacterSet decodes every text-VR element of ds from its stored
// bytes to UTF-8, using the Specific Character Set (0008,0005) value
// already present in ds. It is a no-op if the dataset has no text elements.
//
// This runs as a single pass after the whole dataset is parsed, rather than
// threading charset state through the streaming element reader: Specific
// Character Set can in principle be read before or interleaved with the
// elements it governs, and the defined terms themselves are plain ASCII
// (VR CS), so decoding it up front costs nothing. All of its values are
// passed to charset.NewSystem.
func applyCharacterSet(ds *DataSet) error {
	sys := charset.DefaultSystem()
	if scsElem, err := ds.Get(specificCharacterSetTag); err == nil {
		if sv, ok := scsElem.Value().(*value.StringValue); ok {
			resolved, err := charset.NewSystem(sv.Strings())
			if err != nil {
				return err
			}
			sys = resolved
		}
	}

	for _, elem := range ds.Elements() {
		if !textVRNeedsDecoding(elem.VR()) {
			continue
		}

		sv, ok := elem.Value().(*value.StringValue)
		if !ok {
			continue
		}

		if elem.VR() == vr.PersonName {
			decoded := decodePersonNameValue(sys, sv.Strings())
			if err := elem.SetValue(decoded); err != nil {
				return err
			}
			continue
		}

		decodedStrings := make([]string, len(sv.Strings()))
		for i, raw := range sv.Strings() {
			decodedStrings[i] = sys.DecodeComponent(0, raw)
		}
		decodedVal, err := value.NewStringValue(elem.VR(), decodedStrings)
		if err != nil {
			return err
		}
		if err := elem.SetValue(decodedVal); err != nil {
			return err
		}
	}

	return nil
}

// decodePersonNameValue splits each PN value into its (up to three) '='
// separated component groups, decodes each group with the matching
// Specific Character Set component encoding, then splits the decoded text
// into the five '^' separated name components.
func decodePersonNameValue(sys *charset.System, rawValues []string) *value.PersonNameValue {
	values := make([]value.PersonNameComponents, len(rawValues))
	for i, raw := range rawValues {
		groups := strings.Split(raw, "=")

		values[i] = value.PersonNameComponents{
			Alphabetic: decodePersonNameGroup(sys, 0, groupAt(groups, 0)),
		}
		if len(groups) > 1 {
			g := decodePersonNameGroup(sys, 1, groupAt(groups, 1))
			values[i].Ideographic = &g
		}
		if len(groups) > 2 {
			g := decodePersonNameGroup(sys, 2, groupAt(groups, 2))
			values[i].Phonetic = &g
		}
	}
	return value.NewPersonNameValue(values)
}

func groupAt(groups []string, i int) string {
	if i >= len(groups) {
		return ""
	}
	return groups[i]
}

func decodePersonNameGroup(sys *charset.System, group int, raw string) value.PersonNameComponentGroup {
	return splitPersonNameComponentGroup(sys.DecodeComponent(group, raw))
}

// splitPersonNameComponentGroup splits one already-decoded PN group string
// on '^' into its five FamilyName/GivenName/MiddleName/Prefix/Suffix fields.
// Shared by applyCharacterSet (wire bytes -> decoded text -> split) and
// naturalize.go's Denaturalize (natural-dataset text -> split, no decode
// needed since naturalized values are already UTF-8).
func splitPersonNameComponentGroup(decoded string) value.PersonNameComponentGroup {
	parts := strings.Split(decoded, "^")
	g := value.PersonNameComponentGroup{}
	fields := []*string{&g.FamilyName, &g.GivenName, &g.MiddleName, &g.Prefix, &g.Suffix}
	for i, f := range fields {
		if i < len(parts) {
			*f = parts[i]
		}
	}
	return g
}
