package dicom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/brightlake/dicomcore/dicom/element"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
	"github.com/charmbracelet/log"
)

// NaturalDataSet is the dictionary-name-keyed overlay of a DataSet: the same
// elements, addressed by their DICOM keyword (e.g. "PatientName") instead of
// tag. VM=1 elements are stored as a bare Go value rather than a
// single-element slice; VM>1 elements are a slice. AsSlice normalizes
// either shape back to a slice for callers that want uniform indexing.
//
// VRMap records, for every name whose wire VR could not be recovered from
// the dictionary alone (private/unknown tags, and tags like PixelData whose
// dictionary entry lists more than one legal VR), the exact VR the element
// was encoded with on the wire. Denaturalize consults it before falling
// back to the dictionary's first listed VR.
type NaturalDataSet struct {
	Values map[string]any
	VRMap  map[string]string

	// rawValues holds the original wire text for DecimalString/IntegerString
	// elements, keyed by name. DS/IS values are naturalized to float64/int64
	// for callers that want numbers, but reformatting a float can silently
	// change its text (3.1400 -> 3.14). Denaturalize prefers the raw text
	// when present so naturalize(denaturalize(x)) round-trips byte-exact,
	// matching the DS round-trip requirement.
	rawValues map[string]string
}

// NewNaturalDataSet returns an empty NaturalDataSet ready for population,
// e.g. by callers assembling a dataset programmatically before Denaturalize.
func NewNaturalDataSet() *NaturalDataSet {
	return &NaturalDataSet{
		Values:    map[string]any{},
		VRMap:     map[string]string{},
		rawValues: map[string]string{},
	}
}

// NaturalPersonName is the naturalized form of a PN value: up to three
// coding-system representations, each already joined in
// FamilyName^GivenName^MiddleName^Prefix^Suffix form.
type NaturalPersonName struct {
	Alphabetic  string
	Ideographic string
	Phonetic    string
}

// NaturalBulkData is the naturalized form of a diverted bulk-data value
// (see value.BulkDataValue): a reference rather than inlined bytes.
type NaturalBulkData struct {
	URI    string
	UUID   string
	Length int
}

// NaturalPixelData is the naturalized form of Pixel Data (7FE0,0010): its
// per-frame buffers plus whether the wire encoding was encapsulated, which
// a bare [][]byte cannot distinguish from any other multi-valued binary VR.
type NaturalPixelData struct {
	Frames       [][]byte
	Encapsulated bool
}

// AsSlice normalizes a naturalized value to a slice regardless of whether
// Naturalize unwrapped it to a bare scalar (VM=1) or left it as a slice
// (VM>1). dcmjs achieves this with a Proxy that makes a boxed scalar answer
// to array indexing; Go has no equivalent duck typing, so callers that need
// result[0] to always work should route the value through AsSlice first.
func AsSlice(val any) []any {
	if val == nil {
		return nil
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice {
		return []any{val}
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func unwrapSlice[T any](s []T) any {
	if len(s) == 1 {
		return s[0]
	}
	return s
}

// Naturalize converts a tag-keyed DataSet into its dictionary-name-keyed
// overlay. Sequences are naturalized recursively; PN values use the
// structured components already produced by applyCharacterSet rather than
// re-parsing their wire text.
func Naturalize(ds *DataSet) *NaturalDataSet {
	nds := NewNaturalDataSet()

	for _, elem := range ds.Elements() {
		wireVR := elem.VR()
		info, err := tag.Find(elem.Tag())

		name := elem.Tag().String()
		mismatch := err != nil
		if err == nil {
			name = info.Keyword
			if len(info.VRs) != 1 || info.VRs[0] != wireVR {
				mismatch = true
			}
		}
		if mismatch {
			nds.VRMap[name] = wireVR.String()
		}

		natural, raw, hasRaw := naturalizeValue(elem.Value())
		nds.Values[name] = natural
		if hasRaw {
			nds.rawValues[name] = raw
		}
	}

	return nds
}

func naturalizeValue(v value.Value) (natural any, raw string, hasRaw bool) {
	switch val := v.(type) {
	case *value.SequenceValue:
		items := val.Items()
		natItems := make([]*NaturalDataSet, 0, len(items))
		for _, item := range items {
			ds, ok := item.(*DataSet)
			if !ok {
				continue
			}
			natItems = append(natItems, Naturalize(ds))
		}
		return unwrapSlice(natItems), "", false

	case *value.PersonNameValue:
		comps := val.Components()
		names := make([]NaturalPersonName, len(comps))
		for i, c := range comps {
			names[i] = NaturalPersonName{Alphabetic: c.Alphabetic.String()}
			if c.Ideographic != nil {
				names[i].Ideographic = c.Ideographic.String()
			}
			if c.Phonetic != nil {
				names[i].Phonetic = c.Phonetic.String()
			}
		}
		return unwrapSlice(names), "", false

	case *value.TagValue:
		refs := val.Tags()
		strs := make([]string, len(refs))
		for i, r := range refs {
			strs[i] = r.String()
		}
		return unwrapSlice(strs), "", false

	case *value.FramesValue:
		return NaturalPixelData{Frames: val.Frames(), Encapsulated: val.Encapsulated()}, "", false

	case *value.BulkDataValue:
		return NaturalBulkData{URI: val.BulkDataURI(), UUID: val.BulkDataUUID(), Length: val.Length()}, "", false

	case *value.BytesValue:
		return val.Bytes(), "", false

	case *value.IntValue:
		return unwrapSlice(val.Ints()), "", false

	case *value.FloatValue:
		return unwrapSlice(val.Floats()), "", false

	case *value.StringValue:
		strs := val.Strings()
		switch val.VR() {
		case vr.DecimalString:
			if floats, ok := parseFloats(strs); ok {
				return unwrapSlice(floats), strings.Join(strs, `\`), true
			}
		case vr.IntegerString:
			if ints, ok := parseInts(strs); ok {
				return unwrapSlice(ints), strings.Join(strs, `\`), true
			}
		}
		return unwrapSlice(strs), "", false

	default:
		return nil, "", false
	}
}

// parseFloats parses every DS component, failing the whole element (falling
// back to plain strings) rather than mixing numbers and nulls in one slice:
// a strongly-typed []float64 is more useful to Go callers than the sparse
// array-with-nulls the dynamic source produces on a parse failure.
func parseFloats(strs []string) ([]float64, bool) {
	out := make([]float64, len(strs))
	for i, s := range strs {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func parseInts(strs []string) ([]int64, bool) {
	out := make([]int64, len(strs))
	for i, s := range strs {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// Denaturalize converts a NaturalDataSet back into a tag-keyed DataSet.
// Unknown names are logged and skipped rather than aborting the whole
// conversion.
func Denaturalize(nds *NaturalDataSet) (*DataSet, error) {
	ds := NewDataSet()

	for name, natural := range nds.Values {
		t, info, ok := resolveNaturalName(name)
		if !ok {
			log.Warn("denaturalize: unrecognized attribute name, skipping", "name", name)
			continue
		}

		wireVR := defaultVRFor(info)
		if override, present := nds.VRMap[name]; present {
			if parsed, err := vr.Parse(override); err == nil {
				wireVR = parsed
			}
		}

		raw, hasRaw := nds.rawValues[name]
		val, err := denaturalizeValue(wireVR, natural, raw, hasRaw)
		if err != nil {
			return nil, fmt.Errorf("denaturalize %s: %w", name, err)
		}

		val = truncateIfNeeded(wireVR, val, name)

		elem, err := element.NewElement(t, wireVR, val)
		if err != nil {
			return nil, fmt.Errorf("denaturalize %s: building element: %w", name, err)
		}
		if err := ds.Add(elem); err != nil {
			return nil, fmt.Errorf("denaturalize %s: adding element: %w", name, err)
		}
	}

	return ds, nil
}

// resolveNaturalName recovers the tag (and, when known, the dictionary
// Info) for a naturalized name: either a "(GGGG,EEEE)" key (private or
// dictionary-unknown tags, as produced by Naturalize) or a dictionary
// keyword.
func resolveNaturalName(name string) (tag.Tag, tag.Info, bool) {
	if strings.HasPrefix(name, "(") {
		t, err := tag.Parse(name)
		if err != nil {
			return tag.Tag{}, tag.Info{}, false
		}
		info, _ := tag.Find(t) // absence is fine; VRMap carries the real VR
		return t, info, true
	}

	info, err := tag.FindByKeyword(name)
	if err != nil {
		return tag.Tag{}, tag.Info{}, false
	}
	return info.Tag, info, true
}

func defaultVRFor(info tag.Info) vr.VR {
	if len(info.VRs) == 0 {
		return vr.Unknown
	}
	return info.VRs[0]
}

func denaturalizeValue(wireVR vr.VR, natural any, raw string, hasRaw bool) (value.Value, error) {
	switch wireVR {
	case vr.SequenceOfItems:
		items, err := denaturalizeSequence(natural)
		if err != nil {
			return nil, err
		}
		return value.NewSequenceValue(items, false), nil

	case vr.PersonName:
		return value.NewPersonNameValue(denaturalizePersonNames(natural)), nil

	case vr.AttributeTag:
		refs, err := denaturalizeTagRefs(natural)
		if err != nil {
			return nil, err
		}
		return value.NewTagValue(refs), nil

	case vr.DecimalString, vr.IntegerString:
		return denaturalizeNumericString(wireVR, natural, raw, hasRaw)

	case vr.SignedShort, vr.UnsignedShort, vr.SignedLong, vr.UnsignedLong,
		vr.SignedVeryLong, vr.UnsignedVeryLong:
		ints, err := denaturalizeInts(natural)
		if err != nil {
			return nil, err
		}
		return value.NewIntValue(wireVR, ints)

	case vr.FloatingPointSingle, vr.FloatingPointDouble:
		floats, err := denaturalizeFloats(natural)
		if err != nil {
			return nil, err
		}
		return value.NewFloatValue(wireVR, floats)

	case vr.OtherByte, vr.OtherDouble, vr.OtherFloat, vr.OtherLong, vr.OtherVeryLong, vr.OtherWord, vr.Unknown:
		if np, ok := natural.(NaturalPixelData); ok {
			return value.NewFramesValue(wireVR, np.Frames, np.Encapsulated), nil
		}
		if nb, ok := natural.(NaturalBulkData); ok {
			return value.NewBulkDataValue(wireVR, nb.URI, nb.UUID, nb.Length), nil
		}
		data, ok := natural.([]byte)
		if !ok {
			return nil, fmt.Errorf("expected []byte, %T, or %T natural value for VR %s, got %T",
				NaturalPixelData{}, NaturalBulkData{}, wireVR, natural)
		}
		return value.NewBytesValue(wireVR, data)

	default:
		return value.NewStringValue(wireVR, naturalToStrings(natural))
	}
}

func denaturalizeSequence(natural any) ([]value.Dataset, error) {
	switch v := natural.(type) {
	case *NaturalDataSet:
		ds, err := Denaturalize(v)
		if err != nil {
			return nil, err
		}
		return []value.Dataset{ds}, nil
	case []*NaturalDataSet:
		items := make([]value.Dataset, len(v))
		for i, n := range v {
			ds, err := Denaturalize(n)
			if err != nil {
				return nil, err
			}
			items[i] = ds
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected *NaturalDataSet or []*NaturalDataSet, got %T", natural)
	}
}

func denaturalizePersonNames(natural any) []value.PersonNameComponents {
	switch v := natural.(type) {
	case NaturalPersonName:
		return []value.PersonNameComponents{personNameComponentsFrom(v)}
	case []NaturalPersonName:
		out := make([]value.PersonNameComponents, len(v))
		for i, n := range v {
			out[i] = personNameComponentsFrom(n)
		}
		return out
	default:
		return nil
	}
}

func personNameComponentsFrom(n NaturalPersonName) value.PersonNameComponents {
	c := value.PersonNameComponents{Alphabetic: splitPersonNameComponentGroup(n.Alphabetic)}
	if n.Ideographic != "" {
		g := splitPersonNameComponentGroup(n.Ideographic)
		c.Ideographic = &g
	}
	if n.Phonetic != "" {
		g := splitPersonNameComponentGroup(n.Phonetic)
		c.Phonetic = &g
	}
	return c
}

func denaturalizeTagRefs(natural any) ([]value.TagRef, error) {
	switch v := natural.(type) {
	case string:
		t, err := tag.Parse(v)
		if err != nil {
			return nil, err
		}
		return []value.TagRef{{Group: t.Group, Element: t.Element}}, nil
	case []string:
		out := make([]value.TagRef, len(v))
		for i, s := range v {
			t, err := tag.Parse(s)
			if err != nil {
				return nil, err
			}
			out[i] = value.TagRef{Group: t.Group, Element: t.Element}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or []string tag reference, got %T", natural)
	}
}

func denaturalizeNumericString(wireVR vr.VR, natural any, raw string, hasRaw bool) (*value.StringValue, error) {
	if hasRaw {
		return value.NewStringValue(wireVR, strings.Split(raw, `\`))
	}

	switch v := natural.(type) {
	case float64:
		return value.NewStringValue(wireVR, []string{strconv.FormatFloat(v, 'g', -1, 64)})
	case []float64:
		strs := make([]string, len(v))
		for i, f := range v {
			strs[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return value.NewStringValue(wireVR, strs)
	case int64:
		return value.NewStringValue(wireVR, []string{strconv.FormatInt(v, 10)})
	case []int64:
		strs := make([]string, len(v))
		for i, n := range v {
			strs[i] = strconv.FormatInt(n, 10)
		}
		return value.NewStringValue(wireVR, strs)
	case string:
		return value.NewStringValue(wireVR, []string{v})
	case []string:
		return value.NewStringValue(wireVR, v)
	default:
		return nil, fmt.Errorf("unsupported natural value %T for VR %s", natural, wireVR)
	}
}

func denaturalizeInts(natural any) ([]int64, error) {
	switch v := natural.(type) {
	case int64:
		return []int64{v}, nil
	case []int64:
		return v, nil
	default:
		return nil, fmt.Errorf("expected int64 or []int64, got %T", natural)
	}
}

func denaturalizeFloats(natural any) ([]float64, error) {
	switch v := natural.(type) {
	case float64:
		return []float64{v}, nil
	case []float64:
		return v, nil
	default:
		return nil, fmt.Errorf("expected float64 or []float64, got %T", natural)
	}
}

func naturalToStrings(natural any) []string {
	switch v := natural.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

// truncateIfNeeded enforces a VR's MaxLength on write-back, except for the
// three range-matching temporal VRs (DA, DT, TM) whose "-" range syntax can
// legitimately exceed the single-value nominal length.
func truncateIfNeeded(wireVR vr.VR, val value.Value, name string) value.Value {
	if wireVR == vr.Date || wireVR == vr.DateTime || wireVR == vr.Time {
		return val
	}
	maxLen := wireVR.MaxLength()
	if maxLen == 0 {
		return val
	}
	sv, ok := val.(*value.StringValue)
	if !ok {
		return val
	}

	strs := sv.Strings()
	out := make([]string, len(strs))
	truncated := false
	for i, s := range strs {
		if len(s) > maxLen {
			out[i] = s[:maxLen]
			truncated = true
		} else {
			out[i] = s
		}
	}
	if !truncated {
		return val
	}

	log.Warn("denaturalize: truncated value exceeding VR max length", "name", name, "vr", wireVR.String(), "maxLength", maxLen)
	newVal, err := value.NewStringValue(wireVR, out)
	if err != nil {
		return val
	}
	return newVal
}
