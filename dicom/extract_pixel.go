package dicom

import (
	"bytes"
	"fmt"

	"github.com/brightlake/dicomcore/dicom/pixel"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
)

// ExtractPixelData reads the Image Pixel module attributes (group 0028) and
// Pixel Data (7FE0,0010) from ds and assembles a pixel.PixelData, concatenating
// per-frame buffers (native or fragment-reconstructed, see dicom/pixel/fragments.go
// via element_parser.go's readEncapsulatedPixelData) into one contiguous buffer.
func ExtractPixelData(ds *DataSet) (*pixel.PixelData, error) {
	pixelElem, err := ds.Get(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pixel.ErrPixelDataNotFound, err)
	}

	rows, err := getUint16Attr(ds, tag.Rows)
	if err != nil {
		return nil, err
	}
	columns, err := getUint16Attr(ds, tag.Columns)
	if err != nil {
		return nil, err
	}
	bitsAllocated, err := getUint16Attr(ds, tag.BitsAllocated)
	if err != nil {
		return nil, err
	}
	bitsStored, err := getUint16Attr(ds, tag.BitsStored)
	if err != nil {
		return nil, err
	}
	highBit, err := getUint16Attr(ds, tag.HighBit)
	if err != nil {
		return nil, err
	}
	pixelRepresentation, err := getUint16Attr(ds, tag.PixelRepresentation)
	if err != nil {
		return nil, err
	}
	samplesPerPixel, err := getUint16Attr(ds, tag.SamplesPerPixel)
	if err != nil {
		return nil, err
	}

	photometricInterpretation := ""
	if elem, err := ds.Get(tag.PhotometricInterpretation); err == nil {
		if sv, ok := elem.Value().(*value.StringValue); ok && len(sv.Strings()) > 0 {
			photometricInterpretation = sv.Strings()[0]
		}
	}

	var planarConfiguration uint16
	if v, err := getUint16Attr(ds, tag.PlanarConfiguration); err == nil {
		planarConfiguration = v
	}

	numberOfFrames := 1
	if elem, err := ds.Get(tag.NumberOfFrames); err == nil {
		if sv, ok := elem.Value().(*value.StringValue); ok && len(sv.Strings()) > 0 {
			if n, parseErr := parsePositiveInt(sv.Strings()[0]); parseErr == nil && n > 0 {
				numberOfFrames = n
			}
		}
	}

	data, err := concatenatePixelDataFrames(pixelElem.Value())
	if err != nil {
		return nil, err
	}

	transferSyntaxUID := ""
	if fileMeta := ds.FileMetaInformation(); fileMeta != nil {
		if tsElem, err := fileMeta.Get(tag.TransferSyntaxUID); err == nil {
			if sv, ok := tsElem.Value().(*value.StringValue); ok && len(sv.Strings()) > 0 {
				transferSyntaxUID = sv.Strings()[0]
			}
		}
	}

	return pixel.NewPixelData(rows, columns, bitsAllocated, bitsStored, highBit, pixelRepresentation,
		samplesPerPixel, photometricInterpretation, planarConfiguration, numberOfFrames, data, transferSyntaxUID), nil
}

// concatenatePixelDataFrames flattens a FramesValue's per-frame buffers into
// one contiguous run, or returns a plain BytesValue's bytes unchanged. The
// parser produces a FramesValue for encapsulated Pixel Data and a BytesValue
// for native Pixel Data.
func concatenatePixelDataFrames(v value.Value) ([]byte, error) {
	switch val := v.(type) {
	case *value.FramesValue:
		var buf bytes.Buffer
		for _, frame := range val.Frames() {
			buf.Write(frame)
		}
		return buf.Bytes(), nil
	case *value.BytesValue:
		return val.Bytes(), nil
	default:
		return nil, &pixel.PixelDataError{Field: "PixelData", Expected: "*value.FramesValue or *value.BytesValue", Actual: fmt.Sprintf("%T", v)}
	}
}

func getUint16Attr(ds *DataSet, t tag.Tag) (uint16, error) {
	name := attributeName(t)

	elem, err := ds.Get(t)
	if err != nil {
		return 0, &pixel.MissingAttributeError{AttributeName: name, Tag: t.String()}
	}
	iv, ok := elem.Value().(*value.IntValue)
	if !ok {
		return 0, &pixel.PixelDataError{Field: name, Expected: "numeric value", Actual: fmt.Sprintf("%T", elem.Value())}
	}
	ints := iv.Ints()
	if len(ints) == 0 {
		return 0, &pixel.MissingAttributeError{AttributeName: name, Tag: t.String()}
	}
	return uint16(ints[0]), nil
}

func attributeName(t tag.Tag) string {
	if info, err := tag.Find(t); err == nil {
		return info.Keyword
	}
	return t.String()
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
