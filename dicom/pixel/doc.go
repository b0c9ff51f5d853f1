// Package pixel reconstructs Pixel Data (7FE0,0010) frame buffers and
// carries the Image Pixel module metadata describing them.
//
// Decompression, color-space conversion, LUT application, and image
// rendering are out of scope: this package stops at per-frame raw bytes
// plus the dimensional/representation metadata needed to interpret them.
//
// # Encapsulated Pixel Data
//
// Compressed transfer syntaxes frame Pixel Data as a Basic Offset Table
// item followed by one or more fragment items, terminated by a Sequence
// Delimitation Item. ParseEncapsulatedPixelData parses that framing;
// GetFrameFragments groups fragments into frames using the offset table
// when present, or a 1:1 fragment-to-frame mapping when it is empty.
//
//	encap, err := pixel.ParseEncapsulatedPixelData(rawItemBytes)
//	for i := 0; i < encap.NumFrames(); i++ {
//	    fragments, _ := encap.GetFrameFragments(i)
//	    frame := pixel.ConcatenateFragments(fragments)
//	}
//
// dicom/element_parser.go calls this during parsing so encapsulated Pixel
// Data is already split into frames (dicom/value.FramesValue) by the time a
// DataSet is returned. Native Pixel Data is stored as one BytesValue.
//
// # Extracting Metadata
//
// dicom.ExtractPixelData(ds) reads the Image Pixel module (Rows, Columns,
// BitsAllocated, PhotometricInterpretation, etc.) alongside the parsed
// Pixel Data value and assembles a PixelData:
//
//	ds, err := dicom.ParseFile("ct_image.dcm")
//	pixelData, err := dicom.ExtractPixelData(ds)
//	pixels := pixelData.Array() // []uint8, []int8, []uint16, or []int16
//	for i, frame := range pixelData.Frames() {
//	    _ = frame.Array()
//	}
package pixel
