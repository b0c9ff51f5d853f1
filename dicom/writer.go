package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brightlake/dicomcore/dicom/element"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/uid"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
	"github.com/brightlake/dicomcore/dicom/vrcodec"
)

// WriteOptions configures DICOM file writing behavior.
type WriteOptions struct {
	// TransferSyntax specifies the transfer syntax for encoding the dataset.
	// If nil, uses Explicit VR Little Endian (1.2.840.10008.1.2.1)
	TransferSyntax *uid.UID

	// Overwrite allows overwriting existing files.
	// Default: false (error if file exists)
	Overwrite bool

	// CreateDirs creates parent directories if they don't exist.
	// Default: true
	CreateDirs bool

	// Atomic uses atomic write (temp file + rename) to prevent corruption on failure.
	// Default: true
	Atomic bool

	// ValidateAfterWrite re-parses the file after writing to verify integrity.
	// Default: false (for performance)
	ValidateAfterWrite bool

	// AllowInvalidVRLength suppresses ErrLengthExceeded when a value's
	// encoded length violates its VR's declared maximum (fixed-length
	// mismatch, or a bounded text VR over its MaxLength). Default: false
	// (a violation fails the write).
	AllowInvalidVRLength bool

	// FragmentMultiframe splits each frame of an encapsulated Pixel Data
	// value into fragments no larger than FragmentSize bytes instead of
	// writing one fragment per frame. Default: false.
	FragmentMultiframe bool

	// FragmentSize is the maximum fragment size in bytes when
	// FragmentMultiframe is set. Default: 20KiB (the spec's fragmentation
	// threshold for encapsulated transfer syntaxes) when left at 0.
	FragmentSize int `validate:"gte=0"`
}

const defaultFragmentSize = 20 * 1024

// WriteFile writes a DataSet to a DICOM file with proper Part 10 format.
//
// The function automatically generates required File Meta Information if not present:
//   - (0002,0001) File Meta Information Version
//   - (0002,0002) Media Storage SOP Class UID (from dataset 0008,0016)
//   - (0002,0003) Media Storage SOP Instance UID (from dataset 0008,0018)
//   - (0002,0010) Transfer Syntax UID
//   - (0002,0012) Implementation Class UID
//   - (0002,0013) Implementation Version Name
//
// The file structure follows DICOM Part 10:
//  1. 128-byte preamble (zeros)
//  2. "DICM" prefix
//  3. File Meta Information (Group 0002) - Explicit VR Little Endian
//  4. Dataset elements - encoded with specified transfer syntax
//
// Example:
//
//	err := dicom.WriteFile("/path/output.dcm", dataset)
//	if err != nil {
//	    log.Fatal(err)
//	}
func WriteFile(path string, ds *DataSet) error {
	return WriteFileWithOptions(path, ds, WriteOptions{})
}

// WriteFileWithOptions writes a DataSet to a DICOM file with configurable options.
//
// Example:
//
//	opts := dicom.WriteOptions{
//	    TransferSyntax: &uid.ExplicitVRLittleEndian,
//	    Overwrite: true,
//	    CreateDirs: true,
//	    Atomic: true,
//	}
//	err := dicom.WriteFileWithOptions("/path/output.dcm", dataset, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
func WriteFileWithOptions(path string, ds *DataSet, opts WriteOptions) error {
	if ds == nil {
		return fmt.Errorf("cannot write nil dataset")
	}

	// Apply default options
	opts = applyDefaultWriteOptions(opts)

	// Validate required elements
	if err := validateRequiredElements(ds); err != nil {
		return err
	}

	// Create parent directories if needed
	if opts.CreateDirs {
		parentDir := filepath.Dir(path)
		if err := os.MkdirAll(parentDir, 0o755); err != nil {
			return fmt.Errorf("failed to create parent directories: %w", err)
		}
	}

	// Check if file exists and handle overwrite
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use Overwrite: true to replace)", path)
		}
	}

	// Write the file
	if opts.Atomic {
		return writeFileAtomic(path, ds, opts)
	}
	return writeFileDirect(path, ds, opts)
}

// applyDefaultWriteOptions fills in missing options with sensible defaults.
func applyDefaultWriteOptions(opts WriteOptions) WriteOptions {
	if opts.TransferSyntax == nil {
		// Default to Explicit VR Little Endian
		explicitVRLE := uid.ExplicitVRLittleEndian
		opts.TransferSyntax = &explicitVRLE
	}

	// Note: CreateDirs and Atomic default behavior is handled at the call site
	// since we can't distinguish explicit false from zero value with bool types.
	// For directory operations, CreateDirs should be true.
	// For atomic writes, Atomic should be true when not explicitly set.

	return opts
}

// requiredUIDs carries the two File Meta Information UIDs that every
// written file must have, so their presence and shape can be checked
// through a single struct-tag validation pass rather than repeated by hand.
type requiredUIDs struct {
	SOPClassUID    string `validate:"required,max=64,dicomuid"`
	SOPInstanceUID string `validate:"required,max=64,dicomuid"`
}

// uidValidator is shared by every WriteFileWithOptions call; go-playground/validator's
// Validate type is safe for concurrent use once its custom validations are registered.
var uidValidator = newUIDValidator()

func newUIDValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dicomuid", func(fl validator.FieldLevel) bool {
		return isValidUID(fl.Field().String())
	})
	return v
}

// validateRequiredElements checks that the dataset has required UIDs for writing.
func validateRequiredElements(ds *DataSet) error {
	sopClassUIDElem, err := ds.Get(tag.New(0x0008, 0x0016))
	if err != nil {
		return fmt.Errorf("missing required element SOPClassUID (0008,0016): %w", err)
	}
	sopInstanceUIDElem, err := ds.Get(tag.New(0x0008, 0x0018))
	if err != nil {
		return fmt.Errorf("missing required element SOPInstanceUID (0008,0018): %w", err)
	}

	required := requiredUIDs{
		SOPClassUID:    extractUIDString(sopClassUIDElem),
		SOPInstanceUID: extractUIDString(sopInstanceUIDElem),
	}
	if err := uidValidator.Struct(required); err != nil {
		return fmt.Errorf("invalid required File Meta Information UIDs: %w", err)
	}

	return nil
}

// extractUIDString extracts a UID string from an element value.
// Handles both string values (VR=UI) and bytes values (VR=UN/OB with ASCII text).
func extractUIDString(elem *element.Element) string {
	val := elem.Value()

	// Handle BytesValue - decode bytes to string
	if bytesVal, ok := val.(*value.BytesValue); ok {
		// UID is stored as bytes, decode to string
		data := bytesVal.Bytes()
		// Trim null padding and spaces
		uid := strings.TrimRight(string(data), "\x00 ")
		return strings.TrimSpace(uid)
	}

	// Handle normal string values
	return strings.TrimSpace(val.String())
}

// isValidUID performs basic UID validation.
// UIDs must contain only digits, dots, and be reasonable length.
func isValidUID(uidStr string) bool {
	if uidStr == "" || len(uidStr) > 64 {
		return false
	}

	// Basic validation: should contain digits and dots
	for _, ch := range uidStr {
		if ch != '.' && (ch < '0' || ch > '9') {
			return false
		}
	}

	// Should not start or end with dot
	if uidStr[0] == '.' || uidStr[len(uidStr)-1] == '.' {
		return false
	}

	return true
}

// writeFileAtomic writes the file atomically using temp file + rename pattern.
func writeFileAtomic(path string, ds *DataSet, opts WriteOptions) error {
	// Create temp file in same directory (for atomic rename)
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".dicom-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		//nolint:errcheck // Best-effort cleanup of temp file
		// If temp file still exists (write failed), remove it
		os.Remove(tempPath)
	}()

	// Write to temp file
	if err := writeDICOMFile(tempFile, ds, opts); err != nil {
		//nolint:errcheck // Error path cleanup, primary error already captured
		tempFile.Close()
		return fmt.Errorf("failed to write DICOM data: %w", err)
	}

	// Sync to disk
	if err := tempFile.Sync(); err != nil {
		//nolint:errcheck // Error path cleanup, primary error already captured
		tempFile.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}

	// Close temp file before rename
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Validate after write if requested
	if opts.ValidateAfterWrite {
		if _, err := ParseFile(path); err != nil {
			return fmt.Errorf("validation failed after write: %w", err)
		}
	}

	return nil
}

// writeFileDirect writes the file directly without atomic guarantees.
func writeFileDirect(path string, ds *DataSet, opts WriteOptions) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if err := writeDICOMFile(file, ds, opts); err != nil {
		return fmt.Errorf("failed to write DICOM data: %w", err)
	}

	// Validate after write if requested
	if opts.ValidateAfterWrite {
		if _, err := ParseFile(path); err != nil {
			return fmt.Errorf("validation failed after write: %w", err)
		}
	}

	return nil
}

// writeDICOMFile writes the complete DICOM Part 10 file structure to a writer.
func writeDICOMFile(w io.Writer, ds *DataSet, opts WriteOptions) error {
	// 1. Write 128-byte preamble (null bytes)
	preamble := make([]byte, 128)
	if _, err := w.Write(preamble); err != nil {
		return fmt.Errorf("failed to write preamble: %w", err)
	}

	// 2. Write "DICM" prefix
	if _, err := w.Write([]byte("DICM")); err != nil {
		return fmt.Errorf("failed to write DICM prefix: %w", err)
	}

	// 3. Generate and write File Meta Information
	fileMetaInfo, err := generateFileMetaInformation(ds, opts.TransferSyntax)
	if err != nil {
		return fmt.Errorf("failed to generate file meta information: %w", err)
	}

	if err := writeFileMetaInformation(w, fileMetaInfo); err != nil {
		return fmt.Errorf("failed to write file meta information: %w", err)
	}

	// 4. Write dataset elements
	if err := writeDataSetElements(w, ds, opts); err != nil {
		return fmt.Errorf("failed to write dataset elements: %w", err)
	}

	return nil
}

// generateFileMetaInformation creates the File Meta Information group (0002).
func generateFileMetaInformation(ds *DataSet, transferSyntax *uid.UID) (*DataSet, error) {
	metaInfo := NewDataSet()

	// (0002,0001) File Meta Information Version - required, value is always [00\01]
	versionValue, err := value.NewBytesValue(vr.OtherByte, []byte{0x00, 0x01})
	if err != nil {
		return nil, fmt.Errorf("failed to create version value: %w", err)
	}
	versionElem, err := element.NewElement(tag.New(0x0002, 0x0001), vr.OtherByte, versionValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create version element: %w", err)
	}
	if err := metaInfo.Add(versionElem); err != nil {
		return nil, fmt.Errorf("failed to add version element: %w", err)
	}

	// (0002,0002) Media Storage SOP Class UID - from dataset (0008,0016)
	sopClassUIDElem, err := ds.Get(tag.New(0x0008, 0x0016))
	if err != nil {
		return nil, fmt.Errorf("missing SOPClassUID: %w", err)
	}
	sopClassUID := sopClassUIDElem.Value().String()
	sopClassValue, err := value.NewStringValue(vr.UniqueIdentifier, []string{sopClassUID})
	if err != nil {
		return nil, fmt.Errorf("failed to create sop class value: %w", err)
	}
	mediaSOPClassElem, err := element.NewElement(tag.New(0x0002, 0x0002), vr.UniqueIdentifier, sopClassValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create media sop class element: %w", err)
	}
	if err := metaInfo.Add(mediaSOPClassElem); err != nil {
		return nil, fmt.Errorf("failed to add media sop class element: %w", err)
	}

	// (0002,0003) Media Storage SOP Instance UID - from dataset (0008,0018)
	sopInstanceUIDElem, err := ds.Get(tag.New(0x0008, 0x0018))
	if err != nil {
		return nil, fmt.Errorf("missing SOPInstanceUID: %w", err)
	}
	sopInstanceUID := sopInstanceUIDElem.Value().String()
	sopInstanceValue, err := value.NewStringValue(vr.UniqueIdentifier, []string{sopInstanceUID})
	if err != nil {
		return nil, fmt.Errorf("failed to create sop instance value: %w", err)
	}
	mediaSOPInstanceElem, err := element.NewElement(tag.New(0x0002, 0x0003), vr.UniqueIdentifier, sopInstanceValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create media sop instance element: %w", err)
	}
	if err := metaInfo.Add(mediaSOPInstanceElem); err != nil {
		return nil, fmt.Errorf("failed to add media sop instance element: %w", err)
	}

	// (0002,0010) Transfer Syntax UID
	transferSyntaxStr := transferSyntax.String()
	transferSyntaxValue, err := value.NewStringValue(vr.UniqueIdentifier, []string{transferSyntaxStr})
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer syntax value: %w", err)
	}
	transferSyntaxElem, err := element.NewElement(tag.New(0x0002, 0x0010), vr.UniqueIdentifier, transferSyntaxValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer syntax element: %w", err)
	}
	if err := metaInfo.Add(transferSyntaxElem); err != nil {
		return nil, fmt.Errorf("failed to add transfer syntax element: %w", err)
	}

	// (0002,0012) Implementation Class UID
	implClassUID := "1.2.826.0.1.3680043.10.1451" // go-radx implementation UID
	implClassValue, err := value.NewStringValue(vr.UniqueIdentifier, []string{implClassUID})
	if err != nil {
		return nil, fmt.Errorf("failed to create impl class value: %w", err)
	}
	implClassElem, err := element.NewElement(tag.New(0x0002, 0x0012), vr.UniqueIdentifier, implClassValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create impl class element: %w", err)
	}
	if err := metaInfo.Add(implClassElem); err != nil {
		return nil, fmt.Errorf("failed to add impl class element: %w", err)
	}

	// (0002,0013) Implementation Version Name
	implVersionName := "GO-RADX_1_0"
	implVersionValue, err := value.NewStringValue(vr.ShortString, []string{implVersionName})
	if err != nil {
		return nil, fmt.Errorf("failed to create impl version value: %w", err)
	}
	implVersionElem, err := element.NewElement(tag.New(0x0002, 0x0013), vr.ShortString, implVersionValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create impl version element: %w", err)
	}
	if err := metaInfo.Add(implVersionElem); err != nil {
		return nil, fmt.Errorf("failed to add impl version element: %w", err)
	}

	return metaInfo, nil
}

// writeFileMetaInformation writes the File Meta Information group to a writer.
// File Meta Information is always written in Explicit VR Little Endian.
func writeFileMetaInformation(w io.Writer, metaInfo *DataSet) error {
	// File Meta Information is always Explicit VR Little Endian
	// We need to write each element in the proper format

	// Get all elements from metaInfo and sort by tag
	elements := metaInfo.Elements()

	for _, elem := range elements {
		if err := writeElement(w, elem, true, binary.LittleEndian, WriteOptions{}); err != nil {
			return fmt.Errorf("failed to write meta info element %s: %w", elem.Tag(), err)
		}
	}

	return nil
}

// writeDataSetElements writes all dataset elements to a writer.
func writeDataSetElements(w io.Writer, ds *DataSet, opts WriteOptions) error {
	// Determine if we should use explicit VR and byte order from the
	// transfer syntax. Endianness is a stream-wide property, not a
	// per-element or per-VR choice: every tag, length, and numeric value
	// body in the dataset shares the same order.
	useExplicitVR := isExplicitVRTransferSyntax(opts.TransferSyntax)
	order := transferSyntaxByteOrder(opts.TransferSyntax)

	// Get all elements and write them
	elements := ds.Elements()

	for _, elem := range elements {
		// Skip File Meta Information group (0002) in dataset
		if elem.Tag().Group == 0x0002 {
			continue
		}

		if err := writeElement(w, elem, useExplicitVR, order, opts); err != nil {
			return fmt.Errorf("failed to write element %s: %w", elem.Tag(), err)
		}
	}

	return nil
}

// isExplicitVRTransferSyntax determines if a transfer syntax uses explicit VR.
func isExplicitVRTransferSyntax(ts *uid.UID) bool {
	if ts == nil {
		return true // Default to explicit
	}

	// Implicit VR Little Endian is the one transfer syntax using implicit VR.
	return ts.String() != "1.2.840.10008.1.2"
}

// transferSyntaxByteOrder returns the byte order a transfer syntax encodes
// its stream in. Only Explicit VR Big Endian (retired) differs from little
// endian; every other transfer syntax in the registry, including all
// compressed ones, carries its header fields little endian.
func transferSyntaxByteOrder(ts *uid.UID) binary.ByteOrder {
	if ts == nil {
		return binary.LittleEndian
	}
	if ts.String() == uid.ExplicitVRBigEndian.String() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// writeTag writes a tag's group and element fields in the given byte order.
func writeTag(w io.Writer, t tag.Tag, order binary.ByteOrder) error {
	if err := binary.Write(w, order, t.Group); err != nil {
		return fmt.Errorf("failed to write tag group: %w", err)
	}
	if err := binary.Write(w, order, t.Element); err != nil {
		return fmt.Errorf("failed to write tag element: %w", err)
	}
	return nil
}

// writeElement writes a single DICOM element to a writer, dispatching to
// specialized encoders for Sequence of Items and encapsulated Pixel Data
// values that cannot be serialized as a flat byte run.
func writeElement(w io.Writer, elem *element.Element, explicitVR bool, order binary.ByteOrder, opts WriteOptions) error {
	t := elem.Tag()
	v := elem.VR()
	val := elem.Value()

	if err := writeTag(w, t, order); err != nil {
		return err
	}

	if sv, ok := val.(*value.SequenceValue); ok {
		return writeSequenceValue(w, sv, explicitVR, order, opts)
	}
	if fv, ok := val.(*value.FramesValue); ok && fv.Encapsulated() {
		return writeEncapsulatedFramesValue(w, v, fv, explicitVR, order, opts)
	}

	valueBytes, err := vrcodec.For(v).Write(val, order == binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("element %s: %w", t, err)
	}
	valueLength := uint32(len(valueBytes))

	if err := checkVRLength(v, valueBytes, opts); err != nil {
		return fmt.Errorf("element %s: %w", t, err)
	}

	if err := writeVRAndLength(w, v, valueLength, explicitVR, order); err != nil {
		return err
	}

	if len(valueBytes) > 0 {
		if _, err := w.Write(valueBytes); err != nil {
			return fmt.Errorf("failed to write value bytes: %w", err)
		}
	}

	return nil
}

// checkVRLength enforces a VR's maximum length at write time, matching
// spec behavior: a bounded text VR whose encoded bytes exceed MaxLength is
// fatal unless AllowInvalidVRLength is set, in which case the over-length
// value is written as-is.
func checkVRLength(v vr.VR, valueBytes []byte, opts WriteOptions) error {
	if opts.AllowInvalidVRLength {
		return nil
	}
	maxLen := v.MaxLength()
	if maxLen == 0 {
		return nil
	}
	if len(valueBytes) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds VR %s max length %d", ErrLengthExceeded, len(valueBytes), v.String(), maxLen)
	}
	return nil
}

// writeVRAndLength writes the VR (when explicitVR) and length fields
// preceding a value body, per the transfer syntax's header layout.
func writeVRAndLength(w io.Writer, v vr.VR, valueLength uint32, explicitVR bool, order binary.ByteOrder) error {
	if !explicitVR {
		if err := binary.Write(w, order, valueLength); err != nil {
			return fmt.Errorf("failed to write value length: %w", err)
		}
		return nil
	}

	vrBytes := []byte(v.String())
	if len(vrBytes) != 2 {
		return fmt.Errorf("invalid VR length: %s", v.String())
	}
	if _, err := w.Write(vrBytes); err != nil {
		return fmt.Errorf("failed to write VR: %w", err)
	}

	if v.UsesExplicitLength32() {
		if err := binary.Write(w, order, uint16(0)); err != nil {
			return fmt.Errorf("failed to write reserved bytes: %w", err)
		}
		if err := binary.Write(w, order, valueLength); err != nil {
			return fmt.Errorf("failed to write value length: %w", err)
		}
		return nil
	}

	if valueLength > 0xFFFF {
		return fmt.Errorf("%w: value length %d exceeds 2-byte limit for VR %s", ErrLengthExceeded, valueLength, v.String())
	}
	if err := binary.Write(w, order, uint16(valueLength)); err != nil {
		return fmt.Errorf("failed to write value length: %w", err)
	}
	return nil
}

// writeSequenceValue serializes a Sequence of Items. Each item's content is
// built into a scratch buffer first so its length can be written ahead of
// its bytes; undefined-length items (and the sequence itself, when it was
// parsed without a known length) are instead terminated by their
// delimitation tags, matching how they were read.
func writeSequenceValue(w io.Writer, sv *value.SequenceValue, explicitVR bool, order binary.ByteOrder, opts WriteOptions) error {
	itemBufs := make([][]byte, len(sv.Items()))
	for i, item := range sv.Items() {
		ds, ok := item.(*DataSet)
		if !ok {
			return fmt.Errorf("sequence item %d is not a *DataSet", i)
		}
		var buf bytes.Buffer
		for _, elem := range ds.Elements() {
			if err := writeElement(&buf, elem, explicitVR, order, opts); err != nil {
				return fmt.Errorf("failed to write sequence item %d element %s: %w", i, elem.Tag(), err)
			}
		}
		itemBufs[i] = buf.Bytes()
	}

	var seqLength uint32 = 0xFFFFFFFF
	if !sv.UndefinedLength() {
		seqLength = 0
		for _, b := range itemBufs {
			seqLength += 8 + uint32(len(b)) // Item tag (4) + length field (4) + body
		}
	}
	if err := writeVRAndLength(w, vr.SequenceOfItems, seqLength, explicitVR, order); err != nil {
		return err
	}

	for _, b := range itemBufs {
		if err := writeItemHeader(w, uint32(len(b)), order); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("failed to write sequence item body: %w", err)
		}
	}

	if sv.UndefinedLength() {
		if err := writeDelimiterTag(w, sequenceDelimitationTagUint32, order); err != nil {
			return err
		}
	}
	return nil
}

// writeEncapsulatedFramesValue serializes encapsulated Pixel Data (7FE0,0010)
// with undefined length: one fragment item per frame by default (a Basic
// Offset Table is not reconstructed since per-frame boundaries are already
// known), terminated by a Sequence Delimitation Item. When opts.
// FragmentMultiframe is set, each frame is instead split into multiple
// fragment items no larger than opts.FragmentSize (default
// defaultFragmentSize) bytes.
func writeEncapsulatedFramesValue(w io.Writer, v vr.VR, fv *value.FramesValue, explicitVR bool, order binary.ByteOrder, opts WriteOptions) error {
	if err := writeVRAndLength(w, v, 0xFFFFFFFF, explicitVR, order); err != nil {
		return err
	}

	// Basic Offset Table item: empty, since frame boundaries are tracked
	// structurally rather than by byte offset once decoded into FramesValue.
	if err := writeItemHeader(w, 0, order); err != nil {
		return err
	}

	fragmentSize := opts.FragmentSize
	if fragmentSize <= 0 {
		fragmentSize = defaultFragmentSize
	}

	for _, frame := range fv.Frames() {
		if !opts.FragmentMultiframe || len(frame) <= fragmentSize {
			if err := writeItemHeader(w, uint32(len(frame)), order); err != nil {
				return err
			}
			if _, err := w.Write(frame); err != nil {
				return fmt.Errorf("failed to write pixel data fragment: %w", err)
			}
			continue
		}

		for off := 0; off < len(frame); off += fragmentSize {
			end := off + fragmentSize
			if end > len(frame) {
				end = len(frame)
			}
			chunk := frame[off:end]
			if err := writeItemHeader(w, uint32(len(chunk)), order); err != nil {
				return err
			}
			if _, err := w.Write(chunk); err != nil {
				return fmt.Errorf("failed to write pixel data fragment: %w", err)
			}
		}
	}

	return writeDelimiterTag(w, sequenceDelimitationTagUint32, order)
}

// writeItemHeader writes an Item (FFFE,E000) tag followed by its length.
func writeItemHeader(w io.Writer, length uint32, order binary.ByteOrder) error {
	if err := writeTag(w, tag.Tag{Group: 0xFFFE, Element: 0xE000}, order); err != nil {
		return err
	}
	if err := binary.Write(w, order, length); err != nil {
		return fmt.Errorf("failed to write item length: %w", err)
	}
	return nil
}

// writeDelimiterTag writes a delimitation tag (Item Delimitation or Sequence
// Delimitation) followed by its required zero length.
func writeDelimiterTag(w io.Writer, delimTag uint32, order binary.ByteOrder) error {
	t := tag.Tag{Group: uint16(delimTag >> 16), Element: uint16(delimTag)}
	if err := writeTag(w, t, order); err != nil {
		return err
	}
	if err := binary.Write(w, order, uint32(0)); err != nil {
		return fmt.Errorf("failed to write delimiter length: %w", err)
	}
	return nil
}
