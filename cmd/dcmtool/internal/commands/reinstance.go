package commands

import (
	"fmt"
	"math/big"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/brightlake/dicomcore/dicom"
	"github.com/brightlake/dicomcore/dicom/element"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
)

var sopInstanceUIDTag = tag.New(0x0008, 0x0018)

// ReinstanceCmd assigns each input file a freshly generated SOPInstanceUID,
// derived from a random UUID under the 2.25 UUID-derived UID root (DICOM
// PS3.5 Annex B), and rewrites the file in place.
type ReinstanceCmd struct {
	Paths     []string `arg:"" type:"existingfile" help:"DICOM files to reassign a SOPInstanceUID"`
	Overwrite bool     `name:"overwrite" help:"Overwrite the existing file instead of failing"`
}

// Run executes the reinstance command.
func (c *ReinstanceCmd) Run() error {
	logger := log.Default()

	for _, path := range c.Paths {
		ds, err := dicom.ParseFile(path)
		if err != nil {
			logger.Error("failed to parse DICOM file", "file", path, "error", err)
			continue
		}

		newUID := uuidDerivedUID()
		val, err := value.NewStringValue(vr.UniqueIdentifier, []string{newUID})
		if err != nil {
			return fmt.Errorf("failed to build SOPInstanceUID value: %w", err)
		}
		elem, err := element.NewElement(sopInstanceUIDTag, vr.UniqueIdentifier, val)
		if err != nil {
			return fmt.Errorf("failed to build SOPInstanceUID element: %w", err)
		}
		if ds.Contains(sopInstanceUIDTag) {
			if err := ds.Remove(sopInstanceUIDTag); err != nil {
				return fmt.Errorf("failed to remove existing SOPInstanceUID: %w", err)
			}
		}
		if err := ds.Add(elem); err != nil {
			return fmt.Errorf("failed to set SOPInstanceUID: %w", err)
		}

		if err := dicom.WriteFileWithOptions(path, ds, dicom.WriteOptions{Overwrite: c.Overwrite}); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("reassigned SOPInstanceUID", "file", path, "sop_instance_uid", newUID)
	}

	return nil
}

// uuidDerivedUID formats a random UUID as a DICOM UID under the 2.25 root,
// per PS3.5 Annex B: the UUID's 128 bits are encoded as a plain decimal
// integer rather than the usual hyphenated hex form.
func uuidDerivedUID() string {
	id := uuid.New()
	n := new(big.Int).SetBytes(id[:])
	return "2.25." + n.String()
}
