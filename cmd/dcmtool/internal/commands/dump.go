// Package commands implements the dcmtool DICOM subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/brightlake/dicomcore/dicom"
	"github.com/brightlake/dicomcore/dicom/uid"
	"github.com/brightlake/dicomcore/dicom/vr"
)

// Tag is one rendered (tag, VR, name, value) row of a dumped dataset.
type Tag struct {
	Tag   string `json:"tag"`
	VR    string `json:"vr"`
	Name  string `json:"name"`
	Value string `json:"value"`
	File  string `json:"file,omitempty"`
}

// DumpCmd inspects DICOM file contents and renders their elements.
type DumpCmd struct {
	Paths     []string `arg:"" optional:"" type:"existingfile" help:"DICOM files to dump"`
	Dir       string   `name:"dir" type:"existingdir" help:"Directory containing DICOM files" xor:"input"`
	Recursive bool     `name:"recursive" short:"R" help:"Recursively search directories"`
	JSON      bool     `name:"json" help:"Render output as JSON instead of a plain table"`
}

// Run executes the dump command.
func (c *DumpCmd) Run() error {
	logger := log.Default()

	paths, err := c.collectPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Warn("no DICOM files found")
		return nil
	}
	logger.Info("found DICOM files", "count", len(paths))

	var allTags []Tag
	multiFile := len(paths) > 1
	for _, path := range paths {
		ds, err := dicom.ParseFile(path)
		if err != nil {
			logger.Error("failed to parse DICOM file", "file", path, "error", err)
			continue
		}

		tags := tagsFor(ds)
		if multiFile {
			name := filepath.Base(path)
			for i := range tags {
				tags[i].File = name
			}
		}
		allTags = append(allTags, tags...)
		logger.Debug("parsed file", "file", path, "elements", len(tags))
	}

	return render(allTags, c.JSON, os.Stdout)
}

// collectPaths resolves the file list from either explicit paths or a
// directory scan (optionally recursive).
func (c *DumpCmd) collectPaths() ([]string, error) {
	if c.Dir == "" {
		return c.Paths, nil
	}

	var paths []string
	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != c.Dir && !c.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	}
	if err := filepath.Walk(c.Dir, walkFn); err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", c.Dir, err)
	}
	return paths, nil
}

// tagsFor flattens a dataset's top-level elements into rendered rows. It
// does not descend into nested Sequence of Items datasets: dump reports the
// sequence element itself (its Value().String() already summarizes item
// count), leaving deep inspection to a future "dump --recursive-sequences"
// flag.
func tagsFor(ds *dicom.DataSet) []Tag {
	elements := ds.Elements()
	tags := make([]Tag, 0, len(elements))
	for _, elem := range elements {
		t := elem.Tag()
		tags = append(tags, Tag{
			Tag:   t.String(),
			VR:    elem.VR().String(),
			Name:  elem.Name(),
			Value: annotateUIDValue(elem.VR(), elem.Value().String()),
		})
	}
	return tags
}

// annotateUIDValue appends the dictionary name for UI-VR values (transfer
// syntaxes, SOP classes, and the like) so dump output reads as
// "1.2.840.10008.1.2.1 (Explicit VR Little Endian)" rather than a bare UID.
func annotateUIDValue(v vr.VR, val string) string {
	if v != vr.UniqueIdentifier {
		return val
	}
	if name := uid.Name(val); name != "" {
		return fmt.Sprintf("%s (%s)", val, name)
	}
	return val
}

func render(tags []Tag, asJSON bool, out io.Writer) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	}

	for _, t := range tags {
		if t.File != "" {
			fmt.Fprintf(out, "%-40s %-4s %-32s %-30s %s\n", t.Tag, t.VR, t.Name, t.Value, t.File)
		} else {
			fmt.Fprintf(out, "%-14s %-4s %-32s %s\n", t.Tag, t.VR, t.Name, t.Value)
		}
	}
	return nil
}
