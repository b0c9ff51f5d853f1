package value

import (
	"fmt"

	"github.com/brightlake/dicomcore/dicom/vr"
)

// FramesValue represents Pixel Data (7FE0,0010) once it has been split into
// per-frame byte slices. The parser builds one for encapsulated data
// (reconstructed from Basic Offset Table fragments, see
// dicom/pixel/fragments.go); native Pixel Data is parsed as a single
// BytesValue and is not split into a FramesValue. Replacing
// the teacher's plain BytesValue for pixel data lets NumberOfFrames-aware
// callers index individual frames without re-parsing the fragment stream.
type FramesValue struct {
	vrType       vr.VR
	frames       [][]byte
	encapsulated bool
}

// NewFramesValue wraps pre-split frame buffers. encapsulated records
// whether the original encoding used Item/fragment framing (compressed
// transfer syntaxes) as opposed to one contiguous native buffer.
func NewFramesValue(v vr.VR, frames [][]byte, encapsulated bool) *FramesValue {
	return &FramesValue{vrType: v, frames: frames, encapsulated: encapsulated}
}

func (p *FramesValue) VR() vr.VR { return p.vrType }

// Frames returns the per-frame byte buffers in frame order.
func (p *FramesValue) Frames() [][]byte { return p.frames }

// NumberOfFrames returns len(Frames()).
func (p *FramesValue) NumberOfFrames() int { return len(p.frames) }

// Encapsulated reports whether this pixel data used Item/fragment framing
// on the wire.
func (p *FramesValue) Encapsulated() bool { return p.encapsulated }

func (p *FramesValue) String() string {
	return fmt.Sprintf("PixelData[%d frame(s), encapsulated=%v]", len(p.frames), p.encapsulated)
}

// Bytes concatenates all frames back into one buffer. For native pixel
// data this reproduces the original wire bytes exactly; for encapsulated
// data it does not reproduce the original fragment/Item framing (that is
// the writer's job when re-encoding), so callers needing exact-bytes
// round trip of encapsulated data should keep the original raw value
// instead (see the parser's raw-value shadow).
func (p *FramesValue) Bytes() []byte {
	total := 0
	for _, f := range p.frames {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range p.frames {
		out = append(out, f...)
	}
	return out
}

func (p *FramesValue) Equals(other Value) bool {
	o, ok := other.(*FramesValue)
	if !ok || len(p.frames) != len(o.frames) || p.encapsulated != o.encapsulated {
		return false
	}
	for i := range p.frames {
		if len(p.frames[i]) != len(o.frames[i]) {
			return false
		}
		for j := range p.frames[i] {
			if p.frames[i][j] != o.frames[i][j] {
				return false
			}
		}
	}
	return true
}

var _ Value = (*FramesValue)(nil)
