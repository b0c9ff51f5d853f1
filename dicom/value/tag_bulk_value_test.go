package value

import (
	"testing"

	"github.com/brightlake/dicomcore/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagValue_BytesAndString(t *testing.T) {
	tv := NewTagValue([]TagRef{{Group: 0x0008, Element: 0x0018}})

	assert.Equal(t, "(0008,0018)", tv.String())
	assert.Equal(t, []byte{0x08, 0x00, 0x18, 0x00}, tv.Bytes())
}

func TestTagValue_Equals(t *testing.T) {
	a := NewTagValue([]TagRef{{Group: 1, Element: 2}})
	b := NewTagValue([]TagRef{{Group: 1, Element: 2}})
	c := NewTagValue([]TagRef{{Group: 1, Element: 3}})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestBulkDataValue_FieldsDistinct(t *testing.T) {
	bv := NewBulkDataValue(vr.OtherByte, "file:///tmp/bulk.bin", "5f0c...uuid", 1024)

	require.Equal(t, "file:///tmp/bulk.bin", bv.BulkDataURI())
	require.Equal(t, "5f0c...uuid", bv.BulkDataUUID())
	assert.Equal(t, 1024, bv.Length())
	assert.Nil(t, bv.Bytes())
}
