package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickingIDRoundTrip(t *testing.T) {
	for _, id := range []uint32{1, 255, 256, 65535, 0x00abcdef} {
		assert.Equal(t, id, ColorFromPickingID(id).PickingID())
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, NewColor(255, 128, 0), c)

	c, err = ParseHexColor("00000000")
	require.NoError(t, err)
	assert.Equal(t, float32(0), c.A)

	_, err = ParseHexColor("#12")
	assert.Error(t, err)
	_, err = ParseHexColor("#zzzzzz")
	assert.Error(t, err)
}

func TestSolidTexture(t *testing.T) {
	tex := SolidTexture(NewColor(1, 2, 3))
	assert.Equal(t, []byte{1, 2, 3, 255}, tex.Pixels)
	assert.Equal(t, uint32(1), tex.Width)
	assert.Equal(t, uint32(1), tex.Height)
}
