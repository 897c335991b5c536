package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes(`[{"size":"S","stock":3},{"size":"M","stock":0}]`)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "S", sizes[0].Size)
	assert.Equal(t, 3, sizes[0].Stock)
	assert.Equal(t, "M", sizes[1].Size)
	assert.Equal(t, 0, sizes[1].Stock)
}

func TestParseSizesEmpty(t *testing.T) {
	sizes, err := parseSizes("")
	require.NoError(t, err)
	assert.Nil(t, sizes)
}

func TestParseSizesRejectsBadInput(t *testing.T) {
	_, err := parseSizes(`not json`)
	assert.Error(t, err)

	_, err = parseSizes(`[{"size":"XXXL","stock":1}]`)
	assert.Error(t, err)

	_, err = parseSizes(`[{"size":"M","stock":-1}]`)
	assert.Error(t, err)

	_, err = parseSizes(`[{"size":"M","stock":1},{"size":"M","stock":2}]`)
	assert.Error(t, err)
}
