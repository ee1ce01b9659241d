package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultOptionsDeepCopiesSegmentOptions(t *testing.T) {
	first := NewDefaultOptions()
	second := NewDefaultOptions()
	require.NotSame(t, first.SegmentOptions, second.SegmentOptions)

	WithSegmentSize(MinSegmentSize + 1)(&first)
	assert.Equal(t, MinSegmentSize+1, first.SegmentOptions.Size)
	assert.Equal(t, DefaultSegmentSize, second.SegmentOptions.Size)
	assert.Equal(t, DefaultSegmentSize, defaultOptions.SegmentOptions.Size)
}

func TestWithSegmentSizeIgnoresOutOfRangeValues(t *testing.T) {
	opts := NewDefaultOptions()
	WithSegmentSize(1)(&opts)
	assert.Equal(t, DefaultSegmentSize, opts.SegmentOptions.Size)
}
