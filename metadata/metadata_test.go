package metadata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridfile/chunkcube/errs"
	"github.com/gridfile/chunkcube/format"
)

func validMetadata() *Metadata {
	return &Metadata{
		Dims:        []int64{4, 4},
		Chunks:      []int64{2, 2},
		ScaleFactor: 1,
		Compression: format.LinearQuantized,
		LUTStart:    10,
		DataStart:   3,
		Version:     format.Version3,
	}
}

func TestValidateAcceptsWellFormedMetadata(t *testing.T) {
	require.NoError(t, validMetadata().Validate())
}

func TestValidateRejectsZeroDimensionality(t *testing.T) {
	m := validMetadata()
	m.Dims = nil

	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsRankMismatch(t *testing.T) {
	m := validMetadata()
	m.Chunks = []int64{2}

	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsNonPositiveDimsOrChunks(t *testing.T) {
	m := validMetadata()
	m.Dims = []int64{4, 0}
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)

	m = validMetadata()
	m.Chunks = []int64{2, -1}
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsNonPositiveScaleFactor(t *testing.T) {
	m := validMetadata()
	m.ScaleFactor = 0

	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsNaNScaleFactor(t *testing.T) {
	m := validMetadata()
	m.ScaleFactor = float32(math.NaN())

	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsInfiniteScaleFactor(t *testing.T) {
	m := validMetadata()
	m.ScaleFactor = float32(math.Inf(1))
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)

	m = validMetadata()
	m.ScaleFactor = float32(math.Inf(-1))
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}

func TestValidateRejectsNegativeOffsets(t *testing.T) {
	m := validMetadata()
	m.LUTStart = -1
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)

	m = validMetadata()
	m.DataStart = -1
	require.ErrorIs(t, m.Validate(), errs.ErrBadMetadata)
}
