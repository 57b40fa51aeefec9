package decode

import (
	"fmt"
	"log/slog"

	"github.com/gridfile/chunkcube/errs"
	"github.com/gridfile/chunkcube/internal/geometry"
	"github.com/gridfile/chunkcube/internal/planner"
	"github.com/gridfile/chunkcube/internal/pool"
	"github.com/gridfile/chunkcube/metadata"
	"github.com/gridfile/chunkcube/source"
)

// Session glues the read planners and the per-chunk decoder together
// (spec.md §4.5): it owns exactly one Read call's chunkBuffer and drives
// the index-read and data-read planning loops to completion.
type Session struct {
	grid   *geometry.Grid
	layout metadata.LUTLayout
	src    source.ByteSource
	meta   *metadata.Metadata
	opts   planner.Options
	bufs   *pool.ChunkBufferPool
	logger *slog.Logger
}

// NewSession builds a Session for one open file. bufs may be nil, in which
// case Read takes its chunkBuffer from the package-wide pool.GetInt16Slice
// pool.
func NewSession(meta *metadata.Metadata, src source.ByteSource, opts planner.Options, bufs *pool.ChunkBufferPool, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		grid:   geometry.NewGrid(meta.Dims, meta.Chunks),
		layout: metadata.LayoutForVersion(meta.Version, meta.DataStart),
		src:    src,
		meta:   meta,
		opts:   opts,
		bufs:   bufs,
		logger: logger,
	}
}

// Read validates req against the array's bounds, plans and executes the
// LUT and data reads it requires, and decodes every intersecting chunk into
// into. into must already be sized ∏ intoCubeDimension and, for the
// read(dimRead) convenience form, pre-filled with NaN by the caller.
func (s *Session) Read(req geometry.Request, into []float32, intoCoordLower, intoCubeDimension []int64) error {
	if err := s.validate(req, len(into), intoCoordLower, intoCubeDimension); err != nil {
		return err
	}

	chunkCap := int(s.grid.ChunkElementCount(make([]int64, s.grid.NDims())))
	var scratch []int16
	var cleanup func()
	if s.bufs != nil {
		scratch, cleanup = s.bufs.Get(chunkCap)
	} else {
		scratch, cleanup = pool.GetInt16Slice(chunkCap)
	}
	defer cleanup()

	indexRanges := planner.PlanIndexReads(s.grid, req, s.layout, s.opts)
	s.logger.Debug("planned index reads", "count", len(indexRanges))

	var indexBufs []*pool.ByteBuffer
	defer func() {
		for _, bb := range indexBufs {
			pool.PutIndexReadBuffer(bb)
		}
	}()

	indexLookups := make([]planner.IndexLookup, len(indexRanges))
	for i, br := range indexRanges {
		bb := pool.GetIndexReadBuffer()
		indexBufs = append(indexBufs, bb)
		bb.ExtendOrGrow(int(br.Length))
		buf := bb.Bytes()
		if _, err := s.src.ReadAt(buf, s.meta.LUTStart+br.Offset); err != nil {
			return fmt.Errorf("decode: LUT read [%d, %d): %w", br.Offset, br.End(), err)
		}
		indexLookups[i] = planner.IndexLookup{Range: br, Data: buf}
	}

	resolver := planner.NewIndexResolver(s.layout, indexLookups)
	resolve := func(k int64) (int64, int64, error) { return resolver.ChunkRange(k) }

	dataRanges, err := planner.PlanDataReads(s.grid, req, resolve, s.opts)
	if err != nil {
		return fmt.Errorf("decode: planning data reads: %w", err)
	}
	s.logger.Debug("planned data reads", "count", len(dataRanges))

	var dataBufs []*pool.ByteBuffer
	defer func() {
		for _, bb := range dataBufs {
			pool.PutDataReadBuffer(bb)
		}
	}()

	dataLookups := make([]planner.DataLookup, len(dataRanges))
	for i, br := range dataRanges {
		bb := pool.GetDataReadBuffer()
		dataBufs = append(dataBufs, bb)
		bb.ExtendOrGrow(int(br.Length))
		buf := bb.Bytes()
		if _, err := s.src.ReadAt(buf, s.meta.DataStart+br.Offset); err != nil {
			return fmt.Errorf("decode: data read [%d, %d): %w", br.Offset, br.End(), err)
		}
		dataLookups[i] = planner.DataLookup{Range: br, Data: buf}
	}

	lo, hi, cursor, ok := geometry.FirstChunkRange(s.grid, req)
	for ok {
		for k := lo; k < hi; k++ {
			start, end, err := resolver.ChunkRange(k)
			if err != nil {
				return err
			}

			compressed, err := planner.Slice(dataLookups, start, end)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			consumed, err := Chunk(s.grid, req, k, compressed, s.meta.ScaleFactor, s.meta.Compression,
				scratch, into, intoCoordLower, intoCubeDimension)
			if err != nil {
				return err
			}

			if int64(consumed) != end-start {
				return fmt.Errorf("%w: chunk %d consumed %d bytes, LUT range is %d bytes",
					errs.ErrDecodeMismatch, k, consumed, end-start)
			}
		}

		lo, hi, ok = geometry.NextChunkRange(cursor)
	}

	return nil
}

func (s *Session) validate(req geometry.Request, intoLen int, intoCoordLower, intoCubeDimension []int64) error {
	n := s.grid.NDims()
	if len(req.Offset) != n || len(req.Count) != n || len(intoCoordLower) != n || len(intoCubeDimension) != n {
		return fmt.Errorf("%w: expected rank %d", errs.ErrRankMismatch, n)
	}

	wantLen := int64(1)
	for i := 0; i < n; i++ {
		if req.Offset[i] < 0 || req.Count[i] <= 0 || req.Offset[i]+req.Count[i] > s.grid.Dims[i] {
			return fmt.Errorf("%w: dim %d read [%d, %d) outside [0, %d)",
				errs.ErrOutOfBounds, i, req.Offset[i], req.Offset[i]+req.Count[i], s.grid.Dims[i])
		}
		if intoCubeDimension[i] <= 0 || intoCoordLower[i] < 0 || intoCoordLower[i]+req.Count[i] > intoCubeDimension[i] {
			return fmt.Errorf("%w: dim %d scatter [%d, %d) outside target extent %d",
				errs.ErrOutOfBounds, i, intoCoordLower[i], intoCoordLower[i]+req.Count[i], intoCubeDimension[i])
		}
		wantLen *= intoCubeDimension[i]
	}

	if int64(intoLen) != wantLen {
		return fmt.Errorf("%w: output buffer has %d elements, want %d", errs.ErrOutOfBounds, intoLen, wantLen)
	}

	return nil
}
