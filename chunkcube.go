// Package chunkcube reads an arbitrary hyper-rectangular slice of a
// chunked, compressed, multi-dimensional array out of a file-like byte
// source and into a caller-provided float32 buffer.
//
// Open a Reader once per file and call Read or ReadNew as many times as
// needed; each call is independent and safe to run concurrently with other
// calls against the same Reader as long as a ChunkBufferPool hasn't been
// shared in a way that violates its own concurrency contract (it is safe
// by default).
package chunkcube

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gridfile/chunkcube/format"
	"github.com/gridfile/chunkcube/internal/decode"
	"github.com/gridfile/chunkcube/internal/geometry"
	opt "github.com/gridfile/chunkcube/internal/options"
	"github.com/gridfile/chunkcube/internal/planner"
	"github.com/gridfile/chunkcube/internal/pool"
	"github.com/gridfile/chunkcube/metadata"
	"github.com/gridfile/chunkcube/source"
)

// maxTrailerProbe bounds the tail window Open reads before it knows nDims;
// no real array has thousands of dimensions, so this comfortably covers
// trailerFixedSize + 2*nDims*8 for any array this format could describe.
const maxTrailerProbe = 64 * 1024

// config collects every Option's effect, applied once at Open time and
// frozen for the Reader's lifetime.
type config struct {
	plannerOpts planner.Options
	logger      *slog.Logger
	bufPool     *pool.ChunkBufferPool
}

// Option configures a Reader at Open time, mirroring the functional-options
// style carried through the rest of this module's ambient stack.
type Option = opt.Option[*config]

// WithIOSizeMerge overrides the default 512-byte merge threshold (io_size_merge).
func WithIOSizeMerge(n int64) Option {
	return opt.NoError(func(c *config) { c.plannerOpts.MergeThreshold = n })
}

// WithIOSizeMax overrides the default 65536-byte maximum read size (io_size_max).
func WithIOSizeMax(n int64) Option {
	return opt.NoError(func(c *config) { c.plannerOpts.MaxSize = n })
}

// WithLogger sets the logger used for the planner's debug lines (the number
// of planned index and data reads per Read call). Errors are returned to the
// caller, not logged. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return opt.NoError(func(c *config) { c.logger = l })
}

// WithChunkBufferPool supplies a pool to amortize chunkBuffer allocation
// across Read calls; without one, each Read call takes its chunkBuffer from
// the package-wide int16 slice pool.
func WithChunkBufferPool(p *pool.ChunkBufferPool) Option {
	return opt.NoError(func(c *config) { c.bufPool = p })
}

func buildConfig(opts ...Option) (*config, error) {
	c := &config{
		plannerOpts: planner.DefaultOptions(),
		logger:      slog.Default(),
	}
	if err := opt.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Reader is an opened array, ready to serve Read/ReadNew calls.
type Reader struct {
	meta    *metadata.Metadata
	session *decode.Session
}

// OpenMetadata builds a Reader from an already-resolved Metadata — the
// entry point for callers (including a real header/trailer parser, or this
// module's own internal/fixture test encoder) that have parsed the file
// header themselves.
func OpenMetadata(meta *metadata.Metadata, src source.ByteSource, opts ...Option) (*Reader, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader{
		meta:    meta,
		session: decode.NewSession(meta, src, cfg.plannerOpts, cfg.bufPool, cfg.logger),
	}, nil
}

// Open parses a version-3 trailer (spec.md §6) from the end of src and
// builds a Reader. scaleFactor and compression are not recoverable from the
// trailer alone — they live in the file header, whose format is this
// module's one out-of-scope collaborator — so callers must supply them
// however their header parser does.
func Open(src source.ByteSource, scaleFactor float32, compression format.CompressionKind, opts ...Option) (*Reader, error) {
	size := src.Size()
	tailLen := size
	if tailLen > maxTrailerProbe {
		tailLen = maxTrailerProbe
	}

	tail := make([]byte, tailLen)
	if _, err := src.ReadAt(tail, size-tailLen); err != nil {
		return nil, fmt.Errorf("chunkcube: reading trailer: %w", err)
	}

	meta, err := metadata.ParseTrailer(tail, scaleFactor, compression)
	if err != nil {
		return nil, err
	}

	return OpenMetadata(meta, src, opts...)
}

// Metadata returns the array's parsed metadata.
func (r *Reader) Metadata() *metadata.Metadata { return r.meta }

// Read scatters the hyper-rectangular region [dimReadOffset,
// dimReadOffset+dimReadCount) into into, which must already be sized
// ∏ intoCubeDimension and positioned so that intoCoordLower+dimReadCount ≤
// intoCubeDimension along every dimension (spec.md §6).
func (r *Reader) Read(into []float32, dimReadOffset, dimReadCount, intoCoordLower, intoCubeDimension []int64) error {
	req := geometry.Request{Offset: dimReadOffset, Count: dimReadCount}

	return r.session.Read(req, into, intoCoordLower, intoCubeDimension)
}

// ReadNew allocates a buffer of shape dimReadCount, fills it with NaN, and
// reads [dimReadOffset, dimReadOffset+dimReadCount) into it — the
// convenience form of Read with intoCoordLower = 0 and intoCubeDimension =
// dimReadCount (spec.md §6).
func (r *Reader) ReadNew(dimReadOffset, dimReadCount []int64) ([]float32, error) {
	total := int64(1)
	for _, c := range dimReadCount {
		total *= c
	}

	into := make([]float32, total)
	for i := range into {
		into[i] = float32(math.NaN())
	}

	lower := make([]int64, len(dimReadCount))
	if err := r.Read(into, dimReadOffset, dimReadCount, lower, dimReadCount); err != nil {
		return nil, err
	}

	return into, nil
}
