// Package archiver packs the files named in a list into a single archive.
//
// Packing is a linear pipeline: every entry is read, appended to the payload
// and indexed; the index and the payload are compressed independently; the
// header and both blobs are written to the output; finally the index is
// checked for hash collisions. The pipeline runs on the calling goroutine.
package archiver

import (
	"io"
	"path/filepath"

	"github.com/minio/sha256-simd"
	log "github.com/sirupsen/logrus"

	"github.com/ugsgame/Pak7z/internal/backend/local"
	"github.com/ugsgame/Pak7z/internal/codec"
	"github.com/ugsgame/Pak7z/internal/errors"
	"github.com/ugsgame/Pak7z/internal/fs"
	"github.com/ugsgame/Pak7z/internal/hashing"
	"github.com/ugsgame/Pak7z/internal/index"
	"github.com/ugsgame/Pak7z/internal/listfile"
	"github.com/ugsgame/Pak7z/internal/pack"
)

const DefaultCapacity = 16 * 1024 * 1024
const MaxCapacity = 1<<32 - 1

// ErrorFunc is called when a soft failure occurs: an input file cannot be
// read, the codec reports an error or the output has the wrong size. When
// nil is returned, the archiver continues, otherwise it aborts and passes
// the error up the call stack.
type ErrorFunc func(item string, err error) error

// Strict aborts on every error. It is the default ErrorFunc.
func Strict(_ string, err error) error {
	return err
}

// BestEffort logs the error and continues.
func BestEffort(item string, err error) error {
	log.Warnf("%v: %v (continuing)", item, err)
	return nil
}

// Options configures packing.
type Options struct {
	// Capacity is the maximum payload size. Zero selects DefaultCapacity.
	Capacity int

	// Root is the directory relative entry paths are opened in. Empty means
	// the working directory. Names are hashed as listed, not as resolved.
	Root string

	// MaxFiles limits the number of entries. Zero selects pack.MaxFiles,
	// which is also the upper bound.
	MaxFiles int

	// FormatVersion is written to the header. Zero selects
	// pack.DefaultVersion.
	FormatVersion uint8

	// Estimator fills the per-entry size estimate. Nil disables estimates.
	Estimator codec.Estimator

	// Output configures creation of the archive file; Output.Path is
	// replaced by the path passed to Pack.
	Output local.Config
}

// ApplyDefaults returns a copy of opts with default values filled in.
func (opts Options) ApplyDefaults() Options {
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.MaxFiles == 0 {
		opts.MaxFiles = pack.MaxFiles
	}
	if opts.FormatVersion == 0 {
		opts.FormatVersion = pack.DefaultVersion
	}
	if opts.Estimator == nil {
		opts.Estimator = codec.NoEstimate
	}
	if opts.Output == (local.Config{}) {
		opts.Output = local.NewConfig("")
	}
	return opts
}

// Validate checks opts for errors.
func (opts Options) Validate() error {
	if opts.Capacity <= 0 || int64(opts.Capacity) > MaxCapacity {
		return errors.Errorf("capacity %d out of range (1..%d)", opts.Capacity, int64(MaxCapacity))
	}
	if opts.MaxFiles < 0 || opts.MaxFiles > pack.MaxFiles {
		return errors.Errorf("max files %d out of range (0..%d)", opts.MaxFiles, pack.MaxFiles)
	}
	if opts.FormatVersion > pack.MaxVersion {
		return errors.Errorf("format version %d out of range (0..%d)", opts.FormatVersion, pack.MaxVersion)
	}
	return nil
}

// Archiver packs file lists into archives.
type Archiver struct {
	codec   codec.Compressor
	table   hashing.Table
	buffers *BufferPool
	opts    Options
	create  func(cfg local.Config) (io.WriteCloser, error)

	Error ErrorFunc
}

func createLocal(cfg local.Config) (io.WriteCloser, error) {
	f, err := local.Create(cfg)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// New returns a new archiver using c for the index and payload blobs.
func New(c codec.Compressor, opts Options) (*Archiver, error) {
	opts = opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Archiver{
		codec:   c,
		table:   hashing.DefaultTable(),
		buffers: NewBufferPool(1, opts.Capacity),
		opts:    opts,
		create:  createLocal,
		Error:   Strict,
	}, nil
}

// Options returns the effective options.
func (arch *Archiver) Options() Options {
	return arch.opts
}

// report passes a soft failure to the ErrorFunc and records it when the
// archiver continues.
func (arch *Archiver) report(stats *Stats, item string, err error) error {
	if ferr := arch.Error(item, err); ferr != nil {
		return ferr
	}
	stats.Warnings = append(stats.Warnings, Warning{Item: item, Err: err})
	return nil
}

// Pack packs entries in list order into the archive at output. Fatal errors
// (too many files, capacity exceeded, errors returned by the ErrorFunc)
// abort the run; the output file is only created once all data is
// compressed.
func (arch *Archiver) Pack(entries []listfile.Entry, output string) (*Stats, error) {
	if len(entries) > arch.opts.MaxFiles {
		return nil, errors.Wrapf(ErrTooManyFiles, "%d entries, limit %d", len(entries), arch.opts.MaxFiles)
	}

	stats := &Stats{
		Output:  output,
		Entries: make([]EntryStats, 0, len(entries)),
	}

	payload := NewPayload(arch.opts.Capacity)
	defer payload.Release()

	idx := index.New(len(entries))
	for _, e := range entries {
		if err := arch.add(stats, payload, idx, e); err != nil {
			return nil, err
		}
	}

	if idx.PayloadSize() != uint64(payload.Len()) {
		return nil, errors.Errorf("index describes %d payload bytes, payload holds %d",
			idx.PayloadSize(), payload.Len())
	}

	rawIndex := idx.Bytes()
	stats.IndexSize = len(rawIndex)
	stats.PayloadSize = payload.Len()
	stats.EstimatedSize = idx.EstimatedSize()

	zIndex, err := arch.codec.Compress(rawIndex)
	if err != nil {
		if err = arch.report(stats, "index", err); err != nil {
			return nil, err
		}
	}

	zPayload, err := arch.codec.Compress(payload.Bytes())
	payload.Release()
	if err != nil {
		if err = arch.report(stats, "payload", err); err != nil {
			return nil, err
		}
	}

	stats.CompressedIndexSize = zIndex.Len()
	stats.CompressedPayloadSize = zPayload.Len()
	log.Infof("index %d -> %d bytes, payload %d -> %d bytes (estimated %d)",
		stats.IndexSize, stats.CompressedIndexSize, stats.PayloadSize, stats.CompressedPayloadSize, stats.EstimatedSize)

	hdr, err := pack.NewHeader(idx.Len(), arch.opts.FormatVersion, stats.PayloadSize, zIndex, zPayload)
	if err != nil {
		return nil, err
	}
	stats.Header = hdr
	stats.Expected = hdr.ArchiveSize()

	if err := arch.write(stats, output, hdr, zIndex, zPayload); err != nil {
		return nil, err
	}

	stats.Collisions = idx.Collisions()
	return stats, nil
}

// add reads the entry, appends it to the payload and indexes it.
func (arch *Archiver) add(stats *Stats, payload *Payload, idx *index.Index, e listfile.Entry) error {
	es := EntryStats{Name: e.Path, Level: e.Level}
	es.Hash1, es.Hash2 = arch.table.Pair(e.Path)

	buf, err := arch.readFile(payload, e.Path)
	if errors.Is(err, ErrCapacity) {
		return err
	}
	if err != nil {
		if err = arch.report(stats, e.Path, err); err != nil {
			return err
		}
		es.Failed = true
		buf = &Buffer{}
	}
	defer buf.Release()

	if _, err := payload.Append(e.Path, buf.Data); err != nil {
		return err
	}

	es.Estimate = arch.opts.Estimator.Estimate(buf.Data)
	r, err := idx.Add(e.Path, es.Hash1, es.Hash2, uint32(len(buf.Data)), es.Estimate)
	if err != nil {
		return err
	}
	es.Offset, es.Size = r.Offset, r.Size

	stats.Entries = append(stats.Entries, es)
	return nil
}

func (arch *Archiver) path(name string) string {
	if arch.opts.Root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(arch.opts.Root, name)
}

// readFile reads the whole file into a pooled buffer. The size is checked
// against the remaining payload capacity before anything is read.
func (arch *Archiver) readFile(payload *Payload, name string) (*Buffer, error) {
	f, err := fs.Open(arch.path(name))
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return nil, &ReadError{Name: name, Err: errors.Errorf("not a regular file (%v)", fi.Mode().Type())}
	}

	size := fi.Size()
	if !payload.Fits(size) {
		return nil, &CapacityError{Name: name, Size: int64(payload.Len()) + size, Limit: arch.opts.Capacity}
	}

	buf := arch.buffers.Get(int(size))
	n, err := fs.ReadFull(f, buf.Data)
	if err != nil {
		buf.Release()
		return nil, &ReadError{Name: name, Err: errors.Wrapf(err, "read %d of %d bytes", n, size)}
	}

	log.Debugf("read %v (%d bytes)", name, size)
	return buf, nil
}

// write creates the output file and writes the archive.
func (arch *Archiver) write(stats *Stats, output string, hdr pack.Header, zIndex, zPayload codec.Blob) error {
	cfg := arch.opts.Output
	cfg.Path = output

	f, err := arch.create(cfg)
	if err != nil {
		return errors.Wrap(err, "create archive")
	}

	wr := hashing.NewWriter(f, sha256.New())
	_, werr := pack.Write(wr, hdr, zIndex, zPayload)
	cerr := f.Close()

	stats.Written = wr.Count()
	stats.ID, err = hashing.IDFromHash(wr.Sum(nil))
	if err != nil {
		return err
	}

	if werr == nil {
		werr = cerr
	}
	if stats.Written != stats.Expected || werr != nil {
		// the partially written file stays on disk
		err := &SizeMismatchError{Expected: stats.Expected, Written: stats.Written, Err: werr}
		return arch.report(stats, output, err)
	}

	log.Infof("wrote %v: %d bytes, id %v", output, stats.Written, stats.ID.Str())
	return nil
}

