// Package local creates archive files on the local file system.
package local

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/ugsgame/Pak7z/internal/backend/util"
	"github.com/ugsgame/Pak7z/internal/errors"
	"github.com/ugsgame/Pak7z/internal/fs"
)

// File is an output file opened by Create.
type File struct {
	*os.File
	dir string
}

// Create creates or truncates the file at cfg.Path. Opening is retried with
// exponential backoff as long as the error is transient.
func Create(cfg Config) (*File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(cfg.Path)
	modes := util.DeriveModesFromFileInfo(fs.Stat(dir))

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(cfg.RetryInterval),
		backoff.WithMaxElapsedTime(0),
	), cfg.Retries)

	open := func() (*os.File, error) {
		f, err := fs.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, modes.File)
		if err != nil && !fs.IsTransient(err) {
			return nil, backoff.Permanent(err)
		}
		return f, err
	}
	notify := func(err error, d time.Duration) {
		log.Warnf("create %v failed, retrying in %v: %v", cfg.Path, d, err)
	}

	f, err := backoff.RetryNotifyWithData(open, bo, notify)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// O_TRUNC keeps the mode of an existing file
	if err := fs.Chmod(cfg.Path, modes.File); err != nil {
		_ = f.Close()
		return nil, errors.WithStack(err)
	}

	log.Debugf("created %v (mode %v)", cfg.Path, modes.File)
	return &File{File: f, dir: dir}, nil
}

// Close flushes the file to disk and closes it.
func (f *File) Close() error {
	err := f.File.Sync()
	// ignore error if filesystem does not support fsync
	if err != nil && fs.IsNotSupported(err) {
		err = nil
	}

	cerr := f.File.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, "Close")
	}

	return fsyncDir(f.dir)
}
