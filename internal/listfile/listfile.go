// Package listfile reads the line-oriented list of files to pack.
//
// Each line names one input file. A '#' starts a comment that runs to the
// end of the line, blank lines are skipped and both CR and LF end a line.
// A line ending in "/<digit>" carries a compression level hint for that
// entry; the suffix is not part of the path.
package listfile

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ugsgame/Pak7z/internal/errors"
	"github.com/ugsgame/Pak7z/internal/fs"
)

// NoHint is the Level of an entry without a level suffix.
const NoHint = -1

// Entry is one input file named in a list.
type Entry struct {
	Path  string
	Level int
}

// HasHint reports whether the entry carried a level suffix.
func (e Entry) HasHint() bool {
	return e.Level != NoHint
}

// Parse reads all entries from rd in list order.
func Parse(rd io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	sc.Split(scanLines)

	var entries []Entry
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entries = append(entries, parseEntry(line))
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "Scan")
	}

	log.Debugf("parsed %d list entries", len(entries))
	return entries, nil
}

// ParseFile opens and parses the list file at path.
func ParseFile(path string) ([]Entry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	return Parse(f)
}

func parseEntry(line string) Entry {
	n := len(line)
	if n > 2 && line[n-2] == '/' && line[n-1] >= '0' && line[n-1] <= '9' {
		return Entry{Path: line[:n-2], Level: int(line[n-1] - '0')}
	}
	return Entry{Path: line, Level: NoHint}
}

// scanLines is bufio.ScanLines with a lone CR also accepted as line end.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
