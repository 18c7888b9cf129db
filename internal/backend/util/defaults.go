package util

import "os"

// Modes are the permission bits used for created files.
type Modes struct {
	File os.FileMode
}

// DefaultModes are used when nothing else is known about the target.
var DefaultModes = Modes{File: 0644}

// DeriveModesFromFileInfo returns the modes for files created in the
// directory described by fi. A directory closed to group and others gets
// private files.
func DeriveModesFromFileInfo(fi os.FileInfo, err error) Modes {
	m := DefaultModes
	if err != nil {
		return m
	}

	if fi.Mode()&0077 == 0 { // neither group nor others have access
		m.File = 0600
	}

	return m
}
