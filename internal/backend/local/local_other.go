//go:build !unix

package local

// fsyncDir is a no-op; directories cannot be synced on this platform.
func fsyncDir(_ string) error {
	return nil
}
