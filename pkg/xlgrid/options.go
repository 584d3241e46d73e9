// Package xlgrid reads and writes xlsx documents as grids of strings.
//
// Reads select one worksheet (or the first) and return its rows with gaps
// between stored cells filled by empty strings. Writes produce one worksheet
// per sheet with every value stored as an inline string, and replace the
// destination only once the new document is complete.
package xlgrid

import "os"

// DefaultFileMode is the permission of newly written documents.
const DefaultFileMode os.FileMode = 0644

// WriteOptions configures write behavior.
type WriteOptions struct {
	// Verify re-opens the staged document with an independent xlsx reader and
	// compares its sheets and cells with the input before replacing the destination.
	Verify bool
	// FileMode is the permission of the written file, masked by the process
	// umask like os.WriteFile. Zero means DefaultFileMode.
	FileMode os.FileMode
}

// DefaultWriteOptions returns default write options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		FileMode: DefaultFileMode,
	}
}

func (o WriteOptions) fileMode() os.FileMode {
	if o.FileMode == 0 {
		return DefaultFileMode
	}
	return o.FileMode
}
