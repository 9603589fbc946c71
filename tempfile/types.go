package tempfile

import (
	"bufio"
	"io"
)

// TempWriter writes a series of sections that can later be read back
// independently. Implementations store the sections on disk or in memory.
type TempWriter interface {
	// Close aborts writing and releases the storage. It cannot be undone.
	io.Closer

	// Size returns the number of sections, counting the one being written.
	Size() int

	// Write appends data to the current section.
	Write(p []byte) (int, error)

	// WriteString appends string data to the current section.
	WriteString(s string) (int, error)

	// Next ends the current section and returns the offset where the next one starts.
	Next() (int64, error)

	// Save ends the last section and returns a TempReader over all sections.
	// The TempWriter must not be used afterwards.
	Save() (TempReader, error)
}

// TempReader reads back the sections of a saved TempWriter. Each section has
// its own reader so that all of them can be consumed in an interleaved merge.
type TempReader interface {
	// Close releases the storage once reading is done.
	io.Closer

	// Size returns the number of sections.
	Size() int

	// Read returns the buffered reader for section i, 0 <= i < Size().
	Read(i int) *bufio.Reader
}
