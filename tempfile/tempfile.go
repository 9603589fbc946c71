// Package tempfile implements virtual temp files that are written in series,
// read back in parallel and then removed. The sections all live in a single
// real file on disk, or in memory for the mock.
package tempfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// file IO buffer size for each section
	fileBufferSize = 1 << 16 // 64k
	// filename prefix for files put in the temp directory
	filenamePrefix = fmt.Sprintf("natsort_%d_", os.Getpid())
)

// FileWriter is a TempWriter backed by one file on disk.
type FileWriter struct {
	file      *os.File
	bufWriter *bufio.Writer
	sections  []int64
}

// fileReader is the TempReader returned by FileWriter.Save.
type fileReader struct {
	file    *os.File
	readers []*bufio.Reader
}

// New creates a disk backed TempWriter in dir, or in the directory chosen by
// Dir when dir is empty or unusable.
func New(dir string) (*FileWriter, error) {
	dir = Dir(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, filenamePrefix)
	if err != nil {
		return nil, err
	}
	return &FileWriter{
		file:      f,
		bufWriter: bufio.NewWriterSize(f, fileBufferSize),
		sections:  make([]int64, 0, 10),
	}, nil
}

// Size returns the number of sections, counting the one being written.
func (w *FileWriter) Size() int {
	// sections only records the ends of finished sections
	return len(w.sections) + 1
}

// Name returns the path of the backing file.
func (w *FileWriter) Name() string {
	return w.file.Name()
}

// Close stops the writer, closes the file and removes it from disk.
// It works like an abort and is unrecoverable.
func (w *FileWriter) Close() error {
	w.sections = nil
	w.bufWriter = nil
	// the file is already closed when Save failed half way
	if err := w.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return os.Remove(w.file.Name())
}

// Write appends p to the current section.
func (w *FileWriter) Write(p []byte) (int, error) {
	return w.bufWriter.Write(p)
}

// WriteString appends s to the current section.
func (w *FileWriter) WriteString(s string) (int, error) {
	return w.bufWriter.WriteString(s)
}

// Next flushes the current section and starts a new one.
func (w *FileWriter) Next() (int64, error) {
	if err := w.bufWriter.Flush(); err != nil {
		return 0, err
	}
	pos, err := w.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	w.sections = append(w.sections, pos)
	return pos, nil
}

// Save ends the last section, closes the file for writing and reopens it for
// reading.
func (w *FileWriter) Save() (TempReader, error) {
	if _, err := w.Next(); err != nil {
		return nil, err
	}
	if err := w.file.Sync(); err != nil {
		return nil, err
	}
	if err := w.file.Close(); err != nil {
		return nil, err
	}
	return newFileReader(w.file.Name(), w.sections)
}

func newFileReader(filename string, sections []int64) (*fileReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	r := &fileReader{
		file:    f,
		readers: make([]*bufio.Reader, len(sections)),
	}
	offset := int64(0)
	for i, end := range sections {
		r.readers[i] = bufio.NewReaderSize(io.NewSectionReader(f, offset, end-offset), fileBufferSize)
		offset = end
	}
	return r, nil
}

// Close closes and removes the backing file.
func (r *fileReader) Close() error {
	r.readers = nil
	if err := r.file.Close(); err != nil {
		return err
	}
	return os.Remove(r.file.Name())
}

// Size returns the number of sections.
func (r *fileReader) Size() int {
	return len(r.readers)
}

// Read returns the reader for section i.
func (r *fileReader) Read(i int) *bufio.Reader {
	if i < 0 || i >= len(r.readers) {
		panic("tempfile: read request out of range")
	}
	return r.readers[i]
}
