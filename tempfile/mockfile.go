package tempfile

import (
	"bufio"
	"bytes"
	"io"
)

// MockWriter is an in-memory TempWriter. It keeps every section in one
// bytes.Buffer, which is useful for tests and for inputs that are known to be
// small.
type MockWriter struct {
	data     *bytes.Buffer
	sections []int64
}

// mockReader is the TempReader returned by MockWriter.Save.
type mockReader struct {
	readers []*bufio.Reader
}

// Mock creates an in-memory TempWriter with an initial capacity of n bytes.
func Mock(n int) *MockWriter {
	return &MockWriter{data: bytes.NewBuffer(make([]byte, 0, n))}
}

// Size returns the number of sections, counting the one being written.
func (w *MockWriter) Size() int {
	return len(w.sections) + 1
}

// Close releases the buffered data.
func (w *MockWriter) Close() error {
	w.sections = nil
	w.data = nil
	return nil
}

// Write appends p to the current section.
func (w *MockWriter) Write(p []byte) (int, error) {
	return w.data.Write(p)
}

// WriteString appends s to the current section.
func (w *MockWriter) WriteString(s string) (int, error) {
	return w.data.WriteString(s)
}

// Next ends the current section and starts a new one.
func (w *MockWriter) Next() (int64, error) {
	pos := int64(w.data.Len())
	w.sections = append(w.sections, pos)
	return pos, nil
}

// Save ends the last section and returns a reader over the buffered data.
func (w *MockWriter) Save() (TempReader, error) {
	if _, err := w.Next(); err != nil {
		return nil, err
	}
	data := bytes.NewReader(w.data.Bytes())
	r := &mockReader{readers: make([]*bufio.Reader, len(w.sections))}
	offset := int64(0)
	for i, end := range w.sections {
		r.readers[i] = bufio.NewReaderSize(io.NewSectionReader(data, offset, end-offset), fileBufferSize)
		offset = end
	}
	return r, nil
}

// Close drops the section readers.
func (r *mockReader) Close() error {
	r.readers = nil
	return nil
}

// Size returns the number of sections.
func (r *mockReader) Size() int {
	return len(r.readers)
}

// Read returns the reader for section i.
func (r *mockReader) Read(i int) *bufio.Reader {
	if i < 0 || i >= len(r.readers) {
		panic("tempfile: read request out of range")
	}
	return r.readers[i]
}
