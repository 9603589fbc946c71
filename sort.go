package natsort

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"slices"

	"github.com/lanrat/natsort/queue"
	"github.com/lanrat/natsort/tempfile"

	"golang.org/x/sync/errgroup"
)

// errSaveAborted stops the sort workers once the save worker has failed.
var errSaveAborted = errors.New("natsort: save worker stopped")

// chunk is a batch of input values. A sort worker keys and sorts it into recs.
type chunk struct {
	values []string
	recs   []record
}

// Sorter sorts a channel of strings in natural order using temporary storage
// for the data that does not fit in memory. Input is split into chunks of
// Config.ChunkSize values, every chunk is keyed and sorted by a worker and
// saved as one section of a temp file, and the sections are merged back into
// the output channel. Values with equal keys are ordered bytewise, so the
// output order does not depend on the input order.
type Sorter struct {
	config         Config
	enc            *Encoder
	buildSortCtx   context.Context
	saveCtx        context.Context
	input          <-chan string
	chunkChan      chan *chunk
	saveChunkChan  chan *chunk
	mergeChunkChan chan string
	mergeErrChan   chan error
	tempWriter     tempfile.TempWriter
	tempReader     tempfile.TempReader
	singleChunk    *chunk // set when the whole input fit in one chunk
	scratch        [binary.MaxVarintLen64]byte
}

func newSorter(input <-chan string, config *Config) *Sorter {
	c := mergeConfig(config)
	return &Sorter{
		config:         *c,
		enc:            New(c),
		input:          input,
		chunkChan:      make(chan *chunk, c.ChanBuffSize),
		saveChunkChan:  make(chan *chunk, c.NumWorkers),
		mergeChunkChan: make(chan string, c.SortedChanBuffSize),
		mergeErrChan:   make(chan error, 1),
	}
}

// Strings creates an external natural sorter for input and returns it with
// the output channel for the sorted values and the error channel.
//
// Call Sort on the returned sorter to begin. The output channel is closed
// when sorting ends; then at most one error is available on the error
// channel, which is closed as well. A nil config uses DefaultConfig. Spilled
// chunks go to a single file in config.TempFilesDir that is removed when the
// sort finishes or fails.
func Strings(input <-chan string, config *Config) (*Sorter, <-chan string, <-chan error) {
	s := newSorter(input, config)
	w, err := tempfile.New(s.config.TempFilesDir)
	if err != nil {
		s.fail(NewDiskError(err, "create temp file", s.config.TempFilesDir))
		return s, s.mergeChunkChan, s.mergeErrChan
	}
	s.tempWriter = w
	return s, s.mergeChunkChan, s.mergeErrChan
}

// StringsMock is like Strings but keeps spilled chunks in memory. The
// parameter n is the initial capacity in bytes of the in-memory buffer.
func StringsMock(input <-chan string, config *Config, n int) (*Sorter, <-chan string, <-chan error) {
	s := newSorter(input, config)
	s.tempWriter = tempfile.Mock(n)
	return s, s.mergeChunkChan, s.mergeErrChan
}

// fail reports err and ends the sort.
func (s *Sorter) fail(err error) {
	s.mergeErrChan <- err
	close(s.mergeChunkChan)
	close(s.mergeErrChan)
}

// cleanup releases the temporary storage after a failed run.
func (s *Sorter) cleanup() {
	if s.tempReader != nil {
		_ = s.tempReader.Close()
		return
	}
	_ = s.tempWriter.Close()
}

// Sort reads the input until it is closed, then sorts and starts delivering
// the output. It blocks while chunks are built, sorted and saved, and returns
// once merging has started in the background.
// NOTE: the context passed to Sort must outlive Sort() returning, as the
// merge uses it too.
func (s *Sorter) Sort(ctx context.Context) {
	if s.tempWriter == nil {
		// Strings already failed
		return
	}
	var buildSortErrGroup, saveErrGroup *errgroup.Group
	buildSortErrGroup, s.buildSortCtx = errgroup.WithContext(ctx)
	saveErrGroup, s.saveCtx = errgroup.WithContext(ctx)

	buildSortErrGroup.Go(s.buildChunks)
	for i := 0; i < s.config.NumWorkers; i++ {
		buildSortErrGroup.Go(s.sortChunks)
	}
	saveErrGroup.Go(s.saveChunks)

	buildErr := buildSortErrGroup.Wait()
	// no more chunks, let the save worker finish
	close(s.saveChunkChan)
	saveErr := saveErrGroup.Wait()

	err := buildErr
	if errors.Is(err, errSaveAborted) {
		err = firstError(saveErr, ctx.Err(), err)
	} else if err == nil {
		err = saveErr
	}
	if err != nil {
		s.cleanup()
		s.fail(err)
		return
	}

	if s.tempReader != nil {
		go s.mergeNChunks(ctx)
		return
	}

	// zero or one chunk, nothing was written to the temp storage
	if err := s.tempWriter.Close(); err != nil {
		s.fail(NewDiskError(err, "remove temp file", ""))
		return
	}
	go s.outputSingleChunk(ctx)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// buildChunks reads data from the input chan to build chunks and pushes them to chunkChan
func (s *Sorter) buildChunks() error {
	defer close(s.chunkChan) // if this is not called on error, causes a deadlock

	for done := false; !done; {
		c := &chunk{values: make([]string, 0, min(s.config.ChunkSize, 4096))}
	fill:
		for len(c.values) < s.config.ChunkSize {
			select {
			case v, ok := <-s.input:
				if !ok {
					done = true
					break fill
				}
				c.values = append(c.values, v)
			case <-s.buildSortCtx.Done():
				return s.buildSortCtx.Err()
			}
		}
		if len(c.values) == 0 {
			break
		}

		select {
		case s.chunkChan <- c:
		case <-s.buildSortCtx.Done():
			return s.buildSortCtx.Err()
		}
	}
	return nil
}

// sortChunks is a worker that keys and sorts chunks prior to save
func (s *Sorter) sortChunks() error {
	for {
		select {
		case c, more := <-s.chunkChan:
			if !more {
				return nil
			}
			if err := s.sortChunk(c); err != nil {
				return err
			}
			select {
			case s.saveChunkChan <- c:
			case <-s.buildSortCtx.Done():
				return s.buildSortCtx.Err()
			case <-s.saveCtx.Done():
				return errSaveAborted
			}
		case <-s.buildSortCtx.Done():
			return s.buildSortCtx.Err()
		}
	}
}

func (s *Sorter) sortChunk(c *chunk) error {
	c.recs = make([]record, len(c.values))
	for i, v := range c.values {
		r, err := s.enc.record(v)
		if err != nil {
			return err
		}
		c.recs[i] = r
	}
	c.values = nil
	slices.SortFunc(c.recs, compareRecords)
	return nil
}

// saveChunks saves sorted chunks to the temp storage. When the input fit in a
// single chunk it is kept in memory instead and no disk I/O happens.
func (s *Sorter) saveChunks() error {
	var first *chunk
	select {
	case c, ok := <-s.saveChunkChan:
		if !ok {
			// no chunks at all
			return nil
		}
		first = c
	case <-s.saveCtx.Done():
		return s.saveCtx.Err()
	}

	select {
	case c, ok := <-s.saveChunkChan:
		if !ok {
			s.singleChunk = first
			return nil
		}
		if err := s.saveChunk(first); err != nil {
			return err
		}
		if err := s.saveChunk(c); err != nil {
			return err
		}
	case <-s.saveCtx.Done():
		return s.saveCtx.Err()
	}

	for {
		select {
		case c, ok := <-s.saveChunkChan:
			if !ok {
				r, err := s.tempWriter.Save()
				if err != nil {
					return NewDiskError(err, "save", "")
				}
				s.tempReader = r
				return nil
			}
			if err := s.saveChunk(c); err != nil {
				return err
			}
		case <-s.saveCtx.Done():
			return s.saveCtx.Err()
		}
	}
}

// saveChunk writes the values of c as one section, each prefixed by its uvarint length.
// Keys are not stored, they are recomputed while merging.
func (s *Sorter) saveChunk(c *chunk) error {
	for _, r := range c.recs {
		n := binary.PutUvarint(s.scratch[:], uint64(len(r.value)))
		if _, err := s.tempWriter.Write(s.scratch[:n]); err != nil {
			return NewDiskError(err, "write size header", "")
		}
		if _, err := s.tempWriter.WriteString(r.value); err != nil {
			return NewDiskError(err, "write data", "")
		}
	}
	if _, err := s.tempWriter.Next(); err != nil {
		return NewDiskError(err, "next chunk", "")
	}
	return nil
}

// outputSingleChunk sends the values of the in-memory chunk, if any, to the output.
func (s *Sorter) outputSingleChunk(ctx context.Context) {
	defer close(s.mergeErrChan)
	defer close(s.mergeChunkChan)

	if s.singleChunk == nil {
		return
	}
	for _, r := range s.singleChunk.recs {
		select {
		case s.mergeChunkChan <- r.value:
		case <-ctx.Done():
			s.mergeErrChan <- ctx.Err()
			return
		}
	}
	s.singleChunk = nil
}

// mergeNChunks runs in the background merging all saved sections into the
// output and removes the temp storage when done.
func (s *Sorter) mergeNChunks(ctx context.Context) {
	err := s.merge(ctx)
	if cerr := s.tempReader.Close(); cerr != nil && err == nil {
		err = NewDiskError(cerr, "remove temp file", "")
	}
	if err != nil {
		s.mergeErrChan <- err
	}
	close(s.mergeChunkChan)
	close(s.mergeErrChan)
}

func (s *Sorter) merge(ctx context.Context) error {
	pq := queue.NewPriorityQueue(func(a, b *mergeFile) int {
		return compareRecords(a.next, b.next)
	})

	for i := 0; i < s.tempReader.Size(); i++ {
		m := &mergeFile{enc: s.enc, reader: s.tempReader.Read(i)}
		ok, err := m.advance() // preload the first value
		if err != nil {
			return err
		}
		if ok {
			pq.Push(m)
		}
	}

	for pq.Len() > 0 {
		m := pq.Peek()
		v := m.next.value
		more, err := m.advance()
		if err != nil {
			return err
		}
		if more {
			pq.PeekUpdate()
		} else {
			pq.Pop()
		}
		select {
		case s.mergeChunkChan <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// mergeFile represents each sorted section and its next record
type mergeFile struct {
	next   record
	enc    *Encoder
	reader *bufio.Reader
}

// advance loads the next record of the section. It returns false at the end
// of the section.
func (m *mergeFile) advance() (bool, error) {
	n, err := binary.ReadUvarint(m.reader)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, NewDiskError(err, "read size header", "")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(m.reader, buf); err != nil {
		return false, NewDiskError(err, "read data", "")
	}
	r, err := m.enc.record(string(buf))
	if err != nil {
		return false, err
	}
	m.next = r
	return true, nil
}
