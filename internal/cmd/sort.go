package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lanrat/natsort"

	"golang.org/x/sync/errgroup"
)

// Sort sorts input lines in natural order.
type Sort struct {
	KeyFlags  `embed:""`
	ChunkSize int      `help:"Lines per sorted chunk held in memory" default:"1000000" env:"NATSORT_CHUNK_SIZE"`
	Workers   int      `help:"Chunks keyed and sorted in parallel" default:"4" env:"NATSORT_WORKERS"`
	TempDir   string   `help:"Directory for spilled chunks, defaults to a disk backed temp dir" type:"path" env:"NATSORT_TEMP_DIR"`
	Uniq      bool     `help:"Only print the first of the lines with equal keys"`
	Files     []string `arg:"" optional:"" type:"existingfile" help:"Files to sort, stdin when omitted"`
}

// Run is called by Kong when the sort command is executed.
func (s *Sort) Run(logger *slog.Logger, st *Streams) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Execute(ctx, logger, st)
}

// Execute sorts the input to st.Out until done or ctx is canceled.
func (s *Sort) Execute(ctx context.Context, logger *slog.Logger, st *Streams) error {
	config, err := s.config()
	if err != nil {
		return err
	}
	config.ChunkSize = s.ChunkSize
	config.NumWorkers = s.Workers
	config.TempFilesDir = s.TempDir
	if err := config.Validate(); err != nil {
		return err
	}
	logger = logger.With("cmd", "sort")
	start := time.Now()

	// the reader is stopped when the sort ends early
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	lines := make(chan string, 1024)
	var read int
	g.Go(func() error {
		defer close(lines)
		n, err := s.readLines(gctx, st.In, lines)
		read = n
		return err
	})

	sorter, output, errc := natsort.Strings(lines, config)
	sorter.Sort(gctx)
	logger.Debug("chunks sorted", "elapsed", time.Since(start))

	if s.Uniq {
		output = natsort.UniqKeys(output, config)
	}
	out := bufio.NewWriter(st.Out)
	written := 0
	var writeErr error
	for v := range output {
		if writeErr != nil {
			continue // drain so the sorter can finish
		}
		if _, writeErr = out.WriteString(v); writeErr == nil {
			writeErr = out.WriteByte('\n')
		}
		written++
	}
	sortErr := <-errc
	cancel()
	readErr := g.Wait()

	switch {
	case readErr != nil && !errors.Is(readErr, context.Canceled):
		return readErr
	case sortErr != nil:
		return sortErr
	case readErr != nil:
		return readErr
	case writeErr != nil:
		return fmt.Errorf("write output: %w", writeErr)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("sorted", "lines", read, "written", written, "elapsed", time.Since(start))
	return nil
}

// readLines sends the lines of every input file, or of in when there are
// none, to lines. It returns the number of lines read.
func (s *Sort) readLines(ctx context.Context, in io.Reader, lines chan<- string) (int, error) {
	if len(s.Files) == 0 {
		return sendLines(ctx, in, lines, 0)
	}
	n := 0
	for _, name := range s.Files {
		f, err := os.Open(name)
		if err != nil {
			return n, err
		}
		n, err = sendLines(ctx, f, lines, n)
		_ = f.Close()
		if err != nil {
			return n, fmt.Errorf("%s: %w", name, err)
		}
	}
	return n, nil
}

func sendLines(ctx context.Context, r io.Reader, lines chan<- string, n int) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
			n++
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}
	return n, scanner.Err()
}
