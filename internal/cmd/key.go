package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lanrat/natsort"
)

// maxLineSize bounds a single input line.
const maxLineSize = 64 << 20

// Key prints one key per input value, from the arguments or else from stdin.
type Key struct {
	KeyFlags `embed:""`
	Null     string   `help:"Input value that stands for SQL NULL, it is echoed unchanged" default:"\\N" env:"NATSORT_NULL"`
	Values   []string `arg:"" optional:"" help:"Values to key, read one per line from stdin when omitted"`
}

// Run is called by Kong when the key command is executed.
func (k *Key) Run(logger *slog.Logger, st *Streams) error {
	config, err := k.config()
	if err != nil {
		return err
	}
	enc := natsort.New(config)
	logger = logger.With("cmd", "key")

	out := bufio.NewWriter(st.Out)
	n := 0
	emit := func(v string) error {
		n++
		key, err := k.key(enc, v)
		if err != nil {
			var overflow *natsort.RunOverflowError
			if config.Overflow == natsort.Reject && errors.As(err, &overflow) {
				return fmt.Errorf("value %d: %w", n, err)
			}
			logger.Warn("key adjusted", "value", n, "error", err)
		}
		if _, err := out.WriteString(key); err != nil {
			return err
		}
		return out.WriteByte('\n')
	}

	if len(k.Values) > 0 {
		for _, v := range k.Values {
			if err := emit(v); err != nil {
				return err
			}
		}
	} else {
		scanner := bufio.NewScanner(st.In)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if err := emit(scanner.Text()); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	logger.Debug("keys written", "values", n, "width", enc.Width())
	return out.Flush()
}

// key returns the key of v, passing the null marker through.
func (k *Key) key(enc *natsort.Encoder, v string) (string, error) {
	if k.Null != "" && v == k.Null {
		return k.Null, nil
	}
	return enc.Key(v)
}
