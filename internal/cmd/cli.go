// Package cmd implements the natsort command line interface.
package cmd

import (
	"io"

	"github.com/lanrat/natsort"
)

// CLI is the root kong command tree.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"NATSORT_CONFIG"`

	Key       Key           `cmd:"" help:"Print the natural sort key of each value"`
	Sort      Sort          `cmd:"" help:"Sort lines in natural order, spilling to disk when needed"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"NATSORT_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" type:"path" env:"NATSORT_LOG_FILE"`
}

// KeyFlags are the key settings shared by the key and sort commands.
type KeyFlags struct {
	Width    int    `help:"Digit width, out of range values select the default" default:"75" env:"NATSORT_WIDTH"`
	MaxLen   int    `help:"Maximum key length in bytes, 0 for unbounded" default:"0" env:"NATSORT_MAX_LEN"`
	Overflow string `help:"Handling of digit runs longer than the width" enum:"split,warn,reject" default:"warn" env:"NATSORT_OVERFLOW"`
}

// config returns the library configuration for the flags.
func (f *KeyFlags) config() (*natsort.Config, error) {
	policy, err := natsort.ParseOverflowPolicy(f.Overflow)
	if err != nil {
		return nil, err
	}
	c := natsort.DefaultConfig()
	c.Width = f.Width
	c.MaxLen = f.MaxLen
	c.Overflow = policy
	return c, nil
}

// Streams are the data streams of a command. Logs never go to Out.
type Streams struct {
	In  io.Reader
	Out io.Writer
}
