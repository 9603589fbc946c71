package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/lanrat/natsort/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding the flag defaults of a command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"key,sort"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to the user config directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates the template by reflecting over the command struct and its kong tags.
func (c *ConfigInit) Run(st *Streams) error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	global := flagDefaults(reflect.TypeOf(LogConfig{}), "log.")
	var flags map[string]any
	switch c.Command {
	case "key":
		flags = flagDefaults(reflect.TypeOf(Key{}), "")
	case "sort":
		flags = flagDefaults(reflect.TypeOf(Sort{}), "")
	default:
		return errors.New("unknown command; expected 'key' or 'sort'")
	}

	dest := c.Output
	if dest == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dest = filepath.Join(dir, "config."+format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	data, err := marshal(format, layout(format, c.Command, global, flags))
	if err != nil {
		return err
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	_, err = fmt.Fprintln(st.Out, dest)
	return err
}

func marshal(format string, root map[string]any) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return json.MarshalIndent(root, "", "  ")
	}
}

// layout arranges flag defaults the way each kong loader looks them up.
//
//   - kong.JSON: flat, '-' in flag names written as '_'.
//   - kongyaml: command flags under the command name, global flags at the top.
//   - kongtoml: flat, exact flag names. Any other key fails its validation.
//
// Prefixed global flags such as log.level stay literal dotted keys in every format.
func layout(format, command string, global, flags map[string]any) map[string]any {
	root := map[string]any{}
	switch format {
	case "json":
		for _, m := range []map[string]any{global, flags} {
			for k, v := range m {
				root[strings.ReplaceAll(k, "-", "_")] = v
			}
		}
	case "yaml":
		maps.Copy(root, global)
		root[command] = flags
	default:
		maps.Copy(root, global)
		maps.Copy(root, flags)
	}
	return root
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// flagName converts a Go field name to the kong flag name, ChunkSize to chunk-size.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if 'A' <= r && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// flagDefaults maps the flag names of t to their defaults. Positional
// arguments and commands are skipped, and so are path flags without a
// default: kong expands an empty path from a config file to the working
// directory.
func flagDefaults(t reflect.Type, prefix string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			maps.Copy(out, flagDefaults(f.Type, prefix+f.Tag.Get("prefix")))
			continue
		}
		def := f.Tag.Get("default")
		if f.Tag.Get("type") == "path" && def == "" {
			continue
		}
		name := f.Tag.Get("name")
		if name == "" {
			name = flagName(f.Name)
		}
		if val := defaultValueForField(f.Type, def); val != nil {
			out[prefix+name] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	switch t.Kind() {
	case reflect.String:
		return def // may be empty
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	default:
		return nil
	}
}
