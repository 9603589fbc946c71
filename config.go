package natsort

// Config holds configuration settings for key generation and sorting
type Config struct {
	Width              int            // digit width of every padded run, invalid values become DefaultWidth
	MaxLen             int            // maximum key length in bytes, 0 for unbounded
	Overflow           OverflowPolicy // what to do with digit runs longer than Width
	ChunkSize          int            // amount of records to store in each chunk which will be written to disk
	NumWorkers         int            // maximum number of workers used to key and sort chunks
	ChanBuffSize       int            // buffer size for passing chunks to the sort workers
	SortedChanBuffSize int            // buffer size for passing records to output
	TempFilesDir       string         // empty for a disk backed OS default ex: /var/tmp
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		Width:              DefaultWidth,
		MaxLen:             0,
		Overflow:           Split,
		ChunkSize:          int(1e6),
		NumWorkers:         4,
		ChanBuffSize:       1,
		SortedChanBuffSize: 1000,
		TempFilesDir:       "",
	}
}

// Validate reports the first setting that mergeConfig would have to replace.
// Width is not checked since out of range widths are silently corrected.
func (c *Config) Validate() error {
	switch {
	case c.MaxLen < 0:
		return &ConfigError{Field: "MaxLen", Value: c.MaxLen, Reason: "must not be negative"}
	case c.Overflow < Split || c.Overflow > Reject:
		return &ConfigError{Field: "Overflow", Value: c.Overflow, Reason: "unknown overflow policy"}
	case c.ChunkSize < 0:
		return &ConfigError{Field: "ChunkSize", Value: c.ChunkSize, Reason: "must not be negative"}
	case c.NumWorkers < 0:
		return &ConfigError{Field: "NumWorkers", Value: c.NumWorkers, Reason: "must not be negative"}
	case c.ChanBuffSize < 0:
		return &ConfigError{Field: "ChanBuffSize", Value: c.ChanBuffSize, Reason: "must not be negative"}
	case c.SortedChanBuffSize < 0:
		return &ConfigError{Field: "SortedChanBuffSize", Value: c.SortedChanBuffSize, Reason: "must not be negative"}
	}
	return nil
}

// mergeConfig returns a copy of c with any values not set replaced by the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	m := *c
	m.Width = NormalizeWidth(m.Width)
	if m.MaxLen < 0 {
		m.MaxLen = d.MaxLen
	}
	if m.Overflow < Split || m.Overflow > Reject {
		m.Overflow = d.Overflow
	}
	if m.ChunkSize < 1 {
		m.ChunkSize = d.ChunkSize
	}
	if m.NumWorkers < 1 {
		m.NumWorkers = d.NumWorkers
	}
	if m.ChanBuffSize < 0 {
		m.ChanBuffSize = d.ChanBuffSize
	}
	if m.SortedChanBuffSize < 0 {
		m.SortedChanBuffSize = d.SortedChanBuffSize
	}
	// skipping TempFilesDir as the empty string selects the default
	return &m
}
