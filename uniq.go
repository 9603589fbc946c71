package natsort

import "bytes"

// UniqKeys returns a channel that filters out consecutive values whose natural
// sort keys under config are equal, such as "v01" following "v1". The first
// value of every such group is kept. Pass the config given to the Sorter that
// produced in: keys are then compared exactly as the sorter ordered them,
// including the MaxLen cut, and one value per key is left. A nil config uses
// DefaultConfig.
//
// The returned channel will be closed when the input channel is closed.
func UniqKeys(in <-chan string, config *Config) <-chan string {
	enc := New(config)
	out := make(chan string)
	go func() {
		defer close(out)
		var prior, cur []byte
		priorSet := false
		for v := range in {
			cur, _ = enc.AppendKey(cur[:0], v)
			if priorSet && bytes.Equal(cur, prior) {
				continue
			}
			priorSet = true
			prior, cur = cur, prior
			out <- v
		}
	}()
	return out
}
