package tempfile

import (
	"os"
	"runtime"
	"sync"
)

var (
	defaultDir     string
	defaultDirOnce sync.Once
)

// Dir returns dir if it is usable, and otherwise a default temp directory
// that prefers disk backed storage, such as /var/tmp, over a tmpfs /tmp.
// Spilled sort runs can be large, so they should not consume RAM.
func Dir(dir string) string {
	if dir != "" && isDirectoryUsable(dir) {
		return dir
	}
	defaultDirOnce.Do(func() {
		defaultDir = findDefaultDir()
	})
	return defaultDir
}

// findDefaultDir returns the first existing candidate directory.
func findDefaultDir() string {
	var candidates []string
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris":
		candidates = append(candidates, "/var/tmp")
	case "darwin":
		candidates = append(candidates, "/var/tmp", "/private/var/tmp")
	}
	for _, c := range candidates {
		if stat, err := os.Stat(c); err == nil && stat.IsDir() {
			return c
		}
	}
	return os.TempDir()
}

// isDirectoryUsable reports whether dir is a directory or could be created.
// Writability is only checked when the temp file is created.
func isDirectoryUsable(dir string) bool {
	stat, err := os.Stat(dir)
	if err != nil {
		return os.IsNotExist(err)
	}
	return stat.IsDir()
}
