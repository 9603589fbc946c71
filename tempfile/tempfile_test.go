package tempfile_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lanrat/natsort/tempfile"
)

const line = "file9.txt file10.txt file100.txt"

func TestSingleTempFile(t *testing.T) {
	tempWriter, err := tempfile.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	n, err := tempWriter.WriteString(line)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(line) {
		t.Fatalf("WriteString returned %d, expected %d", n, len(line))
	}
	if s := tempWriter.Size(); s != 1 {
		t.Fatalf("tempWriter.Size returned %d, expected %d", s, 1)
	}

	name := tempWriter.Name()
	tempReader, err := tempWriter.Save()
	if err != nil {
		t.Fatal(err)
	}
	if s := tempReader.Size(); s != 1 {
		t.Fatalf("tempReader.Size returned %d, expected %d", s, 1)
	}
	str, err := tempReader.Read(0).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if str != line {
		t.Fatalf("tempReader.ReadString returned %q expected %q", str, line)
	}
	if err := tempReader.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("temp file exists after closing")
	}
}

func testSections(t *testing.T, tempWriter tempfile.TempWriter) {
	t.Helper()
	iterations := 10
	for i := 0; i < iterations; i++ {
		if _, err := fmt.Fprintf(tempWriter, "%d: %s", i, line); err != nil {
			t.Fatal(err)
		}
		if s := tempWriter.Size(); s != i+1 {
			t.Fatalf("tempWriter.Size returned %d, expected %d", s, i+1)
		}
		if _, err := tempWriter.Next(); err != nil {
			t.Fatal(err)
		}
	}

	tempReader, err := tempWriter.Save()
	if err != nil {
		t.Fatal(err)
	}
	// Save ends an empty trailing section
	if s := tempReader.Size(); s != iterations+1 {
		t.Fatalf("tempReader.Size returned %d, expected %d", s, iterations+1)
	}

	// read the sections out of order
	for i := iterations - 1; i >= 0; i-- {
		str, err := tempReader.Read(i).ReadString('\n')
		if err != nil && err != io.EOF {
			t.Fatal(err)
		}
		expected := fmt.Sprintf("%d: %s", i, line)
		if str != expected {
			t.Fatalf("section %d returned %q expected %q", i, str, expected)
		}
	}
	if _, err := tempReader.Read(iterations).ReadByte(); err != io.EOF {
		t.Fatalf("trailing section should be empty, got err %v", err)
	}
	if err := tempReader.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestTempFileSections(t *testing.T) {
	tempWriter, err := tempfile.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name := tempWriter.Name()
	testSections(t, tempWriter)
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("temp file exists after closing")
	}
}

func TestMockSections(t *testing.T) {
	testSections(t, tempfile.Mock(128))
}

func TestWriterCloseRemovesFile(t *testing.T) {
	tempWriter, err := tempfile.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tempWriter.WriteString(line); err != nil {
		t.Fatal(err)
	}
	name := tempWriter.Name()
	if err := tempWriter.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("temp file exists after abort")
	}
}

func TestNewCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spill", "runs")
	tempWriter, err := tempfile.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer tempWriter.Close()
	if filepath.Dir(tempWriter.Name()) != dir {
		t.Fatalf("temp file %q not created in %q", tempWriter.Name(), dir)
	}
}

func TestReadOutOfRange(t *testing.T) {
	tempReader, err := tempfile.Mock(0).Save()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out of range section")
		}
	}()
	tempReader.Read(5)
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	if got := tempfile.Dir(dir); got != dir {
		t.Errorf("Dir(%q) = %q", dir, got)
	}

	// a regular file is not usable, the default is returned instead
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	def := tempfile.Dir("")
	if def == "" {
		t.Fatal("Dir returned an empty default")
	}
	if got := tempfile.Dir(file); got != def {
		t.Errorf("Dir(%q) = %q, want default %q", file, got, def)
	}
}
