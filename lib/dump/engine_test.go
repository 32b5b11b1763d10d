package dump

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	payload := []byte("hello dump engine")

	if err := Write(path, payload); err != nil {
		t.Fatalf("Unexpected error during Write: %v", err)
	}

	data, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}

	if !bytes.Equal(data, payload) {
		t.Errorf("Expected %q, got %q", payload, data)
	}
}

func TestWriteReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := Write(path, []byte("first")); err != nil {
		t.Fatalf("Unexpected error during first Write: %v", err)
	}
	if err := Write(path, []byte("second")); err != nil {
		t.Fatalf("Unexpected error during second Write: %v", err)
	}

	data, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected %q, got %q", "second", data)
	}
}

func TestWriteEmptyPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := Write(path, nil); err != nil {
		t.Fatalf("Unexpected error during Write: %v", err)
	}

	data, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty file, got %d bytes", len(data))
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	if err := Write(path, []byte("payload")); err != nil {
		t.Fatalf("Unexpected error during Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Unexpected error reading dir: %v", err)
	}

	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly the target file in %s, got %d entries", dir, len(entries))
	}
}

func TestWriteFailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	original := []byte("committed contents")

	if err := Write(path, original); err != nil {
		t.Fatalf("Unexpected error during Write: %v", err)
	}

	// A dump into a non-existent directory must fail before any
	// filesystem interaction with the target
	badPath := filepath.Join(dir, "does-not-exist", "test.db")
	if err := Write(badPath, []byte("new contents")); err == nil {
		t.Fatalf("Expected error writing into missing directory")
	}

	data, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("Target file changed after failed dump: %q", data)
	}
}

func TestCrashBeforeRenameLeavesTargetIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	original := []byte("committed contents")

	if err := Write(path, original); err != nil {
		t.Fatalf("Unexpected error during Write: %v", err)
	}

	// Simulate a crash between temp file write and rename: a fully
	// written and synced temp file sits beside the target, but the
	// rename never happened
	tmpPath := filepath.Join(dir, "test.db.tmp-12345")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		t.Fatalf("Unexpected error creating temp file: %v", err)
	}
	if _, err := tmp.Write([]byte("uncommitted contents")); err != nil {
		t.Fatalf("Unexpected error writing temp file: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		t.Fatalf("Unexpected error syncing temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("Unexpected error closing temp file: %v", err)
	}

	// the target must hold the previous complete contents, byte for byte
	data, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("Target file changed by interrupted dump: %q", data)
	}

	// recovery: the next dump replaces the target as usual
	replacement := []byte("next contents")
	if err := Write(path, replacement); err != nil {
		t.Fatalf("Unexpected error during Write after interrupted dump: %v", err)
	}
	data, err = Read(path)
	if err != nil {
		t.Fatalf("Unexpected error during Read: %v", err)
	}
	if !bytes.Equal(data, replacement) {
		t.Errorf("Expected %q after recovery dump, got %q", replacement, data)
	}
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Read(path)
	if err == nil {
		t.Fatalf("Expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}
