package dump

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write persists data to path using the atomic replace protocol:
//
//  1. A temporary file is created in the same directory as path. Same
//     directory means same filesystem, which guarantees that the final
//     rename is atomic instead of degrading to a cross-device copy.
//  2. The full buffer is written to the temporary file.
//  3. The temporary file is synced to stable storage. Skipping this step
//     would let the rename expose zero-length or partially flushed data
//     after a crash.
//  4. The temporary file is renamed over path in one indivisible step.
//
// If any step fails, the temporary file is removed on a best-effort basis
// and the pre-existing file at path is left completely untouched. At no
// point is the file at path observably partial: before the rename it holds
// the previous complete contents, after the rename the new ones.
//
// Thread-safety: This function is not safe for concurrent use on the same
// path. Two processes dumping to one path race, and the last rename wins.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// remove the temp file on any failure below
	fail := func(step string, err error) error {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s %s: %w", step, tmpPath, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}

	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s to %s: %w", tmpPath, path, err)
	}

	return nil
}

// Read returns the full contents of the file at path. A missing file is a
// distinct condition from other I/O errors: callers can detect it with
// errors.Is(err, fs.ErrNotExist) and treat it as "create new store".
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
