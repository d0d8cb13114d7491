package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Backup copies every collection file under dataDir into a timestamped
// subdirectory of backupsDir and returns the created directory along with
// the number of files copied. Writers renaming over a collection file while
// the copy runs are harmless: each source is a complete JSON array.
func Backup(dataDir, backupsDir string) (string, int, error) {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.json"))
	if err != nil {
		return "", 0, err
	}
	dest := filepath.Join(backupsDir, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", 0, fmt.Errorf("create backup directory: %w", err)
	}
	for _, src := range files {
		if err := copyFile(src, filepath.Join(dest, filepath.Base(src))); err != nil {
			return "", 0, fmt.Errorf("backup %s: %w", filepath.Base(src), err)
		}
	}
	return dest, len(files), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
