// Package stage assembles the package staging tree from compiler output,
// runtime support files and npm dependencies.
package stage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
)

// CopyMatches copies files below baseDir matching the slash-separated glob
// into dest. baseDir is the glob base: it is stripped from each match and the
// remaining relative structure is recreated under dest. baseDir is used
// literally, so it may contain glob metacharacters. A base directory that
// does not exist copies nothing. Returns the destination paths in match order.
func CopyMatches(baseDir, glob, dest string) ([]string, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(baseDir), glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", glob, err)
	}

	copied := make([]string, 0, len(matches))
	for _, m := range matches {
		rel := filepath.FromSlash(m)
		dst := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(dst), defs.DirPerm); err != nil {
			return copied, fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
		}
		if err := copyFile(filepath.Join(baseDir, rel), dst); err != nil {
			return copied, err
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

// copyFile copies src to dst, replacing dst and carrying over the mode bits.
func copyFile(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := dstFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := dstFile.Chmod(srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}
