// Package fileutil moves media files between directories that may live on
// different filesystems.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// MoveFile renames src to dst. Across filesystems it copies, verifies the
// copy against the source, and only then removes src.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, unix.EXDEV) {
		return err
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// CopyFileVerified copies src to dst, flushes it, then reads dst back and
// compares SHA-256 digests. dst keeps the mode and modification time of src
// and is removed when anything fails.
func CopyFileVerified(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	want := sha256.New()
	if err := copyThrough(src, dst, info.Mode().Perm(), want); err != nil {
		return err
	}
	got := sha256.New()
	n, err := digest(dst, got)
	if err != nil {
		return fmt.Errorf("verify copy: %w", err)
	}
	if n != info.Size() {
		return fmt.Errorf("verify copy: %s has %d bytes, source has %d", dst, n, info.Size())
	}
	if !bytes.Equal(want.Sum(nil), got.Sum(nil)) {
		return fmt.Errorf("verify copy: %s does not match source checksum", dst)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func copyThrough(src, dst string, perm os.FileMode, h hash.Hash) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, io.TeeReader(in, h)); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func digest(path string, h hash.Hash) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(h, f)
}
