package concat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"autoreel/internal/playlist"
)

// DescriptorLine renders one concat demuxer entry. Backslashes become forward
// slashes and embedded single quotes are escaped the way ffmpeg expects.
func DescriptorLine(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	path = strings.ReplaceAll(path, "'", `'\''`)
	return "file '" + path + "'"
}

// WriteDescriptor writes one line per playlist entry, in order.
func WriteDescriptor(w io.Writer, pl playlist.Playlist) error {
	bw := bufio.NewWriter(w)
	for _, entry := range pl.Entries {
		path := entry.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, err := fmt.Fprintln(bw, DescriptorLine(path)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDescriptorFile writes the descriptor to path as UTF-8 text.
func WriteDescriptorFile(path string, pl playlist.Playlist) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create descriptor: %w", err)
	}
	if err := WriteDescriptor(file, pl); err != nil {
		file.Close()
		return fmt.Errorf("write descriptor: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close descriptor: %w", err)
	}
	return nil
}
