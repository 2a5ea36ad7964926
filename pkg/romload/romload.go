// Package romload loads cartridge and boot ROM images from disk,
// transparently decompressing zip and 7z archives the way a user's
// downloaded ROM collection is typically packaged.
package romload

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// File reads filename and, if it is a zip or 7z archive, returns the bytes
// of the first file found inside it. Plain .gb/.gbc/.bin images and
// anything with an unrecognized extension are returned as-is.
func File(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return firstFromZip(f, int64(len(data)))
	case ".7z":
		return firstFrom7z(f, int64(len(data)))
	default:
		return data, nil
	}
}

func firstFromZip(f *os.File, size int64) ([]byte, error) {
	r, err := zip.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, errEmptyArchive
	}
	rc, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func firstFrom7z(f *os.File, size int64) ([]byte, error) {
	r, err := sevenzip.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, errEmptyArchive
	}
	rc, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

var errEmptyArchive = archiveError("romload: archive contains no files")

type archiveError string

func (e archiveError) Error() string { return string(e) }
