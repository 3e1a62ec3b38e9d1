package utils

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrZipSlip      = errors.New("zip entry path escapes destination")
	ErrZipNameClash = errors.New("duplicate file name in zip")
)

// Unzip extracts all regular files of a zip archive into dstDir, flattening
// any directory structure, and returns the extracted paths.
func Unzip(zipFile, dstDir string) (files []string, err error) {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return
	}
	defer r.Close()
	seen := map[string]struct{}{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if name == "." || strings.Contains(name, "..") {
			err = ErrZipSlip
			return
		}
		// flattening must not let entries from different directories clobber
		// each other
		if _, ok := seen[name]; ok {
			err = ErrZipNameClash
			return
		}
		seen[name] = struct{}{}
		var (
			dst = filepath.Join(dstDir, name)
			in  io.ReadCloser
			out *os.File
		)
		if in, err = f.Open(); err != nil {
			return
		}
		if out, err = os.Create(dst); err != nil {
			in.Close()
			return
		}
		_, err = io.Copy(out, in)
		in.Close()
		out.Close()
		if err != nil {
			return
		}
		files = append(files, dst)
	}
	return
}
