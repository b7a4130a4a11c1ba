package source

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/djboot-dev/djboot/internal/errors"
)

// extractTarGz unpacks a .tar.gz archive into dest, rejecting entries that
// would escape it.
func extractTarGz(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return errors.New("E022").WithPath(archive).Wrap(err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.New("E022").WithPath(archive).Wrap(err)
	}
	defer gz.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.New("E022").WithPath(dest).Wrap(err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.New("E022").WithPath(archive).Wrap(err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.New("E022").WithPath(target).Wrap(err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.New("E022").WithPath(target).Wrap(err)
			}
			if err := writeEntry(target, tr, hdr.FileInfo().Mode()); err != nil {
				return errors.New("E022").WithPath(target).Wrap(err)
			}
		default:
			// Symlinks and specials are not part of a boilerplate tree.
			continue
		}
	}
}

// safeJoin joins name under dest and rejects path traversal.
func safeJoin(dest, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", errors.New("E022").
			WithPath(name).
			WithDetail("Archive entry escapes the extraction directory")
	}
	return filepath.Join(dest, cleaned), nil
}

func writeEntry(path string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}
