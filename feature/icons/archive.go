package icons

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// writeArchive writes a zip archive atomically: fill writes entries into a
// temp file next to the destination, which is renamed into place only after
// the archive closed cleanly.
func writeArchive(path string, fill func(zw *zip.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newError(KindPackaging, "archive", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return newError(KindPackaging, "archive", err)
	}
	defer os.Remove(tmp.Name())

	zw := zip.NewWriter(tmp)
	if err := fill(zw); err != nil {
		zw.Close()
		tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return newError(KindPackaging, "archive", err)
	}
	if err := tmp.Close(); err != nil {
		return newError(KindPackaging, "archive", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return newError(KindPackaging, "archive", err)
	}
	return nil
}

// addFile stores a local file under name in the archive, uncompressed.
// Icons are already compressed image data; recompression only costs time.
func addFile(zw *zip.Writer, name, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return newError(KindPackaging, "archive", err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return newError(KindPackaging, "archive", err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return newError(KindPackaging, "archive", err)
	}
	return nil
}

// addBytes stores raw bytes under name in the archive.
func addBytes(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return newError(KindPackaging, "archive", err)
	}
	if _, err := w.Write(data); err != nil {
		return newError(KindPackaging, "archive", err)
	}
	return nil
}
