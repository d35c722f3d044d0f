package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Fallos de la verificación posterior a la escritura.
var (
	ErrEmptyOutput      = errors.New("render: el motor devolvió un documento vacío")
	ErrMissingOutput    = errors.New("render: el archivo no existe tras escribirlo")
	ErrZeroLength       = errors.New("render: el archivo escrito tiene longitud cero")
	ErrChecksumMismatch = errors.New("render: el archivo no coincide con lo escrito")
)

// FileWriter escribe bytes en una ruta. La implementación por defecto es atómica.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// AtomicWriter escribe en un temporal del mismo directorio y lo renombra sobre
// la ruta final: un lector nunca ve un archivo a medio escribir.
type AtomicWriter struct{}

func (AtomicWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: crear directorio: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("render: escritura atómica: %w", err)
	}
	return nil
}

// Artifact archivo verificado en disco.
type Artifact struct {
	Path     string
	Size     int64
	Checksum string // sha256 hex
}

// Checksum sha256 en hexadecimal.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify comprueba que path existe, no está vacío y contiene exactamente want.
func Verify(path string, want []byte) (Artifact, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Artifact{}, ErrMissingOutput
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("render: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return Artifact{}, ErrZeroLength
	}
	got, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("render: releer %s: %w", path, err)
	}
	sum := Checksum(got)
	if int64(len(want)) != info.Size() || sum != Checksum(want) {
		return Artifact{}, ErrChecksumMismatch
	}
	return Artifact{Path: path, Size: info.Size(), Checksum: sum}, nil
}

// writeVerified escribe y verifica. Si la verificación falla se elimina lo que
// esta escritura dejó en la ruta; un documento previo que sigue intacto no se
// toca, y un fallo de escritura tampoco borra nada.
func writeVerified(w FileWriter, path string, data []byte) (Artifact, error) {
	if len(data) == 0 {
		return Artifact{}, ErrEmptyOutput
	}
	prior, hadPrior := fingerprint(path)
	if err := w.WriteFile(path, data); err != nil {
		return Artifact{}, err
	}
	art, err := Verify(path, data)
	if err != nil {
		if now, ok := fingerprint(path); ok && (!hadPrior || now != prior) {
			_ = removeIfExists(path)
		}
		return Artifact{}, err
	}
	return art, nil
}

// fingerprint checksum del archivo en path, si existe y se puede leer.
func fingerprint(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return Checksum(data), true
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
