package ir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the object format changes
const objectSchemaVersion uint16 = 1

// ObjectFile is the serialized form of a compiled module, written by the
// codegen phase and consumed by the linker.
type ObjectFile struct {
	Schema    uint16
	CrateName string
	Funcs     []Func
	Entry     string // name of the entry function, "" for libraries
}

// NewObjectFile wraps a module into an object payload.
func NewObjectFile(m *Module, entry string) *ObjectFile {
	return &ObjectFile{
		Schema:    objectSchemaVersion,
		CrateName: m.CrateName,
		Funcs:     m.Funcs,
		Entry:     entry,
	}
}

// Encode serializes the object with msgpack.
func (o *ObjectFile) Encode() ([]byte, error) {
	return msgpack.Marshal(o)
}

// DecodeObject deserializes an object payload, rejecting unknown schemas.
func DecodeObject(data []byte) (*ObjectFile, error) {
	var o ObjectFile
	if err := msgpack.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if o.Schema != objectSchemaVersion {
		return nil, fmt.Errorf("object schema %d not supported (want %d)", o.Schema, objectSchemaVersion)
	}
	return &o, nil
}

// WriteFile encodes the object and writes it under dir as <crate>.flo.
func (o *ObjectFile) WriteFile(dir string) (string, error) {
	data, err := o.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, o.CrateName+".flo")
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // object files are not secrets
		return "", err
	}
	return path, nil
}

// ReadObjectFile loads and decodes an object file from disk.
func ReadObjectFile(path string) (*ObjectFile, error) {
	// #nosec G304 -- path comes from the pipeline's own output dir
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeObject(data)
}
