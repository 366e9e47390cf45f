// Package modeldata holds the renderer-independent description of a loaded
// model: its mesh nodes, their stable ids and starting materials.
package modeldata

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"

	"go-ball-capture/internal/component"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// ErrNotGLB is returned for files that do not carry a binary glTF header.
var ErrNotGLB = errors.New("not a binary glTF file")

const (
	glbMagic      = 0x46546C67 // "glTF"
	glbVersion    = 2
	glbHeaderSize = 12
)

// NodeID derives the stable id of mesh index within the model identified by key.
func NodeID(key string, index int) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s#%d", key, index))
}

// Nodes builds mesh nodes with fresh material copies from per-mesh materials.
func Nodes(key string, materials []component.Material) []*component.MeshNode {
	nodes := make([]*component.MeshNode, len(materials))
	for i := range materials {
		m := materials[i]
		nodes[i] = &component.MeshNode{
			ID:       NodeID(key, i),
			Index:    i,
			Material: &m,
		}
	}
	return nodes
}

// Procedural returns count nodes sharing the given albedo. It stands in for a
// model file in the terminal and headless frontends.
func Procedural(key string, count int, albedo color.RGBA) []*component.MeshNode {
	materials := make([]component.Material, count)
	for i := range materials {
		materials[i] = component.Material{Albedo: albedo, Emissive: color.RGBA{A: 255}}
	}
	return Nodes(key, materials)
}

// ValidateGLB checks the 12-byte glTF 2.0 binary header of the file at path and
// that the declared length matches the file size.
func ValidateGLB(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "validate glb")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "validate glb")
	}
	return validateHeader(f, info.Size())
}

func validateHeader(r io.Reader, size int64) error {
	var header [glbHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return errors.Wrap(ErrNotGLB, "short header")
	}
	if binary.LittleEndian.Uint32(header[0:4]) != glbMagic {
		return errors.Wrap(ErrNotGLB, "bad magic")
	}
	if v := binary.LittleEndian.Uint32(header[4:8]); v != glbVersion {
		return errors.Wrapf(ErrNotGLB, "unsupported version %d", v)
	}
	if declared := int64(binary.LittleEndian.Uint32(header[8:12])); declared != size {
		return errors.Wrapf(ErrNotGLB, "declared length %d, file has %d bytes", declared, size)
	}
	return nil
}
