package modeldata

import (
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-ball-capture/internal/component"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glb(version uint32, payload int) []byte {
	buf := make([]byte, glbHeaderSize+payload)
	binary.LittleEndian.PutUint32(buf[0:4], glbMagic)
	binary.LittleEndian.PutUint32(buf[4:8], version)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(buf)))
	return buf
}

func write(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidateGLB(t *testing.T) {
	assert.NoError(t, ValidateGLB(write(t, glb(2, 20))))

	err := ValidateGLB(write(t, glb(1, 20)))
	assert.True(t, errors.Is(err, ErrNotGLB))

	bad := glb(2, 4)
	bad[0] = 'x'
	assert.True(t, errors.Is(ValidateGLB(write(t, bad)), ErrNotGLB))

	truncated := glb(2, 20)[:16]
	assert.True(t, errors.Is(ValidateGLB(write(t, truncated)), ErrNotGLB))

	assert.True(t, errors.Is(ValidateGLB(write(t, []byte("glTF"))), ErrNotGLB))
}

func TestValidateGLBMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.glb")
	err := ValidateGLB(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
	assert.Equal(t, 1, strings.Count(err.Error(), path), "path appears once: %s", err)
	assert.True(t, strings.HasPrefix(err.Error(), "validate glb: open "))
}

func TestNodeIDsAreStableAndDistinct(t *testing.T) {
	assert.Equal(t, NodeID("ball", 0), NodeID("ball", 0))
	assert.NotEqual(t, NodeID("ball", 0), NodeID("ball", 1))
	assert.NotEqual(t, NodeID("ball", 0), NodeID("creature", 0))
}

func TestNodesCopyMaterials(t *testing.T) {
	src := []component.Material{{Albedo: color.RGBA{R: 1}}, {Albedo: color.RGBA{R: 2}}}
	nodes := Nodes("m", src)
	require.Len(t, nodes, 2)

	nodes[0].Material.Albedo.R = 99
	assert.Equal(t, uint8(1), src[0].Albedo.R)
	assert.NotSame(t, nodes[0].Material, nodes[1].Material)
	assert.Equal(t, 1, nodes[1].Index)
}

func TestProcedural(t *testing.T) {
	nodes := Procedural("creature", 5, color.RGBA{R: 200, A: 255})
	require.Len(t, nodes, 5)
	for i, n := range nodes {
		assert.Equal(t, NodeID("creature", i), n.ID)
		assert.Equal(t, uint8(200), n.Material.Albedo.R)
	}
}
