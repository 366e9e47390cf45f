// internal/component/model.go
package component

import "image/color"

// Material — внешний вид одного меша.
type Material struct {
	Albedo            color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float64
}

// MeshNode — один меш модели. ID стабилен между перезагрузками одной и той же модели.
type MeshNode struct {
	ID       uint64
	Index    int
	Material *Material
}

// Model связывает сущность с загруженным ассетом и его мешами.
type Model struct {
	Key   string // ключ ассета в ModelManager
	Nodes []*MeshNode
}

// Node returns the node with the given stable id.
func (m *Model) Node(id uint64) (*MeshNode, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
