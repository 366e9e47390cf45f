// internal/types/types.go
package types

// EntityID — уникальный идентификатор сущности. Идентификаторы не переиспользуются,
// поэтому ссылка на удалённую сущность никогда не указывает на новую.
type EntityID uint64

// Role — роль сущности в сцене.
type Role string

const (
	RoleCreature Role = "creature"
	RoleBall     Role = "ball"
)
