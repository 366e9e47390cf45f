// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всей игре.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Offset возвращает случайное смещение внутри куба со стороной size,
// центрированного в нуле: каждая ось в [-size/2, size/2).
func (s *PRNGService) Offset(size float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(s.rng.Float64() - 0.5) * size,
		(s.rng.Float64() - 0.5) * size,
		(s.rng.Float64() - 0.5) * size,
	}
}
