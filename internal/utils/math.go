// internal/utils/math.go
package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LerpVec3 интерполирует точку между from и to.
func LerpVec3(from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}

// Clamp01 ограничивает прогресс анимации отрезком [0, 1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// NormalizeAngle нормализует угол в диапазон [-π, π]
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// SafeNormalize возвращает единичный вектор или ноль, если длина нулевая.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}
