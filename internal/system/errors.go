package system

import "github.com/pkg/errors"

// ErrMissingEntity is returned when an operation needs the ball or the
// creature and it is not in the scene.
var ErrMissingEntity = errors.New("entity not in scene")
