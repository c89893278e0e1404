package physics

import (
	"errors"

	"github.com/MonsterRestart/Fun-sub000/bounded"
)

var (
	// ErrCapacityExceeded is returned when a fixed-size list is full.
	ErrCapacityExceeded = bounded.ErrCapacityExceeded

	ErrInvalidPolygon   = errors.New("physics: invalid polygon")
	ErrInvalidMass      = errors.New("physics: invalid mass or inertia")
	ErrInvalidMesh      = errors.New("physics: invalid mesh")
	ErrInvalidHeightMap = errors.New("physics: invalid height map")
	ErrInvalidConfig    = errors.New("physics: invalid config")
	ErrUnknownUID       = errors.New("physics: unknown uid")
)
