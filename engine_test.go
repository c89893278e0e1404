package physics

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

const frame = vect.Float(1.0 / 60.0)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, append([]Option{WithLogger(discardLogger())}, opts...)...)
	require.NoError(t, err)
	return e
}

func lowestY(s *Shape) vect.Float {
	return s.AABB().Lower.Y
}

func TestUIDStability(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	assert.Equal(t, UID(0), e.NextShapeUID())

	a, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)
	require.NotNil(t, e.Shape(a))

	assert.True(t, e.DestroyShape(a))
	assert.Nil(t, e.Shape(a))
	assert.False(t, e.DestroyShape(a))

	b, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, UID(2), e.NextShapeUID())

	_, err = e.CreateShape(ShapeDef{Vertices: Vertices{{X: 0, Y: 0}}})
	assert.ErrorIs(t, err, ErrInvalidPolygon)
	assert.Equal(t, UID(2), e.NextShapeUID(), "a rejected shape does not use a uid")

	assert.Nil(t, e.Shape(ShapeNullUID))
}

func TestShapesKeepInsertionOrder(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	var uids []UID
	for i := 0; i < 4; i++ {
		uid, err := e.CreateShape(ShapeDef{
			Vertices: BoxVertices(1, 1, vect.Vector_Zero),
			Position: vect.Vect{X: vect.Float(3 * i), Y: 0},
		})
		require.NoError(t, err)
		uids = append(uids, uid)
	}
	require.True(t, e.DestroyShape(uids[1]))

	assert.Equal(t, []UID{uids[0], uids[2], uids[3]}, e.Shapes())
	assert.Equal(t, vect.Float(6), e.Shape(uids[2]).Dynamics.Position.X)
}

func TestEntityCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxShapes = 1
	cfg.MaxObjects = 1
	cfg.MaxHeightMaps = 0
	e := newTestEngine(t, cfg)

	_, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)
	uid, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, ShapeNullUID, uid)

	verts, edges, tris := tetrahedron()
	def := ObjectDef{Mass: 1, Inertia: mgl32.Vec3{1, 1, 1}, Vertices: verts, Edges: edges, Triangles: tris}
	_, err = e.CreateObject(def)
	require.NoError(t, err)
	uid, err = e.CreateObject(def)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, ObjectNullUID, uid)

	uid, err = e.CreateHeightMap(HeightMapDef{ImageWidth: 2, ImageHeight: 2, ImageRGBA: make([]byte, 16), NumHeightsX: 2, NumHeightsZ: 2})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, HeightMapNullUID, uid)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSubSteps = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.MaxContacts = 4
	e := newTestEngine(t, cfg)
	assert.Equal(t, cfg, e.Config())
}

func TestStepAdvancesFreeShapes(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	uid, err := e.CreateShape(ShapeDef{
		Vertices: BoxVertices(1, 1, vect.Vector_Zero),
		Velocity: vect.Vect{X: 6, Y: 0},
	})
	require.NoError(t, err)

	require.NoError(t, e.Step(0))
	assert.Zero(t, e.StepCount())

	require.NoError(t, e.Step(frame))
	assert.Equal(t, 1, e.StepCount())
	assert.False(t, e.AnyShapesInCollision())
	assert.InDelta(t, 0.1, float64(e.Shape(uid).Dynamics.Position.X), tolerance)
}

// fallingBoxScene is a static unit floor with its top at y = 0.5 and a small
// box dropped on it under a constant downward force.
func fallingBoxScene(t *testing.T, e *Engine) (floor, falling UID) {
	const g = 9.8
	var err error
	floor, err = e.CreateShape(ShapeDef{
		Vertices:     BoxVertices(1, 1, vect.Vector_Zero),
		InfiniteMass: true,
	})
	require.NoError(t, err)

	size := vect.Float(0.2)
	falling, err = e.CreateShape(ShapeDef{
		Vertices: BoxVertices(size, size, vect.Vector_Zero),
		Position: vect.Vect{X: 0, Y: 1},
		Velocity: vect.Vect{X: 0, Y: -1},
		Force:    vect.Vect{X: 0, Y: -g * size * size},
	})
	require.NoError(t, err)
	return floor, falling
}

func TestFallingBoxSettlesOnFloor(t *testing.T) {
	var found []vect.Vect
	e := newTestEngine(t, DefaultConfig(), WithObserver(ContactObserverFunc(func(position, normal vect.Vect) {
		found = append(found, normal)
	})))
	floorUID, boxUID := fallingBoxScene(t, e)
	const floorTop = 0.5

	minSpeed := float64(e.Config().MinSpeed)
	collided := false
	for i := 0; i < 180; i++ {
		require.NoError(t, e.Step(frame))
		collided = collided || e.AnyShapesInCollision()

		box := e.Shape(boxUID)
		require.GreaterOrEqual(t, float64(lowestY(box)), floorTop-1e-3, "frame %d: box went through the floor", i)
		if i >= 120 {
			// resting contact bounces at the separation bias speed
			assert.InDelta(t, minSpeed, float64(vect.FAbs(box.Dynamics.Velocity.Y)), 0.01, "frame %d", i)
			assert.InDelta(t, floorTop, float64(lowestY(box)), 1e-3, "frame %d", i)
		}

		floor := e.Shape(floorUID)
		require.Equal(t, vect.Vector_Zero, floor.Dynamics.Velocity)
		require.Zero(t, floor.Dynamics.AngularVelocity)
		require.Equal(t, vect.Vector_Zero, floor.Dynamics.Position)
	}

	assert.True(t, collided)
	assert.Equal(t, 180, e.StepCount())

	box := e.Shape(boxUID)
	assert.InDelta(t, 0, float64(box.Dynamics.Position.X), tolerance)

	require.NotEmpty(t, found)
	for _, n := range found {
		assert.True(t, vect.NearlyEquals(vect.Vect{X: 0, Y: 1}, n, tolerance) ||
			vect.NearlyEquals(vect.Vect{X: 0, Y: -1}, n, tolerance), "normal %v", n)
	}
}

func TestHeadOnCollision(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	a, err := e.CreateShape(ShapeDef{
		Vertices: BoxVertices(1, 1, vect.Vector_Zero),
		Position: vect.Vect{X: -1, Y: 0},
		Velocity: vect.Vect{X: 3, Y: 0},
	})
	require.NoError(t, err)
	b, err := e.CreateShape(ShapeDef{
		Vertices: BoxVertices(1, 1.5, vect.Vector_Zero),
		Position: vect.Vect{X: 1, Y: 0},
		Velocity: vect.Vect{X: -3, Y: 0},
	})
	require.NoError(t, err)

	momentum := func() vect.Float {
		sa, sb := e.Shape(a), e.Shape(b)
		return sa.Mass*sa.Dynamics.Velocity.X + sb.Mass*sb.Dynamics.Velocity.X
	}
	before := momentum()

	collided := false
	for i := 0; i < 30; i++ {
		require.NoError(t, e.Step(frame))
		collided = collided || e.AnyShapesInCollision()

		contacts, err := e.Penetrations()
		require.NoError(t, err)
		require.Empty(t, contacts, "frame %d", i)
	}

	require.True(t, collided)
	assert.InDelta(t, float64(before), float64(momentum()), 1e-3)
	assert.Less(t, float64(e.Shape(a).Dynamics.Velocity.X), float64(e.Shape(b).Dynamics.Velocity.X))
}

func TestInfiniteMassShapeIsNotPushed(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	wall, err := e.CreateShape(ShapeDef{
		Vertices:        BoxVertices(1, 4, vect.Vector_Zero),
		Position:        vect.Vect{X: -2, Y: 0},
		Velocity:        vect.Vect{X: 2, Y: 0},
		AngularVelocity: 0,
		InfiniteMass:    true,
	})
	require.NoError(t, err)
	ball, err := e.CreateShape(ShapeDef{
		Vertices: BoxVertices(0.5, 0.5, vect.Vector_Zero),
		Position: vect.Vect{X: 0, Y: 0.3},
	})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		require.NoError(t, e.Step(frame))
		w := e.Shape(wall)
		require.Equal(t, vect.Vect{X: 2, Y: 0}, w.Dynamics.Velocity)
		require.Zero(t, w.Dynamics.AngularVelocity)
	}
	// the wall swept the box along
	assert.Greater(t, float64(e.Shape(ball).Dynamics.Velocity.X), 2.0)
}

func TestStepReportsContactOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxContacts = 1
	e := newTestEngine(t, cfg)
	fallingBoxScene(t, e)

	var stepErr error
	for i := 0; i < 60 && stepErr == nil; i++ {
		stepErr = e.Step(frame)
	}
	assert.ErrorIs(t, stepErr, ErrCapacityExceeded)
}

func TestStepSurvivesContactForceFailure(t *testing.T) {
	var logs bytes.Buffer
	cfg := DefaultConfig()
	// both corners of the landing box need driving, one pivot is not enough
	cfg.MaxPivots = 1
	e := newTestEngine(t, cfg, WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))))
	_, boxUID := fallingBoxScene(t, e)

	for i := 0; i < 120; i++ {
		require.NoError(t, e.Step(frame))
		require.GreaterOrEqual(t, float64(lowestY(e.Shape(boxUID))), 0.5-1e-3, "frame %d", i)
		contacts, err := e.Penetrations()
		require.NoError(t, err)
		require.Empty(t, contacts, "frame %d", i)
	}
	assert.Contains(t, logs.String(), "contact force solve failed")
}

func TestAlignedStackWithRedundantContacts(t *testing.T) {
	const g = 9.8
	e := newTestEngine(t, DefaultConfig())
	_, err := e.CreateShape(ShapeDef{
		Vertices:     BoxVertices(4, 1, vect.Vector_Zero),
		InfiniteMass: true,
	})
	require.NoError(t, err)

	var stack []UID
	for _, y := range []vect.Float{1.05, 2.1} {
		uid, err := e.CreateShape(ShapeDef{
			Vertices: BoxVertices(1, 1, vect.Vector_Zero),
			Position: vect.Vect{X: 0, Y: y},
			Force:    vect.Vect{X: 0, Y: -g},
		})
		require.NoError(t, err)
		stack = append(stack, uid)
	}

	collided := false
	for i := 0; i < 120; i++ {
		require.NoError(t, e.Step(frame), "frame %d", i)
		collided = collided || e.AnyShapesInCollision()

		contacts, err := e.Penetrations()
		require.NoError(t, err)
		require.Empty(t, contacts, "frame %d: committed state penetrates", i)

		lower, upper := e.Shape(stack[0]), e.Shape(stack[1])
		require.GreaterOrEqual(t, float64(lowestY(lower)), 0.5-1e-3, "frame %d", i)
		require.GreaterOrEqual(t, float64(lowestY(upper)), float64(lower.AABB().Upper.Y)-1e-3, "frame %d", i)
	}
	assert.True(t, collided)
}

func TestEngineStepsObjects(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	verts, edges, tris := tetrahedron()
	uid, err := e.CreateObject(ObjectDef{
		Mass:      1,
		Inertia:   mgl32.Vec3{1, 1, 1},
		Velocity:  mgl32.Vec3{0, 0, 6},
		Vertices:  verts,
		Edges:     edges,
		Triangles: tris,
	})
	require.NoError(t, err)

	require.NoError(t, e.Step(frame))
	assert.InDelta(t, 0.1, e.Object(uid).Dynamics.Position.Z(), tolerance)

	assert.True(t, e.DestroyObject(uid))
	assert.Nil(t, e.Object(uid))
	assert.Equal(t, UID(1), e.NextObjectUID())
}

func TestEngineClosestFeatures(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	a, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)
	b, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero), Position: vect.Vect{X: 3, Y: 0}})
	require.NoError(t, err)

	res, err := e.ClosestFeatures(a, b)
	require.NoError(t, err)
	assert.Equal(t, VClipDone, res.State)
	assert.InDelta(t, 2, float64(res.Distance), tolerance)

	_, err = e.ClosestFeatures(a, ShapeNullUID)
	assert.ErrorIs(t, err, ErrUnknownUID)
}

func TestDestroyKeepsUIDCounters(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	uid, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)

	e.Destroy()
	assert.Empty(t, e.Shapes())
	assert.Nil(t, e.Shape(uid))

	next, err := e.CreateShape(ShapeDef{Vertices: BoxVertices(1, 1, vect.Vector_Zero)})
	require.NoError(t, err)
	assert.Greater(t, next, uid)
}
