package physics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/MonsterRestart/Fun-sub000/bounded"
	"github.com/MonsterRestart/Fun-sub000/lcp"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Engine owns every simulated entity and advances them frame by frame.
// It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	logger   *slog.Logger
	observer ContactObserver

	shapes     *bounded.List[Shape]
	objects    *bounded.List[Object]
	heightMaps *bounded.List[HeightMap]

	shapeUIDs     uidCounter
	objectUIDs    uidCounter
	heightMapUIDs uidCounter

	stepCount            int
	anyShapesInCollision bool

	contacts *bounded.List[Contact]
	snapshot []Dynamics2D

	/// Wall time spent in the last Step.
	StepTime time.Duration
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver installs a hook told about every contact resolved at a time
// of impact.
func WithObserver(observer ContactObserver) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		logger:     slog.Default(),
		shapes:     bounded.New[Shape](cfg.MaxShapes),
		objects:    bounded.New[Object](cfg.MaxObjects),
		heightMaps: bounded.New[HeightMap](cfg.MaxHeightMaps),
		contacts:   bounded.New[Contact](cfg.MaxContacts),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Destroy drops every entity. UID counters keep running so UIDs handed out
// before Destroy are never reused.
func (e *Engine) Destroy() {
	e.shapes.Clear()
	e.objects.Clear()
	e.heightMaps.Clear()
	e.contacts.Clear()
	e.snapshot = nil
	e.anyShapesInCollision = false
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) CreateShape(def ShapeDef) (UID, error) {
	s, err := NewShape(def)
	if err != nil {
		return ShapeNullUID, err
	}
	if e.shapes.Full() {
		return ShapeNullUID, fmt.Errorf("shapes: %w (capacity %d)", ErrCapacityExceeded, e.shapes.Cap())
	}
	if !s.Convex() {
		e.logger.Warn("shape is not convex, contacts may be missed", "vertices", len(s.Vertices))
	}
	s.UID = e.shapeUIDs.Next()
	if err := e.shapes.Push(s); err != nil {
		return ShapeNullUID, err
	}
	return s.UID, nil
}

// DestroyShape removes the shape and reports whether it existed. Pointers
// returned by Shape are invalid afterwards.
func (e *Engine) DestroyShape(uid UID) bool {
	return e.shapes.Erase(func(s *Shape) bool { return s.UID == uid })
}

// Shape returns the live shape or nil. The pointer stays valid until the
// next Destroy call.
func (e *Engine) Shape(uid UID) *Shape {
	return e.shapes.Find(func(s *Shape) bool { return s.UID == uid })
}

// Shapes lists the shape UIDs in insertion order.
func (e *Engine) Shapes() []UID {
	items := e.shapes.Items()
	uids := make([]UID, len(items))
	for i := range items {
		uids[i] = items[i].UID
	}
	return uids
}

func (e *Engine) CreateObject(def ObjectDef) (UID, error) {
	o, err := NewObject(def)
	if err != nil {
		return ObjectNullUID, err
	}
	if e.objects.Full() {
		return ObjectNullUID, fmt.Errorf("objects: %w (capacity %d)", ErrCapacityExceeded, e.objects.Cap())
	}
	o.UID = e.objectUIDs.Next()
	if err := e.objects.Push(o); err != nil {
		return ObjectNullUID, err
	}
	return o.UID, nil
}

func (e *Engine) DestroyObject(uid UID) bool {
	return e.objects.Erase(func(o *Object) bool { return o.UID == uid })
}

func (e *Engine) Object(uid UID) *Object {
	return e.objects.Find(func(o *Object) bool { return o.UID == uid })
}

func (e *Engine) CreateHeightMap(def HeightMapDef) (UID, error) {
	h, err := NewHeightMap(def, float32(e.cfg.HeightScale))
	if err != nil {
		return HeightMapNullUID, err
	}
	if e.heightMaps.Full() {
		return HeightMapNullUID, fmt.Errorf("height maps: %w (capacity %d)", ErrCapacityExceeded, e.heightMaps.Cap())
	}
	h.UID = e.heightMapUIDs.Next()
	if err := e.heightMaps.Push(h); err != nil {
		return HeightMapNullUID, err
	}
	return h.UID, nil
}

func (e *Engine) DestroyHeightMap(uid UID) bool {
	return e.heightMaps.Erase(func(h *HeightMap) bool { return h.UID == uid })
}

func (e *Engine) HeightMap(uid UID) *HeightMap {
	return e.heightMaps.Find(func(h *HeightMap) bool { return h.UID == uid })
}

// AnyShapesInCollision reports whether the last Step found a penetration.
func (e *Engine) AnyShapesInCollision() bool {
	return e.anyShapesInCollision
}

func (e *Engine) StepCount() int {
	return e.stepCount
}

func (e *Engine) NextShapeUID() UID     { return e.shapeUIDs.Peek() }
func (e *Engine) NextObjectUID() UID    { return e.objectUIDs.Peek() }
func (e *Engine) NextHeightMapUID() UID { return e.heightMapUIDs.Peek() }

// Penetrations runs the penetration test on the current state. The shape
// fields of the returned contacts index Shapes().
func (e *Engine) Penetrations() ([]Contact, error) {
	contacts := bounded.New[Contact](e.cfg.MaxContacts)
	var err error
	if findPenetrations(e.shapes.Items(), contacts) {
		err = fmt.Errorf("contacts: %w (capacity %d)", ErrCapacityExceeded, contacts.Cap())
	}
	return contacts.Items(), err
}

// ClosestFeatures runs the V-Clip walk between two shapes.
func (e *Engine) ClosestFeatures(uidA, uidB UID) (VClipResult, error) {
	a, b := e.Shape(uidA), e.Shape(uidB)
	if a == nil || b == nil {
		return VClipResult{}, fmt.Errorf("%w: shape %d or %d", ErrUnknownUID, uidA, uidB)
	}
	return ClosestFeatures(a, b), nil
}

// Step advances the simulation by dt. Objects are integrated directly.
// Shapes are advanced by bisecting the remaining frame time until the time
// of impact is bracketed within TimeTolerance; there the contacts get a
// collision impulse and resting contact forces before the rest of the frame
// is attempted. A state with penetrating shapes is never committed.
//
// The returned error reports contacts dropped because the contact list was
// full; the step itself has completed.
func (e *Engine) Step(dt vect.Float) error {
	// don't step if the timestep is 0!
	if dt <= 0 {
		return nil
	}
	start := time.Now()
	defer func() { e.StepTime = time.Since(start) }()

	e.stepCount++

	objects := e.objects.Items()
	for i := range objects {
		objects[i].Step(float32(dt))
	}

	shapes := e.shapes.Items()
	for i := range shapes {
		shapes[i].clearAccumulators()
	}
	e.anyShapesInCollision = false

	var stepErr error
	remaining := dt
	var advanced vect.Float
	tol := e.cfg.TimeTolerance

	iterations := 0
	for ; iterations < e.cfg.MaxSubSteps; iterations++ {
		left := dt - advanced
		if left <= 0 {
			break
		}
		if remaining > left {
			remaining = left
		}

		e.saveSnapshot(shapes)
		for i := range shapes {
			shapes[i].Step(remaining)
		}

		if findPenetrations(shapes, e.contacts) && stepErr == nil {
			e.logger.Warn("contact list full, contacts dropped", "capacity", e.contacts.Cap(), "step", e.stepCount)
			stepErr = fmt.Errorf("step %d: contacts: %w (capacity %d)", e.stepCount, ErrCapacityExceeded, e.contacts.Cap())
		}

		if e.contacts.Len() == 0 {
			if remaining == left {
				advanced = dt
			} else {
				advanced += remaining
			}
			if remaining > tol {
				remaining /= 2
			}
			continue
		}

		e.anyShapesInCollision = true
		e.restoreSnapshot(shapes)
		if remaining > tol {
			remaining /= 2
			continue
		}

		e.logger.Debug("time of impact", "step", e.stepCount, "at", advanced, "contacts", e.contacts.Len())
		e.resolveContacts(shapes)
		remaining = dt - advanced
	}

	if advanced < dt {
		e.logger.Debug("sub-step limit reached", "step", e.stepCount, "iterations", iterations, "advanced", advanced, "dt", dt)
	}
	return stepErr
}

func (e *Engine) resolveContacts(shapes []Shape) {
	contacts := e.contacts.Items()

	resolveCollisions(shapes, contacts, e.cfg.Restitution, e.cfg.MinSpeed, e.logger)

	if e.observer != nil {
		for i := range contacts {
			e.observer.OnContactFound(contacts[i].Position, contacts[i].Normal)
		}
	}

	res, err := solveContactForces(shapes, contacts, lcp.Options{
		Epsilon:   e.cfg.SolverEpsilon,
		MaxPivots: e.cfg.MaxPivots,
	})
	if err != nil {
		e.logger.Warn("contact force solve failed, no forces applied", "step", e.stepCount, "contacts", len(contacts), "err", err)
		return
	}
	e.logger.Debug("contact forces", "step", e.stepCount, "forces", res.F, "pivots", res.Pivots)
}

func (e *Engine) saveSnapshot(shapes []Shape) {
	e.snapshot = e.snapshot[:0]
	for i := range shapes {
		e.snapshot = append(e.snapshot, shapes[i].Dynamics)
	}
}

func (e *Engine) restoreSnapshot(shapes []Shape) {
	for i := range shapes {
		shapes[i].Dynamics = e.snapshot[i]
	}
}
