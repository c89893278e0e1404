package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	physics "github.com/MonsterRestart/Fun-sub000"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Scenario is the file format of the run command.
type Scenario struct {
	Frames int     `toml:"frames" yaml:"frames"`
	DT     float32 `toml:"dt" yaml:"dt"`

	Config physics.Config `toml:"config" yaml:"config"`

	Shapes     []ShapeSpec     `toml:"shapes" yaml:"shapes"`
	Objects    []ObjectSpec    `toml:"objects" yaml:"objects"`
	HeightMaps []HeightMapSpec `toml:"height_maps" yaml:"height_maps"`
}

type ShapeSpec struct {
	Vertices [][2]float32 `toml:"vertices" yaml:"vertices"`
	/// Shortcut for a box centered on the local origin when vertices is empty.
	Box [2]float32 `toml:"box" yaml:"box"`

	Position        [2]float32 `toml:"position" yaml:"position"`
	Orientation     float32    `toml:"orientation" yaml:"orientation"`
	Velocity        [2]float32 `toml:"velocity" yaml:"velocity"`
	AngularVelocity float32    `toml:"angular_velocity" yaml:"angular_velocity"`
	Force           [2]float32 `toml:"force" yaml:"force"`
	Torque          float32    `toml:"torque" yaml:"torque"`
	InfiniteMass    bool       `toml:"infinite_mass" yaml:"infinite_mass"`
}

type ObjectSpec struct {
	Mass         float32    `toml:"mass" yaml:"mass"`
	InfiniteMass bool       `toml:"infinite_mass" yaml:"infinite_mass"`
	CenterOfMass [3]float32 `toml:"center_of_mass" yaml:"center_of_mass"`
	Inertia      [3]float32 `toml:"inertia" yaml:"inertia"`

	Position        [3]float32 `toml:"position" yaml:"position"`
	Velocity        [3]float32 `toml:"velocity" yaml:"velocity"`
	AngularVelocity [3]float32 `toml:"angular_velocity" yaml:"angular_velocity"`
	Force           [3]float32 `toml:"force" yaml:"force"`
	Torque          [3]float32 `toml:"torque" yaml:"torque"`

	Vertices  [][3]float32 `toml:"vertices" yaml:"vertices"`
	Edges     [][2]int     `toml:"edges" yaml:"edges"`
	Triangles [][3]int     `toml:"triangles" yaml:"triangles"`
}

type HeightMapSpec struct {
	/// Image path, relative to the scenario file.
	Image    string     `toml:"image" yaml:"image"`
	Position [3]float32 `toml:"position" yaml:"position"`
	StartX   int        `toml:"start_x" yaml:"start_x"`
	StartZ   int        `toml:"start_z" yaml:"start_z"`
	NumX     int        `toml:"num_x" yaml:"num_x"`
	NumZ     int        `toml:"num_z" yaml:"num_z"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sc := &Scenario{
		Frames: 60,
		DT:     1.0 / 60.0,
		Config: physics.DefaultConfig(),
	}
	if err := physics.DecodeFile(data, filepath.Ext(path), sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range sc.HeightMaps {
		if img := sc.HeightMaps[i].Image; img != "" && !filepath.IsAbs(img) {
			sc.HeightMaps[i].Image = filepath.Join(filepath.Dir(path), img)
		}
	}
	return sc, nil
}

// Build creates an engine holding every entity of the scenario.
func (sc *Scenario) Build(opts ...physics.Option) (*physics.Engine, error) {
	e, err := physics.New(sc.Config, opts...)
	if err != nil {
		return nil, err
	}
	for i, s := range sc.Shapes {
		if _, err := e.CreateShape(s.def()); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	for i, o := range sc.Objects {
		if _, err := e.CreateObject(o.def()); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}
	for i, h := range sc.HeightMaps {
		def, err := physics.LoadHeightMapDef(h.Image, physics.HeightMapDef{
			Position:      mgl32.Vec3(h.Position),
			HeightsStartX: h.StartX,
			HeightsStartZ: h.StartZ,
			NumHeightsX:   h.NumX,
			NumHeightsZ:   h.NumZ,
		})
		if err != nil {
			return nil, fmt.Errorf("height map %d: %w", i, err)
		}
		if _, err := e.CreateHeightMap(def); err != nil {
			return nil, fmt.Errorf("height map %d: %w", i, err)
		}
	}
	return e, nil
}

func toVect(v [2]float32) vect.Vect {
	return vect.Vect{X: vect.Float(v[0]), Y: vect.Float(v[1])}
}

func (s ShapeSpec) def() physics.ShapeDef {
	var verts physics.Vertices
	if len(s.Vertices) > 0 {
		verts = make(physics.Vertices, len(s.Vertices))
		for i, v := range s.Vertices {
			verts[i] = toVect(v)
		}
	} else {
		verts = physics.BoxVertices(vect.Float(s.Box[0]), vect.Float(s.Box[1]), vect.Vector_Zero)
	}
	return physics.ShapeDef{
		Vertices:        verts,
		Position:        toVect(s.Position),
		Orientation:     vect.Float(s.Orientation),
		Velocity:        toVect(s.Velocity),
		AngularVelocity: vect.Float(s.AngularVelocity),
		Force:           toVect(s.Force),
		Torque:          vect.Float(s.Torque),
		InfiniteMass:    s.InfiniteMass,
	}
}

func (o ObjectSpec) def() physics.ObjectDef {
	verts := make([]mgl32.Vec3, len(o.Vertices))
	for i, v := range o.Vertices {
		verts[i] = mgl32.Vec3(v)
	}
	return physics.ObjectDef{
		Mass:            o.Mass,
		InfiniteMass:    o.InfiniteMass,
		CenterOfMass:    mgl32.Vec3(o.CenterOfMass),
		Inertia:         mgl32.Vec3(o.Inertia),
		Position:        mgl32.Vec3(o.Position),
		Orientation:     mgl32.QuatIdent(),
		Velocity:        mgl32.Vec3(o.Velocity),
		AngularVelocity: mgl32.Vec3(o.AngularVelocity),
		Force:           mgl32.Vec3(o.Force),
		Torque:          mgl32.Vec3(o.Torque),
		Vertices:        verts,
		Edges:           o.Edges,
		Triangles:       o.Triangles,
	}
}
