package physics

import "github.com/MonsterRestart/Fun-sub000/vect"

// ContactObserver is told about every contact the engine resolves, in world
// space. Renderers use it to draw debug points and normals; the engine itself
// never draws.
type ContactObserver interface {
	OnContactFound(position, normal vect.Vect)
}

// ContactObserverFunc adapts a function to ContactObserver.
type ContactObserverFunc func(position, normal vect.Vect)

func (f ContactObserverFunc) OnContactFound(position, normal vect.Vect) {
	f(position, normal)
}
