package physics

import "math"

// UID identifies an entity inside one Engine. UIDs are handed out in
// increasing order and never reused.
type UID int

const (
	ShapeNullUID     UID = math.MaxInt32
	ObjectNullUID    UID = math.MaxInt32
	HeightMapNullUID UID = math.MaxInt32
)

type uidCounter struct {
	next UID
}

func (c *uidCounter) Peek() UID {
	return c.next
}

func (c *uidCounter) Next() UID {
	uid := c.next
	if uid >= math.MaxInt32 {
		panic("uid counter overflowed")
	}
	c.next++
	return uid
}
