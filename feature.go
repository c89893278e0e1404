package physics

import "fmt"

type FeatureKind uint8

const (
	FeatureNone FeatureKind = iota
	FeatureVertex
	FeatureEdge
	FeatureFace
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureNone:
		return "None"
	case FeatureVertex:
		return "Vertex"
	case FeatureEdge:
		return "Edge"
	case FeatureFace:
		return "Face"
	default:
		return "Unknown"
	}
}

// Feature points at a vertex, edge or face of a shape. It does not own
// anything; the index is only meaningful together with the shape it was
// taken from.
type Feature struct {
	Kind  FeatureKind
	Index int
}

var NoFeature = Feature{Kind: FeatureNone}

func VertexFeature(i int) Feature { return Feature{Kind: FeatureVertex, Index: i} }
func EdgeFeature(i int) Feature   { return Feature{Kind: FeatureEdge, Index: i} }
func FaceFeature(i int) Feature   { return Feature{Kind: FeatureFace, Index: i} }

func (f Feature) String() string {
	if f.Kind == FeatureNone {
		return "None"
	}
	return fmt.Sprintf("%v(%d)", f.Kind, f.Index)
}
