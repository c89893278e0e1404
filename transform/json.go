package transform

import (
	"encoding/json"
	"fmt"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

func (xf Transform) MarshalJSON() ([]byte, error) {
	xfData := struct {
		Position vect.Vect
		Rotation vect.Float
	}{
		Position: xf.Position,
		Rotation: xf.Angle(),
	}

	return json.Marshal(&xfData)
}

func (xf *Transform) UnmarshalJSON(data []byte) error {
	xfData := struct {
		Position vect.Vect
		Rotation vect.Float
	}{}

	if err := json.Unmarshal(data, &xfData); err != nil {
		return fmt.Errorf("decoding transform: %w", err)
	}

	*xf = NewTransform(xfData.Position, xfData.Rotation)
	return nil
}
