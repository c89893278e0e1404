package vect

import (
	"encoding/json"
	"fmt"
)

func (v Vect) MarshalJSON() ([]byte, error) {
	return json.Marshal(&[2]Float{v.X, v.Y})
}

func (v *Vect) UnmarshalJSON(data []byte) error {
	vectData := [2]Float{}

	//try unmarshalling array form
	if err := json.Unmarshal(data, &vectData); err != nil {
		//try object form
		objData := struct {
			X, Y Float
		}{}
		if err := json.Unmarshal(data, &objData); err != nil {
			return fmt.Errorf("decoding vect: %w", err)
		}
		v.X = objData.X
		v.Y = objData.Y
		return nil
	}

	v.X = vectData[0]
	v.Y = vectData[1]
	return nil
}
