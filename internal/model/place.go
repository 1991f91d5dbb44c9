package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlaceID is a listing identifier. The backend issues UUID strings, but numeric
// ids are accepted too and kept in their decimal form.
type PlaceID string

func (id *PlaceID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PlaceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("place id: %w", err)
	}
	*id = PlaceID(n.String())
	return nil
}

type Amenity struct {
	Name string `json:"name"`
}

type PlaceSummary struct {
	ID            PlaceID `json:"id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
}

type Place struct {
	ID            PlaceID   `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Amenities     []Amenity `json:"amenities"`
	Reviews       []Review  `json:"reviews"`
}
