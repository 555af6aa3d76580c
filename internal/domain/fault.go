package domain

// Coordinate is one vertex of a fault trace, degrees.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// FaultSegment is a line-string approximation of a fault trace.
// Static reference data: loaded once, read-only for the lifetime of a run.
type FaultSegment struct {
	SegmentID   string
	Name        string
	Coordinates []Coordinate // ordered trace vertices, >= 2
	Strike      float64      // degrees
	Dip         float64      // degrees
	Rake        float64      // degrees

	// Nominal metadata; derived length is recomputed from vertices
	// rather than trusted from here.
	LengthKm               float64
	SeismogenicThicknessKm float64
}

// Clone returns a deep copy of the segment, including the trace vertices.
func (s *FaultSegment) Clone() *FaultSegment {
	c := *s
	c.Coordinates = append([]Coordinate(nil), s.Coordinates...)
	return &c
}

// MarmaraFaultSegments returns the simplified North Anatolian Fault
// segments used as built-in reference data for the study region.
func MarmaraFaultSegments() []*FaultSegment {
	return []*FaultSegment{
		{
			SegmentID: "NAF_Western",
			Name:      "North Anatolian Fault (Western Segment)",
			Coordinates: []Coordinate{
				{26.7, 40.4}, {27.2, 40.5}, {27.7, 40.7},
			},
			Strike: 275, Dip: 85, Rake: 180,
			LengthKm: 85, SeismogenicThicknessKm: 15,
		},
		{
			SegmentID: "NAF_Central",
			Name:      "North Anatolian Fault (Central Marmara)",
			Coordinates: []Coordinate{
				{27.7, 40.7}, {28.3, 40.8}, {28.9, 40.9},
			},
			Strike: 270, Dip: 80, Rake: 175,
			LengthKm: 70, SeismogenicThicknessKm: 17,
		},
		{
			SegmentID: "NAF_Eastern",
			Name:      "North Anatolian Fault (Eastern Marmara)",
			Coordinates: []Coordinate{
				{28.9, 40.9}, {29.5, 40.7}, {30.0, 40.6},
			},
			Strike: 265, Dip: 75, Rake: 170,
			LengthKm: 65, SeismogenicThicknessKm: 15,
		},
		{
			SegmentID: "NAF_Southern",
			Name:      "North Anatolian Fault (Southern Branch)",
			Coordinates: []Coordinate{
				{27.5, 40.5}, {28.2, 40.4}, {28.9, 40.3}, {29.5, 40.2},
			},
			Strike: 260, Dip: 80, Rake: 165,
			LengthKm: 120, SeismogenicThicknessKm: 12,
		},
	}
}
