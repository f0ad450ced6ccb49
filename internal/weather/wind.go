package weather

import "math"

// Compass is a wind direction bucket. Calm is a sentinel for a bearing of
// exactly zero, which the provider reports when there is no wind data.
type Compass int

const (
	Calm Compass = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var compassNames = [...]string{"calm", "N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var compassIcons = [...]string{"dot", "north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func (c Compass) String() string {
	if c < Calm || c > NorthWest {
		return "unknown"
	}
	return compassNames[c]
}

// IconKey returns the local icon key for the bucket.
func (c Compass) IconKey() string {
	if c < Calm || c > NorthWest {
		return compassIcons[Calm]
	}
	return compassIcons[c]
}

func (c Compass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ClassifyWind maps a bearing in degrees to a compass bucket.
// Exact zero is Calm and shadows the bottom of the N range.
func ClassifyWind(deg float64) Compass {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return Calm
	}
	if deg < 0 || deg >= 360 {
		deg = math.Mod(deg, 360)
		if deg < 0 {
			deg += 360
		}
	}

	switch {
	case deg == 0:
		return Calm
	case deg >= 337.5 || deg < 22.5:
		return North
	case deg < 67.5:
		return NorthEast
	case deg < 112.5:
		return East
	case deg < 157.5:
		return SouthEast
	case deg < 202.5:
		return South
	case deg < 247.5:
		return SouthWest
	case deg < 292.5:
		return West
	default:
		return NorthWest
	}
}
