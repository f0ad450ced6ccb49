package weather

import (
	"math"
	"testing"
)

func TestClassifyWind(t *testing.T) {
	tests := []struct {
		deg  float64
		want Compass
	}{
		{0, Calm},
		{0.1, North},
		{22.4, North},
		{22.5, NorthEast},
		{67.4, NorthEast},
		{67.5, East},
		{90, East},
		{112.5, SouthEast},
		{157.5, South},
		{180, South},
		{202.5, SouthWest},
		{247.5, West},
		{292.5, NorthWest},
		{337.4, NorthWest},
		{337.5, North},
		{359.9, North},
		{360, Calm},
		{450, East},
		{-90, West},
	}

	for _, tt := range tests {
		if got := ClassifyWind(tt.deg); got != tt.want {
			t.Errorf("ClassifyWind(%v) = %s, want %s", tt.deg, got, tt.want)
		}
	}
}

func TestClassifyWindNonFinite(t *testing.T) {
	for _, deg := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := ClassifyWind(deg); got != Calm {
			t.Errorf("ClassifyWind(%v) = %s, want calm", deg, got)
		}
	}
}

func TestCompassIconKey(t *testing.T) {
	if got := Calm.IconKey(); got != "dot" {
		t.Errorf("Calm.IconKey() = %q", got)
	}
	if got := SouthWest.IconKey(); got != "southwest" {
		t.Errorf("SouthWest.IconKey() = %q", got)
	}
	if got := Compass(42).String(); got != "unknown" {
		t.Errorf("out of range String() = %q", got)
	}
}

func TestConditionsWindDirection(t *testing.T) {
	c := Conditions{WindDirectionDeg: 200}
	if got := c.WindDirection(); got != South {
		t.Fatalf("WindDirection() = %s", got)
	}
}
