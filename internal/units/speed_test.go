package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, u := range []string{"kmh", "mph", "mps"} {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false", u)
		}
	}
	for _, u := range []string{"", "kph", "KMH", "knots"} {
		if IsValid(u) {
			t.Errorf("IsValid(%q) = true", u)
		}
	}
	if got := GetValidUnitsString(); got != "kmh, mph, mps" {
		t.Errorf("GetValidUnitsString() = %q", got)
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		unit  string
		in    float64
		want  float64
		label string
	}{
		{KMH, 50, 50, "km/h"},
		{MPH, 160.9344, 100, "mph"},
		{MPS, 36, 10, "m/s"},
		{"furlongs", 42, 42, "km/h"},
	}
	for _, tt := range tests {
		if got := ConvertSpeed(tt.in, tt.unit); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ConvertSpeed(%v, %q) = %v, want %v", tt.in, tt.unit, got, tt.want)
		}
		if got := Label(tt.unit); got != tt.label {
			t.Errorf("Label(%q) = %q, want %q", tt.unit, got, tt.label)
		}
	}
}
