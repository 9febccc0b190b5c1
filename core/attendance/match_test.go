package attendance

import (
	"math"
	"testing"
)

func Test_euclideanDistance(t *testing.T) {
	tests := []struct {
		name          string
		probe, stored []float64
		want          float64
	}{
		{name: "identical", probe: []float64{0.1, 0.2, 0.3}, stored: []float64{0.1, 0.2, 0.3}, want: 0},
		{name: "unit apart", probe: []float64{0, 0}, stored: []float64{0, 1}, want: 1},
		{name: "3-4-5", probe: []float64{0, 0}, stored: []float64{3, 4}, want: 5},
		{name: "shorter stored treated as zeros", probe: []float64{3, 4}, stored: []float64{3}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := euclideanDistance(tt.probe, tt.stored); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("euclideanDistance() = %v; want %v", got, tt.want)
			}
		})
	}
}

func Test_bestMatch(t *testing.T) {
	galleries := []FaceData{
		{StudentID: "stu1", Descriptors: [][]float64{{0, 0}, {0, 0.55}}},
		{StudentID: "stu2", Descriptors: [][]float64{{0, 0.65}}},
	}

	tests := []struct {
		name      string
		probe     []float64
		galleries []FaceData
		wantID    string
		wantDist  float64
		wantOK    bool
	}{
		{name: "no galleries", probe: []float64{0, 0}, galleries: nil, wantOK: false},
		{
			name:  "empty gallery",
			probe: []float64{0, 0}, galleries: []FaceData{{StudentID: "stu1"}},
			wantOK: false,
		},
		{
			name:  "nearest wins across students",
			probe: []float64{0, 0.6}, galleries: galleries,
			wantID: "stu1", wantDist: 0.05, wantOK: true,
		},
		{
			name:  "nearest within own gallery",
			probe: []float64{0, 0.54}, galleries: galleries,
			wantID: "stu1", wantDist: 0.01, wantOK: true,
		},
		{
			name:  "far probe still reports nearest",
			probe: []float64{0, 10}, galleries: galleries,
			wantID: "stu2", wantDist: 9.35, wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, dist, ok := bestMatch(tt.probe, tt.galleries)
			if ok != tt.wantOK {
				t.Fatalf("bestMatch() ok = %v; want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if id != tt.wantID {
				t.Errorf("bestMatch() studentID = %v; want %v", id, tt.wantID)
			}
			if math.Abs(dist-tt.wantDist) > 1e-9 {
				t.Errorf("bestMatch() dist = %v; want %v", dist, tt.wantDist)
			}
		})
	}
}
