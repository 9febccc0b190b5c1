package attendance

import "math"

// matchThreshold is the maximum euclidean distance for a facial match;
// candidates at or above it are rejected.
const matchThreshold = 0.6

// euclideanDistance compares a probe descriptor against a stored one over the
// probe's dimensions.
func euclideanDistance(probe, stored []float64) float64 {
	var sum float64
	for i := range probe {
		var s float64
		if i < len(stored) {
			s = stored[i]
		}
		d := probe[i] - s
		sum += d * d
	}
	return math.Sqrt(sum)
}

// bestMatch scans every descriptor of every gallery entry and returns the
// student ID owning the globally nearest descriptor along with its distance.
// ok is false when no gallery has any descriptor.
func bestMatch(probe []float64, galleries []FaceData) (studentID string, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, fd := range galleries {
		for _, stored := range fd.Descriptors {
			if d := euclideanDistance(probe, stored); d < dist {
				dist = d
				studentID = fd.StudentID
				ok = true
			}
		}
	}
	return studentID, dist, ok
}
