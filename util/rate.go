package util

// CPUSharePct converts a cumulative CPU-seconds delta into a percentage
// of total machine capacity over the elapsed interval. A negative delta
// (PID reuse handing a fresh counter to an old id) or a non-positive
// interval reports 0 rather than a negative or infinite rate.
func CPUSharePct(deltaSec, elapsedSec float64, cores int) float64 {
	if deltaSec < 0 || elapsedSec <= 0 || cores <= 0 {
		return 0
	}
	return deltaSec / (elapsedSec * float64(cores)) * 100
}

// PctOf returns part/whole as a percentage, 0 when whole is 0.
func PctOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
