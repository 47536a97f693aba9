package scope

// Locate returns the index of the first edge in buf that satisfies spec.
//
// Positions 1..len(buf)-2 are scanned in order. A rising edge at i means
// buf[i-1] < level <= buf[i]; a falling edge means buf[i-1] > level >= buf[i].
// The second result is false for buffers shorter than 3 samples or when no
// position qualifies, in which case callers should draw from index 0.
func Locate(buf []float64, spec TriggerSpec) (int, bool) {
	if len(buf) < 3 {
		return 0, false
	}
	level := spec.Level
	switch spec.Slope {
	case Falling:
		for i := 1; i < len(buf)-1; i++ {
			if buf[i-1] > level && level >= buf[i] {
				return i, true
			}
		}
	default:
		for i := 1; i < len(buf)-1; i++ {
			if buf[i-1] < level && level <= buf[i] {
				return i, true
			}
		}
	}
	return 0, false
}
