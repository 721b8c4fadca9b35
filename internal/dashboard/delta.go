package dashboard

// RevenueDelta is the percent change between two period totals. With no
// previous revenue the delta is 100 when anything was earned and 0 otherwise.
func RevenueDelta(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return ((current - previous) / previous) * 100
}
