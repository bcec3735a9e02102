package services

// TemperatureComfort maps a mean monthly temperature (°C) onto a [0,1]
// comfort figure via a piecewise linear curve peaking in the warm 22-30°C
// range and declining above it. A missing reading is neutral (0.5).
func TemperatureComfort(tempC *float64) float64 {
	if tempC == nil {
		return 0.5
	}

	t := *tempC
	switch {
	case t <= 18:
		return 0.2
	case t <= 22:
		return 0.2 + (t-18)*(0.6/4)
	case t <= 30:
		return 0.8 + (t-22)*(0.2/8)
	case t <= 34:
		return 1.0 - (t-30)*(0.4/4)
	default:
		return 0.4
	}
}

// RainPenalty converts monthly precipitation (mm) into a deduction,
// capped at 0.6 so even very wet destinations keep a residual score.
func RainPenalty(rainMM *float64) float64 {
	if rainMM == nil {
		return 0.0
	}
	p := (*rainMM / 60.0) * 0.15
	if p > 0.6 {
		return 0.6
	}
	return p
}

// ClimateSuitability combines the temperature comfort curve with the rain
// penalty, clamped to [0,1].
func ClimateSuitability(tempC, rainMM *float64) float64 {
	s := TemperatureComfort(tempC) - RainPenalty(rainMM)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
