package maganghub

import "math"

// Odds estimates the acceptance likelihood for a vacancy as a percentage.
// With no applicants yet, any open quota means a certain slot; no quota
// means no chance. Otherwise quota/applicants, capped at 100.
func Odds(quota, applicants int) float64 {
	if applicants == 0 {
		if quota > 0 {
			return 100.0
		}
		return 0.0
	}
	return math.Min(float64(quota)/float64(applicants)*100, 100.0)
}

// Round2 rounds to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
