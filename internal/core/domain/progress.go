package domain

import "math"

// CalculateDaoProgress returns the dossier completion percentage:
// the rounded average of progress over applicable tasks only, with a
// nil progress counting as 0, clamped to [0,100].
//
// A dossier with no applicable tasks has progress 0: nothing has been
// started, so nothing is done.
func CalculateDaoProgress(tasks []Task) int {
	sum := 0
	count := 0
	for _, t := range tasks {
		if !t.IsApplicable {
			continue
		}
		count++
		if t.Progress != nil {
			sum += clampProgress(*t.Progress)
		}
	}
	if count == 0 {
		return 0
	}
	return clampProgress(int(math.Round(float64(sum) / float64(count))))
}

// CalculateDaoStatus derives the traffic-light status of a dossier
// from its deadline and completion percentage, evaluated at today.
//
// Priority order:
//  1. progress 100 is completed whatever the date
//  2. deadline passed is urgent
//  3. 5 days or more ahead is safe
//  4. 3 days or fewer ahead is urgent
//  5. exactly 4 days ahead is the deadband between the two
func CalculateDaoStatus(dateDepot Date, progress int, today Date) DaoStatus {
	if progress >= 100 {
		return StatusCompleted
	}
	daysDiff := today.DaysUntil(dateDepot)
	switch {
	case daysDiff < 0:
		return StatusUrgent
	case daysDiff >= 5:
		return StatusSafe
	case daysDiff <= 3:
		return StatusUrgent
	default:
		return StatusDefault
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
