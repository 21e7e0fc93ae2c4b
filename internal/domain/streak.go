package domain

// StreakLookbackDays bounds how far back a current streak is searched.
// Older unbroken streaks are reported as this many days at most.
const StreakLookbackDays = 365

// CountStreak walks backward one calendar day at a time from end and counts
// how many consecutive days appear in goalMetDates. The first missing day
// stops the walk, so a missing end date yields 0.
func CountStreak(goalMetDates []string, end string) int {
	met := make(map[string]struct{}, len(goalMetDates))
	for _, d := range goalMetDates {
		met[d] = struct{}{}
	}
	d, err := ParseDate(end)
	if err != nil {
		return 0
	}
	count := 0
	for count < len(met) {
		if _, ok := met[d.Format(DateLayout)]; !ok {
			break
		}
		count++
		d = d.AddDate(0, 0, -1)
	}
	return count
}

// LongestRun returns the length of the longest run of consecutive true values.
func LongestRun(days []bool) int {
	best, cur := 0, 0
	for _, ok := range days {
		if !ok {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}
