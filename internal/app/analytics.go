package app

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hydration/internal/domain"
)

// Period selects the analytics window.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
)

// Days returns the window length, or 0 for an unknown period.
func (p Period) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period30d:
		return 30
	case Period90d:
		return 90
	}
	return 0
}

const (
	weeklyWindow  = 7
	monthlyWindow = 30
)

// DayAnalytics is one chronological entry of the daily series.
type DayAnalytics struct {
	Date                string `json:"date"`
	Intake              int    `json:"intake"`
	Goal                int    `json:"goal"`
	Percentage          int    `json:"percentage"`
	GoalMet             bool   `json:"goalMet"`
	Logs                int    `json:"logs"`
	HydrationPercentage int    `json:"hydrationPercentage"`
}

// Rollup summarises a trailing window of the daily series.
type Rollup struct {
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	Days               int    `json:"days"`
	TotalIntake        int    `json:"totalIntake"`
	AverageDailyIntake int    `json:"averageDailyIntake"`
	GoalsMetCount      int    `json:"goalsMetCount"`
	ConsistencyScore   int    `json:"consistencyScore"`
	PreferredBeverage  string `json:"preferredBeverage"`
	TotalLogs          int    `json:"totalLogs"`
	BestStreak         *int   `json:"bestStreak,omitempty"`
}

// DayStat names a day and its intake.
type DayStat struct {
	Date   string `json:"date"`
	Intake int    `json:"intake"`
}

// Insights are derived observations over the whole period.
type Insights struct {
	BestDay              *DayStat       `json:"bestDay"`
	WorstDay             *DayStat       `json:"worstDay"`
	AverageFirstLog      string         `json:"averageFirstLog"`
	AverageLastLog       string         `json:"averageLastLog"`
	MostActiveHour       *int           `json:"mostActiveHour"`
	BeverageDistribution map[string]int `json:"beverageDistribution"`
	Patterns             []string       `json:"patterns"`
}

// AdvancedAnalytics is the full analytics payload for a period.
type AdvancedAnalytics struct {
	Period    Period         `json:"period"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Daily     []DayAnalytics `json:"daily"`
	Weekly    Rollup         `json:"weekly"`
	Monthly   Rollup         `json:"monthly"`
	Insights  Insights       `json:"insights"`
}

// buildAnalytics aggregates the period's summaries and logs. Daily intake is
// recomputed from the logs; the goal of a day is its summary snapshot, else
// fallbackGoal.
func buildAnalytics(period Period, dates []string, summaries []domain.DailySummary, logs []domain.IntakeLog, fallbackGoal int, loc *time.Location) AdvancedAnalytics {
	goals := make(map[string]int, len(summaries))
	for _, s := range summaries {
		goals[s.Date] = s.GoalAmount
	}
	byDate := make(map[string][]domain.IntakeLog)
	for _, l := range logs {
		byDate[l.Date] = append(byDate[l.Date], l)
	}

	daily := make([]DayAnalytics, 0, len(dates))
	for _, date := range dates {
		goal, ok := goals[date]
		if !ok {
			goal = fallbackGoal
		}
		var intake int
		var effective float64
		for _, l := range byDate[date] {
			intake += l.AmountMl
			effective += l.EffectiveMl()
		}
		daily = append(daily, DayAnalytics{
			Date:                date,
			Intake:              intake,
			Goal:                goal,
			Percentage:          percent(float64(intake), float64(goal)),
			GoalMet:             goal > 0 && intake >= goal,
			Logs:                len(byDate[date]),
			HydrationPercentage: percent(effective, float64(intake)),
		})
	}

	out := AdvancedAnalytics{Period: period, Daily: daily}
	if len(dates) > 0 {
		out.StartDate = dates[0]
		out.EndDate = dates[len(dates)-1]
	}
	out.Weekly = rollup(trailing(daily, weeklyWindow), byDate, false)
	out.Monthly = rollup(trailing(daily, monthlyWindow), byDate, true)
	out.Insights = buildInsights(daily, logs, loc)
	out.Insights.Patterns = buildPatterns(daily, out.Monthly, out.Insights)
	return out
}

// percent returns round(part/whole*100), or 0 when whole is 0.
func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

func trailing(daily []DayAnalytics, n int) []DayAnalytics {
	if len(daily) <= n {
		return daily
	}
	return daily[len(daily)-n:]
}

// rollup divides averages by the number of days in the window, including
// days without any logs.
func rollup(days []DayAnalytics, byDate map[string][]domain.IntakeLog, withBestStreak bool) Rollup {
	r := Rollup{Days: len(days)}
	if len(days) == 0 {
		return r
	}
	r.StartDate = days[0].Date
	r.EndDate = days[len(days)-1].Date

	counts := map[string]int{}
	met := make([]bool, 0, len(days))
	for _, d := range days {
		r.TotalIntake += d.Intake
		r.TotalLogs += d.Logs
		if d.GoalMet {
			r.GoalsMetCount++
		}
		met = append(met, d.GoalMet)
		for _, l := range byDate[d.Date] {
			counts[l.BeverageType]++
		}
	}
	r.AverageDailyIntake = int(math.Round(float64(r.TotalIntake) / float64(len(days))))
	r.ConsistencyScore = percent(float64(r.GoalsMetCount), float64(len(days)))
	r.PreferredBeverage = mode(counts)
	if withBestStreak {
		best := domain.LongestRun(met)
		r.BestStreak = &best
	}
	return r
}

// mode returns the most frequent key, breaking ties alphabetically.
func mode(counts map[string]int) string {
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

func buildInsights(daily []DayAnalytics, logs []domain.IntakeLog, loc *time.Location) Insights {
	in := Insights{BeverageDistribution: map[string]int{}}

	for _, d := range daily {
		if d.Logs == 0 {
			continue
		}
		if in.BestDay == nil || d.Intake > in.BestDay.Intake {
			in.BestDay = &DayStat{Date: d.Date, Intake: d.Intake}
		}
		if in.WorstDay == nil || d.Intake < in.WorstDay.Intake {
			in.WorstDay = &DayStat{Date: d.Date, Intake: d.Intake}
		}
	}

	first := map[string]int{}
	last := map[string]int{}
	var hours [24]int
	counts := map[string]int{}
	for _, l := range logs {
		local := l.LoggedAt.In(loc)
		minute := local.Hour()*60 + local.Minute()
		if m, ok := first[l.Date]; !ok || minute < m {
			first[l.Date] = minute
		}
		if m, ok := last[l.Date]; !ok || minute > m {
			last[l.Date] = minute
		}
		hours[local.Hour()]++
		counts[l.BeverageType]++
	}
	in.AverageFirstLog = averageClock(first)
	in.AverageLastLog = averageClock(last)

	if len(logs) > 0 {
		busiest := 0
		for h := 1; h < len(hours); h++ {
			if hours[h] > hours[busiest] {
				busiest = h
			}
		}
		in.MostActiveHour = &busiest
	}
	in.BeverageDistribution = distribution(counts, len(logs))
	return in
}

// averageClock formats the mean minute-of-day as HH:mm, or "" when empty.
func averageClock(minutes map[string]int) string {
	if len(minutes) == 0 {
		return ""
	}
	sum := 0
	for _, m := range minutes {
		sum += m
	}
	avg := int(math.Round(float64(sum) / float64(len(minutes))))
	return fmt.Sprintf("%02d:%02d", avg/60, avg%60)
}

// distribution converts counts to integer percentages summing to 100 using
// the largest-remainder method.
func distribution(counts map[string]int, total int) map[string]int {
	out := make(map[string]int, len(counts))
	if total == 0 {
		return out
	}
	type share struct {
		key  string
		rem  float64
		base int
	}
	shares := make([]share, 0, len(counts))
	assigned := 0
	for k, n := range counts {
		exact := float64(n) * 100 / float64(total)
		base := int(math.Floor(exact))
		shares = append(shares, share{key: k, rem: exact - float64(base), base: base})
		assigned += base
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].rem != shares[j].rem {
			return shares[i].rem > shares[j].rem
		}
		return shares[i].key < shares[j].key
	})
	for i := 0; i < 100-assigned; i++ {
		shares[i%len(shares)].base++
	}
	for _, s := range shares {
		out[s.key] = s.base
	}
	return out
}

func buildPatterns(daily []DayAnalytics, monthly Rollup, in Insights) []string {
	patterns := []string{}

	var weekdaySum, weekdayN, weekendSum, weekendN int
	for _, d := range daily {
		if d.Logs == 0 {
			continue
		}
		t, err := domain.ParseDate(d.Date)
		if err != nil {
			continue
		}
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendSum += d.Intake
			weekendN++
		} else {
			weekdaySum += d.Intake
			weekdayN++
		}
	}
	if weekdayN > 0 && weekendN > 0 {
		weekday := float64(weekdaySum) / float64(weekdayN)
		weekend := float64(weekendSum) / float64(weekendN)
		switch {
		case weekday > weekend*1.1:
			patterns = append(patterns, fmt.Sprintf("You drink more on weekdays (%.0fml) than on weekends (%.0fml)", weekday, weekend))
		case weekend > weekday*1.1:
			patterns = append(patterns, fmt.Sprintf("You drink more on weekends (%.0fml) than on weekdays (%.0fml)", weekend, weekday))
		}
	}

	if monthly.Days > 0 {
		switch {
		case monthly.ConsistencyScore >= 80:
			patterns = append(patterns, fmt.Sprintf("Great consistency: you met your goal on %d%% of days", monthly.ConsistencyScore))
		case monthly.ConsistencyScore < 50 && monthly.TotalLogs > 0:
			patterns = append(patterns, fmt.Sprintf("You met your goal on %d%% of days; smaller, more frequent drinks can help", monthly.ConsistencyScore))
		}
	}

	if in.MostActiveHour != nil {
		switch h := *in.MostActiveHour; {
		case h < 12:
			patterns = append(patterns, "Most of your drinks are logged in the morning")
		case h >= 18:
			patterns = append(patterns, "Most of your drinks are logged in the evening; try spreading them through the day")
		default:
			patterns = append(patterns, "Most of your drinks are logged in the afternoon")
		}
	}
	return patterns
}
