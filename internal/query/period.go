package query

import "time"

// DefaultFilingLag is how long after quarter end 13F filings are due.
const DefaultFilingLag = 45 * 24 * time.Hour

// LatestReportPeriod returns the most recent calendar quarter end whose 13F
// filing deadline (quarter end + lag) is not after now.
func LatestReportPeriod(now time.Time, lag time.Duration) string {
	now = now.UTC()
	y, m := now.Year(), now.Month()

	// Quarter end at or before now.
	qm := time.Month(((int(m)-1)/3)*3) // last month of previous quarter
	end := quarterEnd(y, qm)

	for end.Add(lag).After(now) {
		end = quarterEnd(end.Year(), end.Month()-3)
	}
	return end.Format(PeriodLayout)
}

// quarterEnd returns the last day of month m in year y. m may be <= 0, in
// which case it rolls back into the previous year.
func quarterEnd(y int, m time.Month) time.Time {
	// Day 0 of the following month is the last day of m.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}
