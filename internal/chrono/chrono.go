package chrono

import "time"

var kst *time.Location

func init() {
	var err error
	kst, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// KST returns the fixed civil time zone every date/time value in the
// system is expressed in.
func KST() *time.Location {
	return kst
}

// Clock is the interface anything depending on wall-clock time should use.
type Clock interface {
	// Now returns the current time localized to Asia/Seoul.
	Now() time.Time
}

// StandardClock implements Clock using the system clock.
type StandardClock struct{}

func (StandardClock) Now() time.Time {
	return time.Now().In(kst)
}

var weekdayLabels = [...]string{"월", "화", "수", "목", "금", "토", "일"}

// WeekdayLabel returns the Korean single-character weekday label for t.
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[isoWeekdayIndex(t)]
}

// isoWeekdayIndex maps time.Weekday to the ISO offset (Monday = 0).
func isoWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekWeekdays returns the five calendar dates from Monday through Friday
// of the week containing now, at midnight in now's location.
func WeekWeekdays(now time.Time) [5]time.Time {
	monday := now.AddDate(0, 0, -isoWeekdayIndex(now))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())

	var days [5]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}
