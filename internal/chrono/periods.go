package chrono

import "time"

// PeriodWindow is one fixed class-time slot of the school day. Start and
// End are minutes since midnight; the window is inclusive on both ends.
type PeriodWindow struct {
	Period int
	Start  int
	End    int
}

// PeriodWindows is the fixed bell schedule. It is not sourced from NEIS.
var PeriodWindows = []PeriodWindow{
	{Period: 1, Start: 8*60 + 40, End: 9*60 + 30},
	{Period: 2, Start: 9*60 + 40, End: 10*60 + 30},
	{Period: 3, Start: 10*60 + 40, End: 11*60 + 30},
	{Period: 4, Start: 11*60 + 40, End: 12*60 + 30},
	{Period: 5, Start: 13*60 + 30, End: 14*60 + 20},
	{Period: 6, Start: 14*60 + 30, End: 15*60 + 20},
	{Period: 7, Start: 15*60 + 30, End: 16*60 + 20},
}

// CurrentAndNextPeriod reports which period now falls in and which one
// follows it. Either result may be nil: before first period only next is
// set, between periods only next is set, after the last period both are nil.
func CurrentAndNextPeriod(now time.Time) (current, next *int) {
	m := now.Hour()*60 + now.Minute()

	for i, w := range PeriodWindows {
		if w.Start <= m && m <= w.End {
			p := w.Period
			if i+1 < len(PeriodWindows) {
				n := PeriodWindows[i+1].Period
				return &p, &n
			}
			return &p, nil
		}

		if m < w.Start {
			n := w.Period
			return nil, &n
		}
	}

	return nil, nil
}
