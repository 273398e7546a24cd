package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/schooldesk/neis-dashboard/internal/chrono"
	"github.com/schooldesk/neis-dashboard/internal/config"
	"github.com/schooldesk/neis-dashboard/internal/models"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeNeisClient struct {
	meal      func(date time.Time) ([]string, error)
	timetable func(date time.Time) ([]models.TimetablePeriod, error)
}

func (f *fakeNeisClient) ResolveSchool(ctx context.Context, schoolName string) (models.SchoolIdentity, error) {
	return models.SchoolIdentity{OfficeCode: "B10", SchoolCode: "7010084"}, nil
}

func (f *fakeNeisClient) FetchMeal(ctx context.Context, identity models.SchoolIdentity, date time.Time) ([]string, error) {
	return f.meal(date)
}

func (f *fakeNeisClient) FetchTimetable(ctx context.Context, identity models.SchoolIdentity, year, semester int, date time.Time, grade, classLabel string) ([]models.TimetablePeriod, error) {
	return f.timetable(date)
}

func neisTestConfig() config.NeisConfig {
	return config.NeisConfig{Grade: "2", ClassNM: "3", Semester: 1}
}

func newDashboardService(neis *fakeNeisClient, now time.Time) DashboardService {
	return NewDashboardService(
		neis,
		models.SchoolIdentity{OfficeCode: "B10", SchoolCode: "7010084"},
		neisTestConfig(),
		fixedClock{now: now},
		zerolog.Nop(),
	)
}

func TestTodayView(t *testing.T) {
	// Wednesday 08:45, first period in progress.
	now := time.Date(2025, 9, 3, 8, 45, 0, 0, chrono.KST())

	neis := &fakeNeisClient{
		meal: func(date time.Time) ([]string, error) {
			return []string{"밥", "국"}, nil
		},
		timetable: func(date time.Time) ([]models.TimetablePeriod, error) {
			return []models.TimetablePeriod{{Period: 1, Subject: "국어"}}, nil
		},
	}

	view := newDashboardService(neis, now).TodayView(context.Background())

	assert.Equal(t, "2025-09-03", view.Date)
	assert.Equal(t, "수", view.Weekday)
	assert.Equal(t, []string{"밥", "국"}, view.Meal)
	assert.Equal(t, []models.TimetablePeriod{{Period: 1, Subject: "국어"}}, view.Timetable)
	if assert.NotNil(t, view.CurrentPeriod) {
		assert.Equal(t, 1, *view.CurrentPeriod)
	}
	if assert.NotNil(t, view.NextPeriod) {
		assert.Equal(t, 2, *view.NextPeriod)
	}
}

func TestTodayViewDegradesToEmpty(t *testing.T) {
	now := time.Date(2025, 9, 3, 8, 45, 0, 0, chrono.KST())

	neis := &fakeNeisClient{
		meal: func(date time.Time) ([]string, error) {
			return nil, errors.New("neis unreachable")
		},
		timetable: func(date time.Time) ([]models.TimetablePeriod, error) {
			return nil, errors.New("neis unreachable")
		},
	}

	view := newDashboardService(neis, now).TodayView(context.Background())

	assert.NotNil(t, view.Meal)
	assert.Empty(t, view.Meal)
	assert.NotNil(t, view.Timetable)
	assert.Empty(t, view.Timetable)
}

func TestWeekView(t *testing.T) {
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, chrono.KST())

	neis := &fakeNeisClient{
		meal: func(date time.Time) ([]string, error) {
			return []string{"급식 " + date.Format("01-02")}, nil
		},
		timetable: func(date time.Time) ([]models.TimetablePeriod, error) {
			return []models.TimetablePeriod{{Period: 1, Subject: "국어"}}, nil
		},
	}

	week := newDashboardService(neis, now).WeekView(context.Background())

	assert.Len(t, week.Meals, 5)
	assert.Len(t, week.Timetables, 5)

	dates := []string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05"}
	weekdays := []string{"월", "화", "수", "목", "금"}
	for i, meal := range week.Meals {
		assert.Equal(t, dates[i], meal.Date)
		assert.Equal(t, weekdays[i], meal.Weekday)
		assert.Equal(t, []string{"급식 " + meal.Date[5:]}, meal.Dishes)
		assert.Equal(t, dates[i], week.Timetables[i].Date)
	}
}

func TestWeekViewDayFailureIsolated(t *testing.T) {
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, chrono.KST())
	badDay := "2025-09-03"

	neis := &fakeNeisClient{
		meal: func(date time.Time) ([]string, error) {
			if date.Format("2006-01-02") == badDay {
				return nil, errors.New("neis unreachable")
			}
			return []string{"밥"}, nil
		},
		timetable: func(date time.Time) ([]models.TimetablePeriod, error) {
			if date.Format("2006-01-02") == badDay {
				return nil, errors.New("neis unreachable")
			}
			return []models.TimetablePeriod{{Period: 1, Subject: "국어"}}, nil
		},
	}

	week := newDashboardService(neis, now).WeekView(context.Background())

	for i, meal := range week.Meals {
		timetable := week.Timetables[i]
		if meal.Date == badDay {
			assert.Empty(t, meal.Dishes)
			assert.Empty(t, timetable.Periods)
		} else {
			assert.Equal(t, []string{"밥"}, meal.Dishes)
			assert.Len(t, timetable.Periods, 1)
		}
	}
}

func TestWeekViewEmptyRowsAreNotErrors(t *testing.T) {
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, chrono.KST())

	neis := &fakeNeisClient{
		meal: func(date time.Time) ([]string, error) {
			return []string{}, nil
		},
		timetable: func(date time.Time) ([]models.TimetablePeriod, error) {
			return []models.TimetablePeriod{}, nil
		},
	}

	week := newDashboardService(neis, now).WeekView(context.Background())

	for i := range week.Meals {
		assert.NotNil(t, week.Meals[i].Dishes)
		assert.NotNil(t, week.Timetables[i].Periods)
	}
}
