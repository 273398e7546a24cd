package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/chrono"
	"github.com/schooldesk/neis-dashboard/internal/config"
	"github.com/schooldesk/neis-dashboard/internal/models"
	"github.com/schooldesk/neis-dashboard/internal/service/integration"
)

const dateLayout = "2006-01-02"

type DashboardService interface {
	TodayView(ctx context.Context) *models.TodayView
	WeekView(ctx context.Context) *models.WeekView
}

type dashboardService struct {
	neis     integration.NeisClient
	identity models.SchoolIdentity
	grade    string
	classNM  string
	semester int
	clock    chrono.Clock
	logger   zerolog.Logger
}

func NewDashboardService(
	neis integration.NeisClient,
	identity models.SchoolIdentity,
	cfg config.NeisConfig,
	clock chrono.Clock,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		neis:     neis,
		identity: identity,
		grade:    cfg.Grade,
		classNM:  cfg.ClassNM,
		semester: cfg.Semester,
		clock:    clock,
		logger:   logger,
	}
}

func (s *dashboardService) TodayView(ctx context.Context) *models.TodayView {
	now := s.clock.Now()
	current, next := chrono.CurrentAndNextPeriod(now)

	return &models.TodayView{
		Date:          now.Format(dateLayout),
		Weekday:       chrono.WeekdayLabel(now),
		Meal:          s.mealFor(ctx, now),
		Timetable:     s.timetableFor(ctx, now),
		CurrentPeriod: current,
		NextPeriod:    next,
	}
}

// WeekView fetches the five weekdays concurrently. Each day degrades to an
// empty result on its own; one bad day never affects the others.
func (s *dashboardService) WeekView(ctx context.Context) *models.WeekView {
	days := chrono.WeekWeekdays(s.clock.Now())

	meals := make([]models.MealDay, len(days))
	timetables := make([]models.TimetableDay, len(days))

	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func(i int, day time.Time) {
			defer wg.Done()

			date := day.Format(dateLayout)
			weekday := chrono.WeekdayLabel(day)

			meals[i] = models.MealDay{
				Date:    date,
				Weekday: weekday,
				Dishes:  s.mealFor(ctx, day),
			}
			timetables[i] = models.TimetableDay{
				Date:    date,
				Weekday: weekday,
				Periods: s.timetableFor(ctx, day),
			}
		}(i, day)
	}
	wg.Wait()

	return &models.WeekView{
		Meals:      meals,
		Timetables: timetables,
	}
}

// mealFor degrades to an empty dish list on any failure; the dashboard must
// render even when NEIS is down.
func (s *dashboardService) mealFor(ctx context.Context, day time.Time) []string {
	dishes, err := s.neis.FetchMeal(ctx, s.identity, day)
	if err != nil {
		s.logger.Error().Err(err).
			Str("date", day.Format(dateLayout)).
			Msg("Failed to fetch meal")
		return []string{}
	}
	if dishes == nil {
		dishes = []string{}
	}
	return dishes
}

func (s *dashboardService) timetableFor(ctx context.Context, day time.Time) []models.TimetablePeriod {
	periods, err := s.neis.FetchTimetable(ctx, s.identity, day.Year(), s.semester, day, s.grade, s.classNM)
	if err != nil {
		s.logger.Error().Err(err).
			Str("date", day.Format(dateLayout)).
			Msg("Failed to fetch timetable")
		return []models.TimetablePeriod{}
	}
	if periods == nil {
		periods = []models.TimetablePeriod{}
	}
	return periods
}
