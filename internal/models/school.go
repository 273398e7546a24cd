package models

// SchoolIdentity is the NEIS institutional code pair addressing one school.
// It is resolved once at startup and treated as read-only afterwards.
type SchoolIdentity struct {
	OfficeCode string `json:"office_code"`
	SchoolCode string `json:"school_code"`
}

type TimetablePeriod struct {
	Period  int    `json:"period"`
	Subject string `json:"subject"`
}

type MealDay struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Dishes  []string `json:"dishes"`
}

type TimetableDay struct {
	Date    string            `json:"date"`
	Weekday string            `json:"weekday"`
	Periods []TimetablePeriod `json:"periods"`
}

type TodayView struct {
	Date          string            `json:"date"`
	Weekday       string            `json:"weekday"`
	Meal          []string          `json:"meal"`
	Timetable     []TimetablePeriod `json:"timetable"`
	CurrentPeriod *int              `json:"current_period,omitempty"`
	NextPeriod    *int              `json:"next_period,omitempty"`
}

type WeekView struct {
	Meals      []MealDay      `json:"meals"`
	Timetables []TimetableDay `json:"timetables"`
}
