package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/models"
)

const dishSeparator = "<br/>"

// noDataCode is what NEIS answers instead of rows when nothing matches the
// query (e.g. no meal served on that date).
const noDataCode = "INFO-200"

type NeisClient interface {
	ResolveSchool(ctx context.Context, schoolName string) (models.SchoolIdentity, error)
	FetchMeal(ctx context.Context, identity models.SchoolIdentity, date time.Time) ([]string, error)
	FetchTimetable(ctx context.Context, identity models.SchoolIdentity, year, semester int, date time.Time, grade, classLabel string) ([]models.TimetablePeriod, error)
}

type neisClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  zerolog.Logger
}

func NewNeisClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) NeisClient {
	return &neisClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

type neisResult struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

type schoolRow struct {
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	SchoolName string `json:"SCHUL_NM"`
}

type mealRow struct {
	DishName string `json:"DDISH_NM"`
	Date     string `json:"MLSV_YMD"`
}

type timetableRow struct {
	Period  string `json:"PERIO"`
	Subject string `json:"ITRT_CNTNT"`
}

// Every NEIS dataset answers with the dataset name wrapping an array whose
// elements carry either "head" metadata or "row" data. A no-data answer has
// a top-level RESULT block instead.
type schoolInfoResponse struct {
	Result     *neisResult `json:"RESULT"`
	SchoolInfo []struct {
		Row []schoolRow `json:"row"`
	} `json:"schoolInfo"`
}

type mealResponse struct {
	Result              *neisResult `json:"RESULT"`
	MealServiceDietInfo []struct {
		Row []mealRow `json:"row"`
	} `json:"mealServiceDietInfo"`
}

type timetableResponse struct {
	Result       *neisResult `json:"RESULT"`
	HisTimetable []struct {
		Row []timetableRow `json:"row"`
	} `json:"hisTimetable"`
}

func (c *neisClient) ResolveSchool(ctx context.Context, schoolName string) (models.SchoolIdentity, error) {
	params := url.Values{}
	params.Set("SCHUL_NM", schoolName)

	var payload schoolInfoResponse
	if err := c.get(ctx, "schoolInfo", params, &payload); err != nil {
		return models.SchoolIdentity{}, fmt.Errorf("failed to look up school: %w", err)
	}

	if payload.Result != nil {
		return models.SchoolIdentity{}, fmt.Errorf("no school matching %q: %s (%s)",
			schoolName, payload.Result.Message, payload.Result.Code)
	}

	for _, part := range payload.SchoolInfo {
		if len(part.Row) > 0 {
			row := part.Row[0]
			return models.SchoolIdentity{
				OfficeCode: row.OfficeCode,
				SchoolCode: row.SchoolCode,
			}, nil
		}
	}

	return models.SchoolIdentity{}, fmt.Errorf("no school matching %q", schoolName)
}

func (c *neisClient) FetchMeal(ctx context.Context, identity models.SchoolIdentity, date time.Time) ([]string, error) {
	params := url.Values{}
	params.Set("ATPT_OFCDC_SC_CODE", identity.OfficeCode)
	params.Set("SD_SCHUL_CODE", identity.SchoolCode)
	params.Set("MLSV_YMD", date.Format("20060102"))

	var payload mealResponse
	if err := c.get(ctx, "mealServiceDietInfo", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch meal: %w", err)
	}

	if payload.Result != nil && payload.Result.Code == noDataCode {
		return []string{}, nil
	}
	if payload.Result != nil {
		return nil, fmt.Errorf("meal lookup failed: %s (%s)", payload.Result.Message, payload.Result.Code)
	}

	for _, part := range payload.MealServiceDietInfo {
		if len(part.Row) > 0 {
			return splitDishes(part.Row[0].DishName), nil
		}
	}

	return []string{}, nil
}

func (c *neisClient) FetchTimetable(ctx context.Context, identity models.SchoolIdentity, year, semester int, date time.Time, grade, classLabel string) ([]models.TimetablePeriod, error) {
	params := url.Values{}
	params.Set("ATPT_OFCDC_SC_CODE", identity.OfficeCode)
	params.Set("SD_SCHUL_CODE", identity.SchoolCode)
	params.Set("AY", strconv.Itoa(year))
	params.Set("SEM", strconv.Itoa(semester))
	params.Set("ALL_TI_YMD", date.Format("20060102"))
	params.Set("GRADE", grade)
	params.Set("CLASS_NM", classLabel)

	var payload timetableResponse
	if err := c.get(ctx, "hisTimetable", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch timetable: %w", err)
	}

	if payload.Result != nil && payload.Result.Code == noDataCode {
		return []models.TimetablePeriod{}, nil
	}
	if payload.Result != nil {
		return nil, fmt.Errorf("timetable lookup failed: %s (%s)", payload.Result.Message, payload.Result.Code)
	}

	periods := []models.TimetablePeriod{}
	for _, part := range payload.HisTimetable {
		for _, row := range part.Row {
			period, err := strconv.Atoi(strings.TrimSpace(row.Period))
			if err != nil {
				return nil, fmt.Errorf("failed to parse period %q: %w", row.Period, err)
			}
			periods = append(periods, models.TimetablePeriod{
				Period:  period,
				Subject: row.Subject,
			})
		}
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period < periods[j].Period
	})

	return periods, nil
}

// get issues one GET against a NEIS dataset. A fresh client is created per
// call; nothing is pooled or kept alive between requests.
func (c *neisClient) get(ctx context.Context, dataset string, params url.Values, dst interface{}) error {
	params.Set("KEY", c.apiKey)
	params.Set("Type", "json")

	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, dataset, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: c.timeout}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("neis returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// splitDishes turns the raw DDISH_NM field into trimmed dish names. The
// numeric allergen annotations stay embedded in each name.
func splitDishes(raw string) []string {
	parts := strings.Split(raw, dishSeparator)
	dishes := make([]string, 0, len(parts))
	for _, part := range parts {
		dishes = append(dishes, strings.TrimSpace(part))
	}
	return dishes
}
