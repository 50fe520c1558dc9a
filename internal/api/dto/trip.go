package dto

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/services"
	"commute-compensation-service/internal/session"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TripRequest is one form row, posted either as a form or as JSON.
type TripRequest struct {
	Date           string `json:"date" form:"date"`
	Technician     string `json:"technician" form:"technician"`
	MorningProject string `json:"morning_project" form:"morning_project"`
	EveningProject string `json:"evening_project" form:"evening_project"`
	Row            int    `json:"row" form:"row"`
}

// Bind satisfies render.Binder. Unknown names are not checked here; they
// surface as an incomplete entry when the trip is recorded.
func (t *TripRequest) Bind(r *http.Request) error {
	t.Date = strings.TrimSpace(t.Date)
	if t.Date == "" {
		return errors.New("date is required")
	}
	if _, err := domain.ParseDate(t.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %q", t.Date)
	}
	if t.Row < 0 || t.Row >= session.MaxDayRows {
		return fmt.Errorf("row must be between 0 and %d", session.MaxDayRows-1)
	}
	return nil
}

// ToService converts a bound request.
func (t *TripRequest) ToService() (services.TripRequest, error) {
	date, err := domain.ParseDate(t.Date)
	if err != nil {
		return services.TripRequest{}, err
	}
	return services.TripRequest{
		Date:           date,
		Technician:     t.Technician,
		MorningProject: t.MorningProject,
		EveningProject: t.EveningProject,
		Row:            t.Row,
	}, nil
}

type EntryResponse struct {
	Date              string   `json:"date"`
	Technician        string   `json:"technician"`
	MorningProject    string   `json:"morning_project"`
	EveningProject    string   `json:"evening_project"`
	MorningAddress    string   `json:"morning_address"`
	EveningAddress    string   `json:"evening_address"`
	MorningDistanceKm *float64 `json:"morning_distance_km"`
	EveningDistanceKm *float64 `json:"evening_distance_km"`
	CompensatedKm     float64  `json:"compensated_km"`
}

func NewEntryResponse(e domain.TripEntry) EntryResponse {
	return EntryResponse{
		Date:              e.Date.Format(time.DateOnly),
		Technician:        e.Technician,
		MorningProject:    e.MorningProject,
		EveningProject:    e.EveningProject,
		MorningAddress:    e.MorningAddress,
		EveningAddress:    e.EveningAddress,
		MorningDistanceKm: e.MorningDistanceKm,
		EveningDistanceKm: e.EveningDistanceKm,
		CompensatedKm:     e.CompensatedKm,
	}
}

type ListEntriesResponse struct {
	Entries            []EntryResponse `json:"entries"`
	TotalCompensatedKm float64         `json:"total_compensated_km"`
}

type CommitEntryResponse struct {
	Entry    EntryResponse `json:"entry"`
	Replaced bool          `json:"replaced"`
}
