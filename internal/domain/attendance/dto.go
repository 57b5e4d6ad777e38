package attendance

import (
	"time"

	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/patch"
	"github.com/clayfin/hr-records-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ========================================
// ATTENDANCE DTOs
// ========================================

type RegularizeRequest struct {
	Date     string           `json:"date"`
	FromTime *clock.TimeOfDay `json:"from_time"`
	ToTime   *clock.TimeOfDay `json:"to_time"`
}

func (r *RegularizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.FromTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "from_time",
			Message: "from_time is required",
		})
	}

	if r.ToTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "to_time",
			Message: "to_time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is a partial update. A check_out of null reopens the row.
type UpdateAttendanceRequest struct {
	Date      patch.Field[string]           `json:"date"`
	CheckIn   patch.Field[clock.TimeOfDay]  `json:"check_in"`
	CheckOut  patch.Field[*clock.TimeOfDay] `json:"check_out"`
	SpentTime patch.Field[string]           `json:"spent_time"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date.Set {
		if _, ok := validator.IsValidDate(r.Date.Value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.SpentTime.Set {
		if _, err := clock.ParseDuration(r.SpentTime.Value); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "spent_time",
				Message: "spent_time must be in HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites the fields present in the request. Validate must have passed.
func (r UpdateAttendanceRequest) Apply(a *Attendance) {
	if r.Date.Set {
		date, _ := time.Parse(dateLayout, r.Date.Value)
		a.Date = date
	}
	r.CheckIn.Apply(&a.CheckIn)
	r.CheckOut.Apply(&a.CheckOut)
	if r.SpentTime.Set {
		spent, _ := clock.ParseDuration(r.SpentTime.Value)
		a.SpentTime = spent
	}
}

type MonthlyAttendanceRequest struct {
	EmployeeID int64 `json:"employee_id"`
	Month      int   `json:"month"`
	Year       int   `json:"year"`
}

func (r *MonthlyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	Date         string  `json:"date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	SpentTime    string  `json:"spent_time"`
	SpentMinutes int64   `json:"spent_minutes"`
	CheckedIn    bool    `json:"checked_in"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format(dateLayout),
		CheckIn:      a.CheckIn.String(),
		SpentTime:    clock.FormatDuration(a.SpentTime),
		SpentMinutes: int64(a.SpentTime / time.Minute),
		CheckedIn:    a.IsOpen(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CheckOut != nil {
		checkOut := a.CheckOut.String()
		resp.CheckOut = &checkOut
	}
	return resp
}

func NewAttendanceResponses(rows []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, NewAttendanceResponse(row))
	}
	return responses
}

type DayAttendanceResponse struct {
	Date         string          `json:"date"`
	EmployeeID   int64           `json:"employee_id"`
	Sessions     int             `json:"sessions"`
	OpenSessions int             `json:"open_sessions"`
	FirstCheckIn *string         `json:"first_check_in"`
	LastCheckOut *string         `json:"last_check_out"`
	TotalTime    string          `json:"total_time"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	Present      bool            `json:"present"`
}

func NewDayAttendanceResponse(d DayAttendance) DayAttendanceResponse {
	resp := DayAttendanceResponse{
		Date:         d.Date.Format(dateLayout),
		EmployeeID:   d.EmployeeID,
		Sessions:     d.Sessions,
		OpenSessions: d.OpenSessions,
		TotalTime:    clock.FormatDuration(d.TotalTime),
		TotalHours:   d.Hours(),
		Present:      d.Present(),
	}
	if d.FirstCheckIn != nil {
		s := d.FirstCheckIn.String()
		resp.FirstCheckIn = &s
	}
	if d.LastCheckOut != nil {
		s := d.LastCheckOut.String()
		resp.LastCheckOut = &s
	}
	return resp
}

type MonthlyAttendanceResponse struct {
	EmployeeID  int64                   `json:"employee_id"`
	Month       int                     `json:"month"`
	Year        int                     `json:"year"`
	Days        []DayAttendanceResponse `json:"days"`
	PresentDays int                     `json:"present_days"`
	TotalTime   string                  `json:"total_time"`
	TotalHours  decimal.Decimal         `json:"total_hours"`
}
