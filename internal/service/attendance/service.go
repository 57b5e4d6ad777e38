package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/clayfin/hr-records-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Policy holds the tunable attendance rules.
type Policy struct {
	// HalfDayCredit is added to the first check-in of a day when an
	// attendance is closed on a later date.
	HalfDayCredit       time.Duration
	MaxRegularizeWindow time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		HalfDayCredit:       4 * time.Hour,
		MaxRegularizeWindow: 2 * time.Hour,
	}
}

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
	policy         Policy
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	policy Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
		policy:         policy,
	}
}

func (s *AttendanceServiceImpl) ensureEmployee(ctx context.Context, employeeID int64) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	return nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		latest, err := s.attendanceRepo.GetLatestByEmployeeID(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get latest attendance: %w", err)
		}
		if latest != nil && latest.IsOpen() {
			return attendance.ErrCheckOutFirst
		}

		now := s.clock.Now()
		created, err = s.attendanceRepo.Create(txCtx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       clock.DateOf(now),
			CheckIn:    clock.TimeOfDayOf(now),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, attendance.ErrCheckOutFirst) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutFirst
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("attendance checked in", "employee_id", employeeID, "attendance_id", created.ID, "check_in", created.CheckIn.String())
	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		latest, err := s.attendanceRepo.GetLatestByEmployeeID(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get latest attendance: %w", err)
		}
		if latest == nil || !latest.IsOpen() {
			return attendance.ErrCheckInFirst
		}

		open := *latest
		now := s.clock.Now()
		if clock.DateOf(now).Equal(open.Date) {
			checkOut := clock.TimeOfDayOf(now)
			open.CheckOut = &checkOut
			open.SpentTime = clock.Elapsed(open.CheckIn, checkOut)
		} else if err := s.applyHalfDay(txCtx, &open); err != nil {
			return err
		}

		updated, err = s.attendanceRepo.Update(txCtx, open)
		return err
	})
	if err != nil {
		if errors.Is(err, attendance.ErrCheckInFirst) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckInFirst
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("attendance checked out",
		"employee_id", employeeID,
		"attendance_id", updated.ID,
		"check_out", updated.CheckOut.String(),
		"spent", clock.FormatDuration(updated.SpentTime),
	)
	return attendance.NewAttendanceResponse(updated), nil
}

// applyHalfDay closes a row left open on an earlier date. The check-out is
// anchored to the first check-in of that date plus the half-day credit, and
// never lands before the row's own check-in.
func (s *AttendanceServiceImpl) applyHalfDay(ctx context.Context, open *attendance.Attendance) error {
	rows, err := s.attendanceRepo.ListByEmployeeAndDate(ctx, open.EmployeeID, open.Date)
	if err != nil {
		return fmt.Errorf("failed to get attendances of %s: %w", open.Date.Format(dateLayout), err)
	}

	anchor := open.CheckIn
	if len(rows) > 0 {
		anchor = rows[0].CheckIn
	}

	checkOut := open.CheckIn
	if credited := time.Duration(anchor) + s.policy.HalfDayCredit; credited > time.Duration(open.CheckIn) {
		checkOut = anchor.Add(s.policy.HalfDayCredit)
	}

	open.CheckOut = &checkOut
	open.SpentTime = clock.Elapsed(open.CheckIn, checkOut)
	return nil
}

// Regularize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Regularize(ctx context.Context, employeeID int64, req attendance.RegularizeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	from, to := *req.FromTime, *req.ToTime
	if !from.Before(to) || clock.Elapsed(from, to) > s.policy.MaxRegularizeWindow {
		return attendance.AttendanceResponse{}, attendance.ErrNotRegularizable
	}

	date, _ := time.Parse(dateLayout, req.Date)
	rows, err := s.attendanceRepo.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendances of %s: %w", req.Date, err)
	}
	if len(rows) == 0 {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	if err := attendance.CheckWindowFree(rows, from, to); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    from,
		CheckOut:   &to,
		SpentTime:  clock.Elapsed(from, to),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create regularized attendance: %w", err)
	}

	slog.Info("attendance regularized",
		"employee_id", employeeID,
		"attendance_id", created.ID,
		"date", req.Date,
		"from", from.String(),
		"to", to.String(),
	)
	return attendance.NewAttendanceResponse(created), nil
}

// GetAttendanceByMonthAndEmployeeID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByMonthAndEmployeeID(ctx context.Context, req attendance.MonthlyAttendanceRequest) (attendance.MonthlyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	month := time.Month(req.Month)
	days := clock.DaysInMonth(month, req.Year)
	first := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, days-1)

	rows, err := s.attendanceRepo.ListByEmployeeAndDateRange(ctx, req.EmployeeID, first, last)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, fmt.Errorf("failed to get attendances of %d-%02d: %w", req.Year, req.Month, err)
	}

	byDate := make(map[string][]attendance.Attendance)
	for _, row := range rows {
		key := row.Date.Format(dateLayout)
		byDate[key] = append(byDate[key], row)
	}

	resp := attendance.MonthlyAttendanceResponse{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Days:       make([]attendance.DayAttendanceResponse, 0, days),
		TotalHours: decimal.Zero,
	}

	var total time.Duration
	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i)
		summary := attendance.SummarizeDay(req.EmployeeID, date, byDate[date.Format(dateLayout)])
		if summary.Present() {
			resp.PresentDays++
		}
		total += summary.TotalTime
		resp.Days = append(resp.Days, attendance.NewDayAttendanceResponse(summary))
	}
	resp.TotalTime = clock.FormatDuration(total)
	resp.TotalHours = attendance.DayAttendance{TotalTime: total}.Hours()

	return resp, nil
}

// GetDaySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDaySummary(ctx context.Context, employeeID int64, date string) (attendance.DayAttendanceResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return attendance.DayAttendanceResponse{}, err
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.DayAttendanceResponse{}, err
	}

	rows, err := s.attendanceRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.DayAttendanceResponse{}, fmt.Errorf("failed to get attendances of %s: %w", date, err)
	}

	return attendance.NewDayAttendanceResponse(attendance.SummarizeDay(employeeID, day, rows)), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id int64, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	req.Apply(&existing)

	updated, err := s.attendanceRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) || errors.Is(err, attendance.ErrCheckOutFirst) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("attendance updated", "attendance_id", id, "employee_id", updated.EmployeeID)
	return attendance.NewAttendanceResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	existing, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted", "attendance_id", id, "employee_id", existing.EmployeeID)
	return attendance.NewAttendanceResponse(existing), nil
}

// GetAttendanceByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByID(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(att), nil
}

// GetAttendanceByDateAndEmployeeID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByDateAndEmployeeID(ctx context.Context, employeeID int64, date string) ([]attendance.AttendanceResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.listDay(ctx, employeeID, day)
}

// GetAttendanceByEmployeeID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceByEmployeeID(ctx context.Context, employeeID int64) ([]attendance.AttendanceResponse, error) {
	return s.listDay(ctx, employeeID, clock.Today(s.clock))
}

func (s *AttendanceServiceImpl) listDay(ctx context.Context, employeeID int64, day time.Time) ([]attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.attendanceRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances of %s: %w", day.Format(dateLayout), err)
	}
	if len(rows) == 0 {
		return nil, attendance.ErrAttendanceNotFound
	}
	return attendance.NewAttendanceResponses(rows), nil
}

// CloseStaleAttendances implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CloseStaleAttendances(ctx context.Context) (int, error) {
	stale, err := s.attendanceRepo.ListOpenBefore(ctx, clock.Today(s.clock))
	if err != nil {
		return 0, fmt.Errorf("failed to list stale attendances: %w", err)
	}

	closed := 0
	for _, row := range stale {
		if err := s.applyHalfDay(ctx, &row); err != nil {
			return closed, err
		}
		if _, err := s.attendanceRepo.Update(ctx, row); err != nil {
			return closed, fmt.Errorf("failed to close attendance %d: %w", row.ID, err)
		}
		closed++
		slog.Info("stale attendance closed", "attendance_id", row.ID, "employee_id", row.EmployeeID, "date", row.Date.Format(dateLayout))
	}

	return closed, nil
}

func parseDate(date string) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return day, nil
}
