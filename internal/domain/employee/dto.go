package employee

import (
	"strings"

	"github.com/clayfin/hr-records-go/internal/pkg/patch"
	"github.com/clayfin/hr-records-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     Role     `json:"role"`
	Title    string   `json:"title"`
	SkillSet []string `json:"skill_set,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Username = strings.TrimSpace(r.Username)

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.Role == "" {
		r.Role = RoleEmployee
	} else if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of HR, MANAGER, EMPLOYEE, ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Username    patch.Field[string]   `json:"username"`
	Email       patch.Field[string]   `json:"email"`
	Role        patch.Field[Role]     `json:"role"`
	Title       patch.Field[string]   `json:"title"`
	ReportingTo patch.Field[*string]  `json:"reporting_to"`
	SkillSet    patch.Field[[]string] `json:"skill_set"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Username.Set && !validator.IsValidUsername(r.Username.Value) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if r.Email.Set {
		r.Email.Value = strings.TrimSpace(strings.ToLower(r.Email.Value))
		if !validator.IsValidEmail(r.Email.Value) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email format",
			})
		}
	}

	if r.Role.Set && !r.Role.Value.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of HR, MANAGER, EMPLOYEE, ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetManagerRequest struct {
	ManagerID int64  `json:"manager_id"`
	Role      Role   `json:"role"`
	Title     string `json:"title"`
}

func (r *SetManagerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ManagerID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id is required",
		})
	}

	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of HR, MANAGER, EMPLOYEE, ADMIN",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSkillSetRequest struct {
	Skills []string `json:"skills"`
}

func (r *UpdateSkillSetRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Skills) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "skills",
			Message: "at least one skill is required",
		})
	}
	for _, s := range r.Skills {
		if validator.IsEmpty(s) {
			errs = append(errs, validator.ValidationError{
				Field:   "skills",
				Message: "skills must not be blank",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Title       string   `json:"title"`
	JoiningDate string   `json:"joining_date"`
	ManagerID   *int64   `json:"manager_id,omitempty"`
	ReportingTo *string  `json:"reporting_to,omitempty"`
	SkillSet    []string `json:"skill_set"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ========================================
// PROFILE DTOs
// ========================================

type CreateProfileRequest struct {
	FullName    string  `json:"full_name"`
	BirthDate   *string `json:"birth_date,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	ReportingTo *string `json:"reporting_to,omitempty"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	FullName    patch.Field[string]  `json:"full_name"`
	BirthDate   patch.Field[*string] `json:"birth_date"`
	Gender      patch.Field[*string] `json:"gender"`
	PhoneNumber patch.Field[*string] `json:"phone_number"`
	Address     patch.Field[*string] `json:"address"`
	ReportingTo patch.Field[*string] `json:"reporting_to"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName.Set && validator.IsEmpty(r.FullName.Value) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be blank",
		})
	}

	if r.BirthDate.Set && r.BirthDate.Value != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate.Value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID          int64   `json:"id"`
	EmployeeID  int64   `json:"employee_id"`
	FullName    string  `json:"full_name"`
	BirthDate   *string `json:"birth_date,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	ReportingTo *string `json:"reporting_to,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
