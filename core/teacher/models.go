package teacher

import (
	"time"

	"github.com/billycuesta/nurayoga/core"
)

// Teacher runs classes. Classes reference a teacher by name only (a weak
// reference); uniqueness of names is a convention, not enforced by the store.
type Teacher struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Specialties []string  `json:"specialties"`
	Bio         string    `json:"bio,omitempty"`
	IsActive    bool      `json:"is_active"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (t *Teacher) HasContactInfo() bool {
	return t.Email != "" || t.Phone != ""
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"omitempty,esphone"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio" validate:"omitempty,max=500"`
	HourlyRate  float64  `json:"hourly_rate" validate:"omitempty,gte=0,lte=1000"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Bio = core.CleanString(nt.Bio)
	cleanSpecialties(nt.Specialties)
	return core.Validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
type UpdateTeacher struct {
	Name        string   `json:"name" validate:"omitempty,max=100"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"omitempty,esphone"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio" validate:"omitempty,max=500"`
	IsActive    *bool    `json:"is_active"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

func (ut *UpdateTeacher) Validate(origTchr Teacher) error {
	name := core.CleanString(ut.Name)
	if name != "" {
		ut.Name = name
	} else {
		ut.Name = origTchr.Name
	}

	email := core.CleanString(ut.Email, true /* lower */)
	if email != "" {
		ut.Email = email
	} else {
		ut.Email = origTchr.Email
	}

	phone := core.CleanString(ut.Phone)
	if phone != "" {
		ut.Phone = phone
	} else {
		ut.Phone = origTchr.Phone
	}

	if ut.Bio = core.CleanString(ut.Bio); ut.Bio == "" {
		ut.Bio = origTchr.Bio
	}
	if ut.Specialties == nil {
		ut.Specialties = origTchr.Specialties
	} else {
		cleanSpecialties(ut.Specialties)
	}
	if ut.HourlyRate != nil && (*ut.HourlyRate < 0 || *ut.HourlyRate > 1000) {
		return core.NewValidationError(nil, core.FieldError{Field: "hourly_rate", Error: "must be between 0 and 1000"})
	}

	return core.Validate.Struct(ut)
}

func cleanSpecialties(specialties []string) {
	for i, s := range specialties {
		specialties[i] = core.CleanString(s)
	}
}
