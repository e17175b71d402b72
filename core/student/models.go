package student

import (
	"time"

	"github.com/billycuesta/nurayoga/core"
)

// Student is a studio member. Payments maps a "YYYY-MM" month key to the
// moment dues were settled; a nil entry means the month was initialized by
// rollover but is still unpaid. Keys are never removed once created.
type Student struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email,omitempty"`
	Phone       string                `json:"phone,omitempty"`
	EnrolledAt  time.Time             `json:"enrolled_at"`            // UTC
	WithdrawnAt *time.Time            `json:"withdrawn_at,omitempty"` // UTC
	Payments    map[string]*time.Time `json:"payments"`
	CreatedAt   time.Time             `json:"created_at"` // UTC
	UpdatedAt   time.Time             `json:"updated_at"` // UTC
}

// IsActive reports whether the student has not withdrawn as of `at`.
func (s *Student) IsActive(at time.Time) bool {
	return s.WithdrawnAt == nil || s.WithdrawnAt.After(at)
}

// PaymentFor returns the payment timestamp for a month key; nil when the
// month is unpaid or was never initialized.
func (s *Student) PaymentFor(monthKey string) *time.Time {
	return s.Payments[monthKey]
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name       string    `json:"name" validate:"required,max=100"`
	Email      string    `json:"email" validate:"omitempty,email"`
	Phone      string    `json:"phone" validate:"omitempty,esphone"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name        string     `json:"name" validate:"omitempty,max=100"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone" validate:"omitempty,esphone"`
	WithdrawnAt *time.Time `json:"withdrawn_at"`
}

func (us *UpdateStudent) Validate(origStd Student) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = origStd.Name
	}

	email := core.CleanString(us.Email, true /* lower */)
	if email != "" {
		us.Email = email
	} else {
		us.Email = origStd.Email
	}

	phone := core.CleanString(us.Phone)
	if phone != "" {
		us.Phone = phone
	} else {
		us.Phone = origStd.Phone
	}

	return core.Validate.Struct(us)
}
