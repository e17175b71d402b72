package class

import (
	"errors"
	"strings"
	"time"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/enrollment"
)

// Kinds
const (
	KindRecurring Kind = "recurring"
	KindOneOff    Kind = "one-off"
)

type Kind string

// Class is either a recurring template (repeats weekly on Day) or a one-off
// instance (occurs once on Date), discriminated by Kind. Day and Date are
// mutually exclusive.
type Class struct {
	ID        int       `json:"id"`
	Kind      Kind      `json:"type"`
	Name      string    `json:"name"`
	Teacher   string    `json:"teacher"`
	Capacity  int       `json:"capacity"`
	Time      string    `json:"time"`           // HH:MM
	Day       int       `json:"day,omitempty"`  // 1=Monday .. 7=Sunday
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`     // UTC
	UpdatedAt time.Time `json:"updated_at"`     // UTC
}

// Weekday returns the ISO weekday (1=Monday..7=Sunday) the class occurs on.
func (c *Class) Weekday() int {
	if c.Kind == KindRecurring {
		return c.Day
	}
	return WeekdayOf(c.Date)
}

// Ref returns the enrollment-side reference for this class.
func (c *Class) Ref() enrollment.ClassRef {
	if c.Kind == KindRecurring {
		return enrollment.ClassRef{TemplateID: c.ID, Capacity: c.Capacity}
	}
	return enrollment.ClassRef{OneOffClassID: c.ID, Date: c.Date, Capacity: c.Capacity}
}

// IsExpress reports whether the class is the discounted express variant.
func (c *Class) IsExpress() bool {
	return strings.Contains(strings.ToLower(c.Name), "express")
}

// WeekdayOf returns the ISO weekday of a YYYY-MM-DD date, or 0 when the
// date cannot be parsed.
func WeekdayOf(date string) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	wd := int(d.Weekday())
	if wd == 0 { // time.Sunday
		wd = 7
	}
	return wd
}

// for tests
var nowFunc = time.Now

var (
	errDayRequired  = errors.New("a recurring class requires a weekday")
	errDateRequired = errors.New("a one-off class requires a date")
	errDateInPast   = errors.New("the date cannot be in the past")
)

// NewClass contains information needed to create a new Class of either kind.
type NewClass struct {
	Kind     Kind   `json:"type" validate:"required,oneof=recurring one-off"`
	Name     string `json:"name" validate:"required,max=100"`
	Teacher  string `json:"teacher" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=50"`
	Time     string `json:"time" validate:"required,timefmt"`
	Day      int    `json:"day" validate:"omitempty,min=1,max=7"`
	Date     string `json:"date" validate:"omitempty,dateymd"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Teacher = core.CleanString(nc.Teacher)
	nc.Time = core.CleanString(nc.Time)
	nc.Date = core.CleanString(nc.Date)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return validateKindFields(nc.Kind, nc.Day, nc.Date, true /* creating */)
}

// UpdateClass defines what information may be provided to modify an existing
// Class; its Kind cannot change.
type UpdateClass struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Teacher  string `json:"teacher" validate:"omitempty,max=100"`
	Capacity int    `json:"capacity" validate:"omitempty,min=1,max=50"`
	Time     string `json:"time" validate:"omitempty,timefmt"`
	Day      int    `json:"day" validate:"omitempty,min=1,max=7"`
	Date     string `json:"date" validate:"omitempty,dateymd"`
}

func (uc *UpdateClass) Validate(origCls Class) error {
	name := core.CleanString(uc.Name)
	if name != "" {
		uc.Name = name
	} else {
		uc.Name = origCls.Name
	}

	tchr := core.CleanString(uc.Teacher)
	if tchr != "" {
		uc.Teacher = tchr
	} else {
		uc.Teacher = origCls.Teacher
	}

	if uc.Capacity == 0 {
		uc.Capacity = origCls.Capacity
	}
	if uc.Time = core.CleanString(uc.Time); uc.Time == "" {
		uc.Time = origCls.Time
	}
	if uc.Day == 0 {
		uc.Day = origCls.Day
	}
	if uc.Date = core.CleanString(uc.Date); uc.Date == "" {
		uc.Date = origCls.Date
	}

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}
	// a rescheduled one-off may keep its original (possibly past) date
	creating := origCls.Kind == KindOneOff && uc.Date != origCls.Date
	return validateKindFields(origCls.Kind, uc.Day, uc.Date, creating)
}

func validateKindFields(kind Kind, day int, date string, creating bool) error {
	switch kind {
	case KindRecurring:
		if day == 0 {
			return core.NewValidationError(errDayRequired, core.FieldError{Field: "day", Error: errDayRequired.Error()})
		}
	case KindOneOff:
		if date == "" {
			return core.NewValidationError(errDateRequired, core.FieldError{Field: "date", Error: errDateRequired.Error()})
		}
		if creating {
			today := nowFunc().Format("2006-01-02")
			if date < today {
				return core.NewValidationError(errDateInPast, core.FieldError{Field: "date", Error: errDateInPast.Error()})
			}
		}
	}
	return nil
}
