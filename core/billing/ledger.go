package billing

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/student"
)

type (
	// MetaRepository persists the single piece of process-wide state: the
	// month key of the last completed payment rollover. It is read at
	// startup, written after a successful rollover and otherwise inert.
	MetaRepository interface {
		GetLastRolloverMonth() (string, error) // "" when never rolled over
		SetLastRolloverMonth(monthKey string) error
	}

	// Ledger tracks, per student and calendar month, whether dues were paid.
	// A month entry goes uninitialized -> unpaid (nil) on rollover, then
	// toggles unpaid <-> paid; once created it is never removed.
	Ledger struct {
		students student.Repository
		meta     MetaRepository
		mailSvc  core.EmailService
	}
)

func NewLedger(students student.Repository, meta MetaRepository, mailSvc core.EmailService) *Ledger {
	return &Ledger{students: students, meta: meta, mailSvc: mailSvc}
}

// MonthKey returns the "YYYY-MM" key for t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// RolloverIfNeeded initializes an unpaid entry for monthKey on every student
// that does not have one yet, then advances the watermark. Invoking it again
// within the same month performs no writes.
func (l *Ledger) RolloverIfNeeded(monthKey string) error {
	if !core.ValidMonthKey(monthKey) {
		return core.NewValidationError(nil, core.FieldError{Field: "month", Error: "invalid month key"})
	}

	last, err := l.meta.GetLastRolloverMonth()
	if err != nil {
		return err
	}
	if last == monthKey {
		return nil
	}

	students, err := l.students.QueryAllStudents()
	if err != nil {
		return err
	}
	for _, std := range students {
		if std.Payments == nil {
			std.Payments = make(map[string]*time.Time)
		}
		if _, ok := std.Payments[monthKey]; ok {
			continue
		}
		std.Payments[monthKey] = nil
		if _, err := l.students.UpdateStudent(std); err != nil {
			return err
		}
	}
	return l.meta.SetLastRolloverMonth(monthKey)
}

// TogglePayment flips the student's entry for monthKey between unpaid and
// paid-now and persists the student. A payment receipt is mailed when the
// month turns paid and the student has an email address.
func (l *Ledger) TogglePayment(studentID int, monthKey string) (student.Student, error) {
	if !core.ValidMonthKey(monthKey) {
		return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: "month", Error: "invalid month key"})
	}

	std, err := l.students.GetStudentByID(studentID)
	if err != nil {
		return student.Student{}, err
	}
	if std.Payments == nil {
		std.Payments = make(map[string]*time.Time)
	}

	if std.Payments[monthKey] != nil {
		std.Payments[monthKey] = nil
	} else {
		now := time.Now().UTC()
		std.Payments[monthKey] = &now
		l.sendReceipt(std, monthKey, now)
	}
	std.UpdatedAt = time.Now().UTC()
	return l.students.UpdateStudent(std)
}

// PaymentStatus returns the payment timestamp for (studentID, monthKey);
// nil when the month is unpaid or uninitialized.
func (l *Ledger) PaymentStatus(studentID int, monthKey string) (*time.Time, error) {
	std, err := l.students.GetStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	return std.PaymentFor(monthKey), nil
}

func (l *Ledger) sendReceipt(std student.Student, monthKey string, paidAt time.Time) {
	if l.mailSvc == nil || std.Email == "" {
		return
	}
	l.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.Name, Address: std.Email}},
		Subject: "Payment received",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nwe registered your payment for %s on %s. Thank you!",
			std.Name, monthKey, paidAt.Format("2 Jan 2006 15:04"),
		),
	})
}
