package student

import (
	"errors"
	"time"

	"github.com/billycuesta/nurayoga/core/enrollment"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		UpdateStudent(std Student) (Student, error)
		// DeleteStudentByID is a no-op when the id does not exist.
		DeleteStudentByID(id int) error
		// RestoreStudent inserts a student preserving its original ID and
		// advances the identity sequence past it.
		RestoreStudent(std Student) (Student, error)
		ClearStudents() error
	}

	Service struct {
		repo    Repository
		enrRepo enrollment.Repository
	}
)

func NewService(repo Repository, enrRepo enrollment.Repository) *Service {
	return &Service{repo: repo, enrRepo: enrRepo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	enrolledAt := ns.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = now
	}
	std := Student{
		Name:       ns.Name,
		Email:      ns.Email,
		Phone:      ns.Phone,
		EnrolledAt: enrolledAt.UTC(),
		Payments:   make(map[string]*time.Time),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	std.Name = us.Name
	std.Email = us.Email
	std.Phone = us.Phone
	std.WithdrawnAt = us.WithdrawnAt
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std)
}

// Delete removes a student and cascades to every enrollment referencing it.
// Dependents go first so an interrupted delete never leaves an enrollment
// pointing at a missing student; re-running it completes the job.
func (svc *Service) Delete(id int) error {
	if _, err := svc.repo.GetStudentByID(id); err != nil {
		return err
	}
	if err := svc.enrRepo.DeleteEnrollmentsByStudentID(id); err != nil {
		return err
	}
	return svc.repo.DeleteStudentByID(id)
}

// ClearAllWithEnrollments wipes every student together with every
// enrollment, dependents first. Meant for maintenance, not day-to-day use.
func (svc *Service) ClearAllWithEnrollments() error {
	if err := svc.enrRepo.ClearEnrollments(); err != nil {
		return err
	}
	return svc.repo.ClearStudents()
}

// Enrollments returns the student's one-off and recurring enrollments.
func (svc *Service) Enrollments(id int) ([]enrollment.Enrollment, []enrollment.Enrollment, error) {
	if _, err := svc.repo.GetStudentByID(id); err != nil {
		return nil, nil, err
	}
	oneOff, err := svc.enrRepo.QueryOneOffEnrollmentsByStudentID(id)
	if err != nil {
		return nil, nil, err
	}
	recurring, err := svc.enrRepo.QueryRecurringEnrollmentsByStudentID(id)
	if err != nil {
		return nil, nil, err
	}
	return oneOff, recurring, nil
}
