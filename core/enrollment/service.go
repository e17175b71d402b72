package enrollment

import "errors"

var (
	// errors
	ErrNotFound        = errors.New("enrollment not found")
	ErrClassFull       = errors.New("the class is full")
	ErrAlreadyEnrolled = errors.New("the student is already enrolled in this class")
	ErrNotEnrolled     = errors.New("the student is not enrolled in this class")
)

type (
	Repository interface {
		CreateOneOffEnrollment(enr Enrollment) (Enrollment, error)
		CreateRecurringEnrollment(enr Enrollment) (Enrollment, error)
		QueryOneOffEnrollments() ([]Enrollment, error)
		QueryRecurringEnrollments() ([]Enrollment, error)
		QueryOneOffEnrollmentsByStudentID(studentID int) ([]Enrollment, error)
		QueryRecurringEnrollmentsByStudentID(studentID int) ([]Enrollment, error)
		// Deletes are no-ops when the target rows are already gone, so an
		// interrupted cascade can safely be retried.
		DeleteOneOffEnrollmentByID(id int) error
		DeleteRecurringEnrollmentByID(id int) error
		DeleteEnrollmentsByStudentID(studentID int) error
		DeleteEnrollmentsByTemplateID(templateID int) error
		DeleteEnrollmentsByOneOffClassID(classID int) error
		RestoreOneOffEnrollment(enr Enrollment) (Enrollment, error)
		RestoreRecurringEnrollment(enr Enrollment) (Enrollment, error)
		ClearEnrollments() error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ByClass returns the live enrollments for a class.
func (svc *Service) ByClass(ref ClassRef) ([]Enrollment, error) {
	all, err := svc.queryByKind(ref)
	if err != nil {
		return nil, err
	}
	enrs := make([]Enrollment, 0, len(all))
	for _, enr := range all {
		if ref.matches(enr) {
			enrs = append(enrs, enr)
		}
	}
	return enrs, nil
}

// Occupancy returns the live enrollment count for a class.
func (svc *Service) Occupancy(ref ClassRef) (int, error) {
	enrs, err := svc.ByClass(ref)
	if err != nil {
		return 0, err
	}
	return len(enrs), nil
}

// Enroll adds a student to a class. It fails with ErrClassFull when the
// class is at capacity and with ErrAlreadyEnrolled on a duplicate
// (student, class) pair; nothing is persisted on failure.
func (svc *Service) Enroll(studentID int, ref ClassRef) (Enrollment, error) {
	enrs, err := svc.ByClass(ref)
	if err != nil {
		return Enrollment{}, err
	}
	if len(enrs) >= ref.Capacity {
		return Enrollment{}, ErrClassFull
	}
	for _, enr := range enrs {
		if enr.StudentID == studentID {
			return Enrollment{}, ErrAlreadyEnrolled
		}
	}

	if ref.isRecurring() {
		return svc.repo.CreateRecurringEnrollment(Enrollment{
			StudentID:  studentID,
			TemplateID: ref.TemplateID,
		})
	}
	return svc.repo.CreateOneOffEnrollment(Enrollment{
		StudentID:     studentID,
		OneOffClassID: ref.OneOffClassID,
		Date:          ref.Date,
	})
}

// Unenroll removes a student from a class; ErrNotEnrolled when no matching
// enrollment exists.
func (svc *Service) Unenroll(studentID int, ref ClassRef) error {
	enrs, err := svc.ByClass(ref)
	if err != nil {
		return err
	}
	for _, enr := range enrs {
		if enr.StudentID == studentID {
			if ref.isRecurring() {
				return svc.repo.DeleteRecurringEnrollmentByID(enr.ID)
			}
			return svc.repo.DeleteOneOffEnrollmentByID(enr.ID)
		}
	}
	return ErrNotEnrolled
}

// ClearAll removes every enrollment of every student.
func (svc *Service) ClearAll() error {
	return svc.repo.ClearEnrollments()
}

func (svc *Service) queryByKind(ref ClassRef) ([]Enrollment, error) {
	if ref.isRecurring() {
		return svc.repo.QueryRecurringEnrollments()
	}
	return svc.repo.QueryOneOffEnrollments()
}
