package backup

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
)

var errMissingCollections = errors.New("the backup document is missing required collections")

// Document is the full-dataset snapshot used for file-based backups. The
// collection keys mirror the stores of the original dataset so older backup
// files stay importable.
type Document struct {
	ID                    string                  `json:"id"`
	ExportedAt            time.Time               `json:"exported_at"` // UTC
	Students              []student.Student       `json:"students"`
	Teachers              []teacher.Teacher       `json:"teachers"`
	ScheduleTemplate      []class.Class           `json:"scheduleTemplate"`
	OneOffClasses         []class.Class           `json:"oneOffClasses"`
	Inscriptions          []enrollment.Enrollment `json:"inscriptions"`
	RecurringInscriptions []enrollment.Enrollment `json:"recurringInscriptions"`
}

type Service struct {
	students student.Repository
	teachers teacher.Repository
	classes  class.Repository
	enrRepo  enrollment.Repository
}

func NewService(students student.Repository, teachers teacher.Repository, classes class.Repository, enrRepo enrollment.Repository) *Service {
	return &Service{students: students, teachers: teachers, classes: classes, enrRepo: enrRepo}
}

// Export snapshots all six collections with their original identities.
func (svc *Service) Export() (Document, error) {
	doc := Document{
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if doc.Students, err = svc.students.QueryAllStudents(); err != nil {
		return Document{}, err
	}
	if doc.Teachers, err = svc.teachers.QueryAllTeachers(); err != nil {
		return Document{}, err
	}
	if doc.ScheduleTemplate, err = svc.classes.QueryAllClasses(class.KindRecurring); err != nil {
		return Document{}, err
	}
	if doc.OneOffClasses, err = svc.classes.QueryAllClasses(class.KindOneOff); err != nil {
		return Document{}, err
	}
	if doc.Inscriptions, err = svc.enrRepo.QueryOneOffEnrollments(); err != nil {
		return Document{}, err
	}
	if doc.RecurringInscriptions, err = svc.enrRepo.QueryRecurringEnrollments(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Import clears every collection and repopulates it from the document,
// preserving the document's identities. At minimum the students, teachers
// and schedule-template collections must be present.
func (svc *Service) Import(doc Document) error {
	if doc.Students == nil || doc.Teachers == nil || doc.ScheduleTemplate == nil {
		return core.NewValidationError(errMissingCollections)
	}

	if err := svc.clearAll(); err != nil {
		return err
	}

	for _, std := range doc.Students {
		if _, err := svc.students.RestoreStudent(std); err != nil {
			return err
		}
	}
	for _, tchr := range doc.Teachers {
		if _, err := svc.teachers.RestoreTeacher(tchr); err != nil {
			return err
		}
	}
	for _, tpl := range doc.ScheduleTemplate {
		tpl.Kind = class.KindRecurring
		if _, err := svc.classes.RestoreClass(tpl); err != nil {
			return err
		}
	}
	for _, cls := range doc.OneOffClasses {
		cls.Kind = class.KindOneOff
		if _, err := svc.classes.RestoreClass(cls); err != nil {
			return err
		}
	}
	for _, enr := range doc.Inscriptions {
		if _, err := svc.enrRepo.RestoreOneOffEnrollment(enr); err != nil {
			return err
		}
	}
	for _, enr := range doc.RecurringInscriptions {
		if _, err := svc.enrRepo.RestoreRecurringEnrollment(enr); err != nil {
			return err
		}
	}
	return nil
}

func (svc *Service) clearAll() error {
	if err := svc.enrRepo.ClearEnrollments(); err != nil {
		return err
	}
	if err := svc.classes.ClearClasses(class.KindRecurring); err != nil {
		return err
	}
	if err := svc.classes.ClearClasses(class.KindOneOff); err != nil {
		return err
	}
	if err := svc.teachers.ClearTeachers(); err != nil {
		return err
	}
	return svc.students.ClearStudents()
}
