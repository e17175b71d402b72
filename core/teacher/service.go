package teacher

import (
	"errors"
	"time"

	"github.com/billycuesta/nurayoga/core/class"
)

var (
	// errors
	ErrNotFound   = errors.New("teacher not found")
	ErrHasClasses = errors.New("the teacher still has classes assigned")
)

type (
	Repository interface {
		CreateTeacher(tchr Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id int) (Teacher, error)
		GetTeacherByName(name string) (Teacher, error)
		UpdateTeacher(tchr Teacher) (Teacher, error)
		// DeleteTeacherByID is a no-op when the id does not exist.
		DeleteTeacherByID(id int) error
		// RestoreTeacher inserts a teacher preserving its original ID and
		// advances the identity sequence past it.
		RestoreTeacher(tchr Teacher) (Teacher, error)
		ClearTeachers() error
	}

	Service struct {
		repo      Repository
		classRepo class.Repository
	}
)

func NewService(repo Repository, classRepo class.Repository) *Service {
	return &Service{repo: repo, classRepo: classRepo}
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	tchr := Teacher{
		Name:        nt.Name,
		Email:       nt.Email,
		Phone:       nt.Phone,
		Specialties: nt.Specialties,
		Bio:         nt.Bio,
		IsActive:    true,
		HourlyRate:  nt.HourlyRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tchr.Specialties == nil {
		tchr.Specialties = []string{}
	}
	return svc.repo.CreateTeacher(tchr)
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id int) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) GetByName(name string) (Teacher, error) {
	return svc.repo.GetTeacherByName(name)
}

func (svc *Service) Update(id int, ut UpdateTeacher) (Teacher, error) {
	tchr, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	tchr.Name = ut.Name
	tchr.Email = ut.Email
	tchr.Phone = ut.Phone
	tchr.Specialties = ut.Specialties
	tchr.Bio = ut.Bio
	if ut.IsActive != nil {
		tchr.IsActive = *ut.IsActive
	}
	if ut.HourlyRate != nil {
		tchr.HourlyRate = *ut.HourlyRate
	}
	tchr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(tchr)
}

// Delete refuses to remove a teacher while any class still references it by
// name; classes hold no enforced foreign key, so the guard is the only thing
// preventing dangling teacher names on the schedule.
func (svc *Service) Delete(id int) error {
	tchr, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return err
	}
	classes, err := svc.Classes(tchr.Name)
	if err != nil {
		return err
	}
	if len(classes) > 0 {
		return ErrHasClasses
	}
	return svc.repo.DeleteTeacherByID(id)
}

// Classes returns every class (both kinds) assigned to the named teacher.
func (svc *Service) Classes(name string) ([]class.Class, error) {
	templates, err := svc.classRepo.QueryAllClasses(class.KindRecurring)
	if err != nil {
		return nil, err
	}
	oneOffs, err := svc.classRepo.QueryAllClasses(class.KindOneOff)
	if err != nil {
		return nil, err
	}

	classes := make([]class.Class, 0, len(templates)+len(oneOffs))
	for _, cls := range append(templates, oneOffs...) {
		if cls.Teacher == name {
			classes = append(classes, cls)
		}
	}
	return classes, nil
}
