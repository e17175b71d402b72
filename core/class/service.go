package class

import (
	"errors"
	"time"

	"github.com/billycuesta/nurayoga/core/enrollment"
)

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		CreateClass(cls Class) (Class, error)
		QueryAllClasses(kind Kind) ([]Class, error)
		GetClassByID(kind Kind, id int) (Class, error)
		UpdateClass(cls Class) (Class, error)
		// DeleteClassByID is a no-op when the id does not exist.
		DeleteClassByID(kind Kind, id int) error
		// RestoreClass inserts a class preserving its original ID and
		// advances the identity sequence past it.
		RestoreClass(cls Class) (Class, error)
		ClearClasses(kind Kind) error
	}

	Service struct {
		repo    Repository
		enrRepo enrollment.Repository
	}
)

func NewService(repo Repository, enrRepo enrollment.Repository) *Service {
	return &Service{repo: repo, enrRepo: enrRepo}
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		Kind:      nc.Kind,
		Name:      nc.Name,
		Teacher:   nc.Teacher,
		Capacity:  nc.Capacity,
		Time:      nc.Time,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch nc.Kind {
	case KindRecurring:
		cls.Day = nc.Day
	case KindOneOff:
		cls.Date = nc.Date
	}

	if err := svc.CheckConflict(cls, 0); err != nil {
		return Class{}, err
	}
	return svc.repo.CreateClass(cls)
}

func (svc *Service) QueryAll(kind Kind) ([]Class, error) {
	return svc.repo.QueryAllClasses(kind)
}

func (svc *Service) GetByID(kind Kind, id int) (Class, error) {
	return svc.repo.GetClassByID(kind, id)
}

func (svc *Service) Update(kind Kind, id int, uc UpdateClass) (Class, error) {
	cls, err := svc.repo.GetClassByID(kind, id)
	if err != nil {
		return Class{}, err
	}
	cls.Name = uc.Name
	cls.Teacher = uc.Teacher
	cls.Capacity = uc.Capacity
	cls.Time = uc.Time
	cls.Day = uc.Day
	cls.Date = uc.Date
	cls.UpdatedAt = time.Now().UTC()

	if err := svc.CheckConflict(cls, cls.ID); err != nil {
		return Class{}, err
	}
	return svc.repo.UpdateClass(cls)
}

// Delete removes a class and cascades to every enrollment referencing it,
// dependents first.
func (svc *Service) Delete(kind Kind, id int) error {
	if _, err := svc.repo.GetClassByID(kind, id); err != nil {
		return err
	}
	switch kind {
	case KindRecurring:
		if err := svc.enrRepo.DeleteEnrollmentsByTemplateID(id); err != nil {
			return err
		}
	case KindOneOff:
		if err := svc.enrRepo.DeleteEnrollmentsByOneOffClassID(id); err != nil {
			return err
		}
	}
	return svc.repo.DeleteClassByID(kind, id)
}

// CheckConflict reports whether the proposed class collides with the
// current schedule; excludeID skips the class being edited.
func (svc *Service) CheckConflict(proposed Class, excludeID int) error {
	templates, err := svc.repo.QueryAllClasses(KindRecurring)
	if err != nil {
		return err
	}
	oneOffs, err := svc.repo.QueryAllClasses(KindOneOff)
	if err != nil {
		return err
	}
	return Conflicts(proposed, excludeID, templates, oneOffs)
}
