package enrollment_test

import (
	"errors"
	"testing"

	"github.com/billycuesta/nurayoga/core/enrollment"
	dummydb "github.com/billycuesta/nurayoga/storage/database/dummy"
)

func setup(t *testing.T) *enrollment.Service {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return enrollment.NewService(dummydb.NewEnrollmentRepository(db))
}

func TestService_Enroll_capacity(t *testing.T) {
	svc := setup(t)
	// a Hatha template with room for two
	ref := enrollment.ClassRef{TemplateID: 1, Capacity: 2}

	if _, err := svc.Enroll(1, ref); err != nil {
		t.Fatalf("Enroll(1) failed: %v", err)
	}
	if _, err := svc.Enroll(2, ref); err != nil {
		t.Fatalf("Enroll(2) failed: %v", err)
	}

	// the class is full; a third student is refused
	if _, err := svc.Enroll(3, ref); !errors.Is(err, enrollment.ErrClassFull) {
		t.Fatalf("Enroll(3) error = %v, want ErrClassFull", err)
	}
	if n, _ := svc.Occupancy(ref); n != 2 {
		t.Fatalf("Occupancy() = %d, want 2 (failed enroll must not persist)", n)
	}

	// a spot frees up and the third student gets in
	if err := svc.Unenroll(1, ref); err != nil {
		t.Fatalf("Unenroll(1) failed: %v", err)
	}
	if _, err := svc.Enroll(3, ref); err != nil {
		t.Fatalf("Enroll(3) after free spot failed: %v", err)
	}
	if n, _ := svc.Occupancy(ref); n != 2 {
		t.Fatalf("Occupancy() = %d, want 2", n)
	}
}

func TestService_Enroll_duplicate(t *testing.T) {
	svc := setup(t)
	ref := enrollment.ClassRef{TemplateID: 1, Capacity: 10}

	if _, err := svc.Enroll(1, ref); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	if _, err := svc.Enroll(1, ref); !errors.Is(err, enrollment.ErrAlreadyEnrolled) {
		t.Fatalf("Enroll() error = %v, want ErrAlreadyEnrolled", err)
	}

	// the same student may take a one-off class too; kinds do not collide
	oneOffRef := enrollment.ClassRef{OneOffClassID: 1, Date: "2030-06-10", Capacity: 10}
	if _, err := svc.Enroll(1, oneOffRef); err != nil {
		t.Fatalf("Enroll(one-off) failed: %v", err)
	}
}

func TestService_Enroll_oneOffCarriesDate(t *testing.T) {
	svc := setup(t)
	ref := enrollment.ClassRef{OneOffClassID: 7, Date: "2030-06-10", Capacity: 5}

	enr, err := svc.Enroll(1, ref)
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	if enr.OneOffClassID != 7 || enr.Date != "2030-06-10" {
		t.Errorf("Enroll() = %+v, want one-off class 7 on 2030-06-10", enr)
	}
	if enr.IsRecurring() {
		t.Error("IsRecurring() = true, want false")
	}
}

func TestService_Unenroll_notEnrolled(t *testing.T) {
	svc := setup(t)
	ref := enrollment.ClassRef{TemplateID: 1, Capacity: 10}

	if err := svc.Unenroll(1, ref); !errors.Is(err, enrollment.ErrNotEnrolled) {
		t.Fatalf("Unenroll() error = %v, want ErrNotEnrolled", err)
	}

	if _, err := svc.Enroll(1, ref); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	// enrolled in template 1, not in template 2
	if err := svc.Unenroll(1, enrollment.ClassRef{TemplateID: 2, Capacity: 10}); !errors.Is(err, enrollment.ErrNotEnrolled) {
		t.Fatalf("Unenroll() error = %v, want ErrNotEnrolled", err)
	}
}

func TestService_ByClass(t *testing.T) {
	svc := setup(t)
	hatha := enrollment.ClassRef{TemplateID: 1, Capacity: 10}
	vinyasa := enrollment.ClassRef{TemplateID: 2, Capacity: 10}

	for _, studentID := range []int{1, 2, 3} {
		if _, err := svc.Enroll(studentID, hatha); err != nil {
			t.Fatalf("Enroll() failed: %v", err)
		}
	}
	if _, err := svc.Enroll(1, vinyasa); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}

	enrs, err := svc.ByClass(hatha)
	if err != nil {
		t.Fatalf("ByClass() failed: %v", err)
	}
	if len(enrs) != 3 {
		t.Fatalf("ByClass() returned %d enrollments, want 3", len(enrs))
	}
	for _, enr := range enrs {
		if enr.TemplateID != 1 {
			t.Errorf("ByClass() returned enrollment of template %d", enr.TemplateID)
		}
	}
}
