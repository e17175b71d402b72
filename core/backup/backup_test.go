package backup_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/billycuesta/nurayoga/core/backup"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
	dummydb "github.com/billycuesta/nurayoga/storage/database/dummy"
)

type fixture struct {
	svc      *backup.Service
	students student.Repository
	teachers teacher.Repository
	classes  class.Repository
	enrRepo  enrollment.Repository
}

func setup(t *testing.T) fixture {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	f := fixture{
		students: dummydb.NewStudentRepository(db),
		teachers: dummydb.NewTeacherRepository(db),
		classes:  dummydb.NewClassRepository(db),
		enrRepo:  dummydb.NewEnrollmentRepository(db),
	}
	f.svc = backup.NewService(f.students, f.teachers, f.classes, f.enrRepo)
	return f
}

func (f fixture) seed(t *testing.T) {
	now := time.Now().UTC()
	paid := now.Add(-time.Hour)

	for i := 1; i <= 6; i++ {
		std := student.Student{
			Name:       fmt.Sprintf("Student %d", i),
			EnrolledAt: now,
			Payments:   map[string]*time.Time{"2030-06": nil},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if i%2 == 0 {
			std.Payments["2030-06"] = &paid
		}
		if _, err := f.students.CreateStudent(std); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
	for _, name := range []string{"Nura", "Aina"} {
		if _, err := f.teachers.CreateTeacher(teacher.Teacher{Name: name, Specialties: []string{"hatha"}, IsActive: true}); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
	for day := 1; day <= 3; day++ {
		cls := class.Class{Kind: class.KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "18:00", Day: day}
		if _, err := f.classes.CreateClass(cls); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
	for _, date := range []string{"2030-06-10", "2030-06-17"} {
		cls := class.Class{Kind: class.KindOneOff, Name: "Workshop", Teacher: "Aina", Capacity: 15, Time: "10:00", Date: date}
		if _, err := f.classes.CreateClass(cls); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
	for i := 1; i <= 3; i++ {
		if _, err := f.enrRepo.CreateRecurringEnrollment(enrollment.Enrollment{StudentID: i, TemplateID: i}); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
	for i := 4; i <= 5; i++ {
		if _, err := f.enrRepo.CreateOneOffEnrollment(enrollment.Enrollment{StudentID: i, OneOffClassID: 1, Date: "2030-06-10"}); err != nil {
			t.Fatalf("seed() failed: %v", err)
		}
	}
}

func TestService_roundTrip(t *testing.T) {
	f := setup(t)
	f.seed(t)

	doc, err := f.svc.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if doc.ID == "" {
		t.Error("Export() did not assign a document id")
	}
	if doc.ExportedAt.IsZero() {
		t.Error("Export() did not timestamp the document")
	}
	if len(doc.Students) != 6 || len(doc.Teachers) != 2 ||
		len(doc.ScheduleTemplate) != 3 || len(doc.OneOffClasses) != 2 ||
		len(doc.Inscriptions) != 2 || len(doc.RecurringInscriptions) != 3 {
		t.Fatalf("Export() collection sizes = %d/%d/%d/%d/%d/%d, want 6/2/3/2/2/3",
			len(doc.Students), len(doc.Teachers), len(doc.ScheduleTemplate),
			len(doc.OneOffClasses), len(doc.Inscriptions), len(doc.RecurringInscriptions))
	}

	// import into a fresh store; identities must survive
	g := setup(t)
	if err = g.svc.Import(doc); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	doc2, err := g.svc.Export()
	if err != nil {
		t.Fatalf("Export() after import failed: %v", err)
	}
	for i, std := range doc.Students {
		if doc2.Students[i].ID != std.ID || doc2.Students[i].Name != std.Name {
			t.Errorf("student %d changed: %+v vs %+v", i, std, doc2.Students[i])
		}
		if (doc2.Students[i].Payments["2030-06"] == nil) != (std.Payments["2030-06"] == nil) {
			t.Errorf("student %d payment state changed", i)
		}
	}
	for i, tpl := range doc.ScheduleTemplate {
		if doc2.ScheduleTemplate[i].ID != tpl.ID || doc2.ScheduleTemplate[i].Day != tpl.Day {
			t.Errorf("template %d changed: %+v vs %+v", i, tpl, doc2.ScheduleTemplate[i])
		}
	}
	for i, enr := range doc.RecurringInscriptions {
		if doc2.RecurringInscriptions[i] != enr {
			t.Errorf("recurring enrollment %d changed: %+v vs %+v", i, enr, doc2.RecurringInscriptions[i])
		}
	}

	// new records must not collide with restored identities
	std, err := g.students.CreateStudent(student.Student{Name: "Newcomer", Payments: map[string]*time.Time{}})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if std.ID <= 6 {
		t.Errorf("CreateStudent() reused id %d after import", std.ID)
	}
}

func TestService_Import_replacesExistingData(t *testing.T) {
	f := setup(t)
	f.seed(t)

	doc, err := f.svc.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	// the target holds unrelated data that must disappear
	g := setup(t)
	if _, err = g.students.CreateStudent(student.Student{Name: "Leftover", Payments: map[string]*time.Time{}}); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if _, err = g.enrRepo.CreateRecurringEnrollment(enrollment.Enrollment{StudentID: 1, TemplateID: 9}); err != nil {
		t.Fatalf("CreateRecurringEnrollment() failed: %v", err)
	}

	if err = g.svc.Import(doc); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	students, _ := g.students.QueryAllStudents()
	if len(students) != 6 {
		t.Errorf("Import() left %d students, want 6", len(students))
	}
	for _, std := range students {
		if std.Name == "Leftover" {
			t.Error("Import() kept pre-existing data")
		}
	}
	enrs, _ := g.enrRepo.QueryRecurringEnrollments()
	if len(enrs) != 3 {
		t.Errorf("Import() left %d recurring enrollments, want 3", len(enrs))
	}
}

func TestService_Import_missingCollections(t *testing.T) {
	f := setup(t)
	f.seed(t)

	tests := []struct {
		name string
		doc  backup.Document
	}{
		{name: "empty document"},
		{name: "no students", doc: backup.Document{Teachers: []teacher.Teacher{}, ScheduleTemplate: []class.Class{}}},
		{name: "no teachers", doc: backup.Document{Students: []student.Student{}, ScheduleTemplate: []class.Class{}}},
		{name: "no template", doc: backup.Document{Students: []student.Student{}, Teachers: []teacher.Teacher{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.svc.Import(tt.doc); err == nil {
				t.Error("Import() accepted an incomplete document")
			}
		})
	}

	// the rejected import must not clear existing data
	students, _ := f.students.QueryAllStudents()
	if len(students) != 6 {
		t.Errorf("rejected Import() wiped the store: %d students left", len(students))
	}
}

func TestService_Import_emptyButPresentCollections(t *testing.T) {
	f := setup(t)
	f.seed(t)

	doc := backup.Document{
		Students:         []student.Student{},
		Teachers:         []teacher.Teacher{},
		ScheduleTemplate: []class.Class{},
	}
	if err := f.svc.Import(doc); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	students, _ := f.students.QueryAllStudents()
	if len(students) != 0 {
		t.Errorf("Import() of an empty dataset left %d students", len(students))
	}
}
