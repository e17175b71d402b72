package billing_test

import (
	"testing"

	"github.com/billycuesta/nurayoga/core/billing"
	"github.com/billycuesta/nurayoga/core/student"
	dummydb "github.com/billycuesta/nurayoga/storage/database/dummy"
)

func setupLedger(t *testing.T) (*billing.Ledger, student.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewStudentRepository(db)
	ledger := billing.NewLedger(repo, dummydb.NewMetaRepository(db), nil)
	return ledger, repo
}

func TestLedger_RolloverIfNeeded(t *testing.T) {
	ledger, repo := setupLedger(t)

	var ids []int
	for _, name := range []string{"Marta", "Joan", "Aina"} {
		std, err := repo.CreateStudent(student.Student{Name: name})
		if err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
		ids = append(ids, std.ID)
	}

	if err := ledger.RolloverIfNeeded("2030-06"); err != nil {
		t.Fatalf("RolloverIfNeeded() failed: %v", err)
	}

	for _, id := range ids {
		std, err := repo.GetStudentByID(id)
		if err != nil {
			t.Fatalf("GetStudentByID() failed: %v", err)
		}
		if paidAt, ok := std.Payments["2030-06"]; !ok || paidAt != nil {
			t.Errorf("student %d: payments[2030-06] = %v, %v; want nil entry", id, paidAt, ok)
		}
	}

	// repeat calls in the same month change nothing
	for i := 0; i < 5; i++ {
		if err := ledger.RolloverIfNeeded("2030-06"); err != nil {
			t.Fatalf("RolloverIfNeeded() run %d failed: %v", i, err)
		}
	}
	std, _ := repo.GetStudentByID(ids[0])
	if len(std.Payments) != 1 {
		t.Errorf("repeated rollover grew the ledger to %d entries", len(std.Payments))
	}
}

func TestLedger_Rollover_preservesPaidMonths(t *testing.T) {
	ledger, repo := setupLedger(t)

	std, err := repo.CreateStudent(student.Student{Name: "Marta"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	if err = ledger.RolloverIfNeeded("2030-06"); err != nil {
		t.Fatalf("RolloverIfNeeded() failed: %v", err)
	}
	if _, err = ledger.TogglePayment(std.ID, "2030-06"); err != nil {
		t.Fatalf("TogglePayment() failed: %v", err)
	}

	// the next month opens unpaid without touching June
	if err = ledger.RolloverIfNeeded("2030-07"); err != nil {
		t.Fatalf("RolloverIfNeeded() failed: %v", err)
	}

	std, _ = repo.GetStudentByID(std.ID)
	if std.Payments["2030-06"] == nil {
		t.Error("rollover reset a paid month")
	}
	if paidAt, ok := std.Payments["2030-07"]; !ok || paidAt != nil {
		t.Errorf("payments[2030-07] = %v, %v; want nil entry", paidAt, ok)
	}
}

func TestLedger_TogglePayment(t *testing.T) {
	ledger, repo := setupLedger(t)

	std, err := repo.CreateStudent(student.Student{Name: "Marta"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	// paying an uninitialized month creates the entry
	std, err = ledger.TogglePayment(std.ID, "2030-06")
	if err != nil {
		t.Fatalf("TogglePayment() failed: %v", err)
	}
	if std.Payments["2030-06"] == nil {
		t.Fatal("TogglePayment() did not mark the month paid")
	}

	// toggling back marks it unpaid but keeps the key
	std, err = ledger.TogglePayment(std.ID, "2030-06")
	if err != nil {
		t.Fatalf("TogglePayment() failed: %v", err)
	}
	if paidAt, ok := std.Payments["2030-06"]; !ok || paidAt != nil {
		t.Errorf("payments[2030-06] = %v, %v; want preserved nil entry", paidAt, ok)
	}

	if paidAt, err := ledger.PaymentStatus(std.ID, "2030-06"); err != nil || paidAt != nil {
		t.Errorf("PaymentStatus() = %v, %v; want nil, nil", paidAt, err)
	}
}

func TestLedger_invalidMonthKey(t *testing.T) {
	ledger, repo := setupLedger(t)

	std, err := repo.CreateStudent(student.Student{Name: "Marta"})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}

	for _, key := range []string{"", "2030", "2030-13", "2030-6", "june"} {
		if err := ledger.RolloverIfNeeded(key); err == nil {
			t.Errorf("RolloverIfNeeded(%q) accepted an invalid month key", key)
		}
		if _, err := ledger.TogglePayment(std.ID, key); err == nil {
			t.Errorf("TogglePayment(%q) accepted an invalid month key", key)
		}
	}
}
