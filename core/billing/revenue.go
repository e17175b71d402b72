package billing

import (
	"fmt"
	"time"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
)

type (
	// Summary holds the four income totals in euros. Annual realized income
	// applies the current pricing retroactively to every paid month of the
	// year; no historical prices are stored.
	Summary struct {
		TheoreticalMonthly float64 `json:"theoretical_monthly"`
		RealMonthly        float64 `json:"real_monthly"`
		TheoreticalAnnual  float64 `json:"theoretical_annual"`
		RealAnnual         float64 `json:"real_annual"`
	}

	// Calculator derives income totals from live enrollment and payment
	// state; it persists nothing.
	Calculator struct {
		students student.Repository
		classes  class.Repository
		enrRepo  enrollment.Repository
		pricing  core.Pricing
	}
)

func NewCalculator(students student.Repository, classes class.Repository, enrRepo enrollment.Repository, pricing core.Pricing) *Calculator {
	return &Calculator{students: students, classes: classes, enrRepo: enrRepo, pricing: pricing}
}

// Compute derives the income summary as of `now`. Only students whose
// withdrawal date is absent or in the future contribute.
func (c *Calculator) Compute(now time.Time) (Summary, error) {
	students, err := c.students.QueryAllStudents()
	if err != nil {
		return Summary{}, err
	}
	templates, err := c.classes.QueryAllClasses(class.KindRecurring)
	if err != nil {
		return Summary{}, err
	}
	recurringEnrs, err := c.enrRepo.QueryRecurringEnrollments()
	if err != nil {
		return Summary{}, err
	}

	templatesByID := make(map[int]class.Class, len(templates))
	for _, tpl := range templates {
		templatesByID[tpl.ID] = tpl
	}

	var sum Summary
	currentKey := MonthKey(now)
	for _, std := range students {
		if !std.IsActive(now) {
			continue
		}

		var count int
		var hasExpress bool
		for _, enr := range recurringEnrs {
			if enr.StudentID != std.ID {
				continue
			}
			tpl, ok := templatesByID[enr.TemplateID]
			if !ok {
				continue
			}
			count++
			if tpl.IsExpress() {
				hasExpress = true
			}
		}

		price := c.monthlyPrice(count, hasExpress)
		sum.TheoreticalMonthly += price
		if std.PaymentFor(currentKey) != nil {
			sum.RealMonthly += price
		}
		for month := 1; month <= 12; month++ {
			key := fmt.Sprintf("%04d-%02d", now.Year(), month)
			if std.PaymentFor(key) != nil {
				sum.RealAnnual += price
			}
		}
	}
	sum.TheoreticalAnnual = sum.TheoreticalMonthly * 12
	return sum, nil
}

// monthlyPrice applies the pricing table; counts without a defined tier
// contribute nothing.
func (c *Calculator) monthlyPrice(count int, hasExpress bool) float64 {
	switch {
	case count == 1 && hasExpress:
		return c.pricing.SingleExpress
	case count == 1:
		return c.pricing.Single
	case count == 2 && hasExpress:
		return c.pricing.DoubleExpress
	case count == 2:
		return c.pricing.Double
	}
	return 0
}
