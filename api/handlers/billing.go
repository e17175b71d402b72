package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/billing"
)

type billingAPI struct {
	ledger     *billing.Ledger
	calculator *billing.Calculator
}

func RegisterBillingAPI(g *echo.Group, ledger *billing.Ledger, calculator *billing.Calculator) {
	a := billingAPI{ledger: ledger, calculator: calculator}

	bg := g.Group("/billing")
	bg.POST("/rollover", a.rollover)
	bg.GET("/summary", a.summary)

	pg := g.Group("/students/:id/payments/:month")
	pg.GET("", a.paymentStatus)
	pg.POST("/toggle", a.paymentToggle)
}

type rolloverRequest struct {
	Month string `json:"month" validate:"omitempty,monthkey"`
}

func (r *rolloverRequest) Validate() error {
	return core.Validate.Struct(r)
}

// rollover initializes the unpaid entry for the given month (the current
// month when absent) on every student; repeat calls are no-ops.
func (api *billingAPI) rollover(c echo.Context) error {
	data := new(rolloverRequest)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Month == "" {
		data.Month = billing.MonthKey(time.Now().UTC())
	}

	if err := api.ledger.RolloverIfNeeded(data.Month); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"month": data.Month})
}

func (api *billingAPI) summary(c echo.Context) error {
	sum, err := api.calculator.Compute(time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (api *billingAPI) paymentStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	paidAt, err := api.ledger.PaymentStatus(id, c.Param("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"paid": paidAt != nil, "paid_at": paidAt})
}

func (api *billingAPI) paymentToggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	std, err := api.ledger.TogglePayment(id, c.Param("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, std)
}
