package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
)

type maintenanceAPI struct {
	studentSvc *student.Service
	enrSvc     *enrollment.Service
}

// RegisterMaintenanceAPI mounts the destructive bulk operations; they exist
// for studio resets and have no undo besides a prior export.
func RegisterMaintenanceAPI(g *echo.Group, studentSvc *student.Service, enrSvc *enrollment.Service) {
	a := maintenanceAPI{studentSvc: studentSvc, enrSvc: enrSvc}

	mg := g.Group("/maintenance")
	mg.POST("/clear-enrollments", a.clearEnrollments)
	mg.POST("/clear-students", a.clearStudents)
}

func (api *maintenanceAPI) clearEnrollments(c echo.Context) error {
	if err := api.enrSvc.ClearAll(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (api *maintenanceAPI) clearStudents(c echo.Context) error {
	if err := api.studentSvc.ClearAllWithEnrollments(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
