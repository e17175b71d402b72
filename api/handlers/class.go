package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
)

type classAPI struct {
	service *class.Service
	enrSvc  *enrollment.Service
}

// RegisterClassAPI mounts both class kinds: /classes/recurring for the
// weekly schedule template and /classes/one-off for single sessions.
// Enrollment is a sub-resource of the class.
func RegisterClassAPI(g *echo.Group, service *class.Service, enrSvc *enrollment.Service) {
	a := classAPI{service: service, enrSvc: enrSvc}

	for _, kind := range []class.Kind{class.KindRecurring, class.KindOneOff} {
		kg := g.Group("/classes/" + string(kind))
		kg.POST("", a.classCreate(kind))
		kg.GET("", a.classQuery(kind))
		kg.POST("/conflict-check", a.classConflictCheck(kind))

		dg := kg.Group("/:id")
		dg.GET("", a.classRetrieve(kind))
		dg.PUT("", a.classUpdate(kind))
		dg.DELETE("", a.classDestroy(kind))
		dg.GET("/students", a.classEnrollments(kind))
		dg.POST("/students", a.classEnroll(kind))
		dg.DELETE("/students/:studentID", a.classUnenroll(kind))
	}
}

func (api *classAPI) classCreate(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := new(class.NewClass)
		if err := c.Bind(data); err != nil {
			return err
		}
		data.Kind = kind
		if err := data.Validate(); err != nil {
			return err
		}

		cls, err := api.service.Create(*data)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, cls)
	}
}

type conflictCheckRequest struct {
	Time      string `json:"time" validate:"required,timefmt"`
	Day       int    `json:"day" validate:"omitempty,min=1,max=7"`
	Date      string `json:"date" validate:"omitempty,dateymd"`
	ExcludeID int    `json:"excludeId"`
}

func (r *conflictCheckRequest) Validate() error {
	return core.Validate.Struct(r)
}

// classConflictCheck dry-runs the schedule conflict detector so a slot can
// be probed before committing a create or reschedule.
func (api *classAPI) classConflictCheck(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := new(conflictCheckRequest)
		if err := c.Bind(data); err != nil {
			return err
		}
		if err := data.Validate(); err != nil {
			return err
		}

		proposed := class.Class{Kind: kind, Time: data.Time, Day: data.Day, Date: data.Date}
		if err := api.service.CheckConflict(proposed, data.ExcludeID); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"conflict": false})
	}
}

func (api *classAPI) classQuery(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := api.service.QueryAll(kind)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, res)
	}
}

func (api *classAPI) classRetrieve(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		cls, err := api.service.GetByID(kind, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, cls)
	}
}

func (api *classAPI) classUpdate(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		origCls, err := api.service.GetByID(kind, id)
		if err != nil {
			return err
		}

		data := new(class.UpdateClass)
		if err = c.Bind(data); err != nil {
			return err
		}
		if err = data.Validate(origCls); err != nil {
			return err
		}

		cls, err := api.service.Update(kind, id, *data)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, cls)
	}
}

func (api *classAPI) classDestroy(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err = api.service.Delete(kind, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (api *classAPI) classEnrollments(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		cls, err := api.getClass(c, kind)
		if err != nil {
			return err
		}
		enrs, err := api.enrSvc.ByClass(cls.Ref())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"capacity":    cls.Capacity,
			"occupancy":   len(enrs),
			"enrollments": enrs,
		})
	}
}

type enrollRequest struct {
	StudentID int `json:"studentId" validate:"required"`
}

func (r *enrollRequest) Validate() error {
	return core.Validate.Struct(r)
}

func (api *classAPI) classEnroll(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		cls, err := api.getClass(c, kind)
		if err != nil {
			return err
		}

		data := new(enrollRequest)
		if err = c.Bind(data); err != nil {
			return err
		}
		if err = data.Validate(); err != nil {
			return err
		}

		enr, err := api.enrSvc.Enroll(data.StudentID, cls.Ref())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, enr)
	}
}

func (api *classAPI) classUnenroll(kind class.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		cls, err := api.getClass(c, kind)
		if err != nil {
			return err
		}
		studentID, err := strconv.Atoi(c.Param("studentID"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
		}

		if err = api.enrSvc.Unenroll(studentID, cls.Ref()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (api *classAPI) getClass(c echo.Context, kind class.Kind) (class.Class, error) {
	id, err := pathID(c)
	if err != nil {
		return class.Class{}, err
	}
	return api.service.GetByID(kind, id)
}
