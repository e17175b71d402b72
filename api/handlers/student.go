package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core/student"
)

type studentAPI struct {
	service *student.Service
}

func RegisterStudentAPI(g *echo.Group, service *student.Service) {
	a := studentAPI{service: service}

	sg := g.Group("/students")
	sg.POST("", a.studentCreate)
	sg.GET("", a.studentQuery)

	dg := sg.Group("/:id")
	dg.GET("", a.studentRetrieve)
	dg.PUT("", a.studentUpdate)
	dg.DELETE("", a.studentDestroy)
	dg.GET("/enrollments", a.studentEnrollments)
}

func (api *studentAPI) studentCreate(c echo.Context) error {
	data := new(student.NewStudent)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, std)
}

func (api *studentAPI) studentQuery(c echo.Context) error {
	res, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (api *studentAPI) studentRetrieve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	std, err := api.service.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, std)
}

func (api *studentAPI) studentUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	origStd, err := api.service.GetByID(id)
	if err != nil {
		return err
	}

	data := new(student.UpdateStudent)
	if err = c.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(origStd); err != nil {
		return err
	}

	std, err := api.service.Update(id, *data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, std)
}

func (api *studentAPI) studentDestroy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = api.service.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (api *studentAPI) studentEnrollments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	oneOff, recurring, err := api.service.Enrollments(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"oneOff":    oneOff,
		"recurring": recurring,
	})
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
