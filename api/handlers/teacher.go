package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core/teacher"
)

type teacherAPI struct {
	service *teacher.Service
}

func RegisterTeacherAPI(g *echo.Group, service *teacher.Service) {
	a := teacherAPI{service: service}

	tg := g.Group("/teachers")
	tg.POST("", a.teacherCreate)
	tg.GET("", a.teacherQuery)

	dg := tg.Group("/:id")
	dg.GET("", a.teacherRetrieve)
	dg.PUT("", a.teacherUpdate)
	dg.DELETE("", a.teacherDestroy)
	dg.GET("/classes", a.teacherClasses)
}

func (api *teacherAPI) teacherCreate(c echo.Context) error {
	data := new(teacher.NewTeacher)
	if err := c.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tchr, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tchr)
}

func (api *teacherAPI) teacherQuery(c echo.Context) error {
	res, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (api *teacherAPI) teacherRetrieve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tchr, err := api.service.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tchr)
}

func (api *teacherAPI) teacherUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	origTchr, err := api.service.GetByID(id)
	if err != nil {
		return err
	}

	data := new(teacher.UpdateTeacher)
	if err = c.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(origTchr); err != nil {
		return err
	}

	tchr, err := api.service.Update(id, *data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tchr)
}

func (api *teacherAPI) teacherDestroy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = api.service.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (api *teacherAPI) teacherClasses(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	tchr, err := api.service.GetByID(id)
	if err != nil {
		return err
	}
	classes, err := api.service.Classes(tchr.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}
