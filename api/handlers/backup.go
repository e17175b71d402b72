package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billycuesta/nurayoga/core/backup"
)

type backupAPI struct {
	service *backup.Service
}

func RegisterBackupAPI(g *echo.Group, service *backup.Service) {
	a := backupAPI{service: service}

	bg := g.Group("/backup")
	bg.GET("/export", a.export)
	bg.POST("/import", a.restore)
}

func (api *backupAPI) export(c echo.Context) error {
	doc, err := api.service.Export()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// restore replaces the whole dataset with the uploaded document.
func (api *backupAPI) restore(c echo.Context) error {
	doc := new(backup.Document)
	if err := c.Bind(doc); err != nil {
		return err
	}
	if err := api.service.Import(*doc); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
