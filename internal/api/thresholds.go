package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/ipmi2go/internal/bands"
	"github.com/qdm12/reprint"
)

func registerThresholdEndpoints(rest *echo.Echo, table *bands.Table) {
	rest.GET("/thresholds/", func(c echo.Context) error {
		data := reprint.This(*table)
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
}
