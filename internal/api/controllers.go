package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/ipmi2go/internal/controller"
)

func registerControllerEndpoints(rest *echo.Echo) {
	group := rest.Group("/controller")

	group.GET("/", getControllers)
	group.GET("/:"+urlParamId+"/", getController)
}

// returns the latest status of all running controllers
func getControllers(c echo.Context) error {
	data := make([]controller.Status, 0, controller.StatusMap.Count())
	for _, status := range controller.StatusMap.Items() {
		data = append(data, status)
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].ID < data[j].ID
	})
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getController(c echo.Context) error {
	id := c.Param(urlParamId)
	data, exists := controller.GetStatus(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
