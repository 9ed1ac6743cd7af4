package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppName identifies the service in the health check response.
const AppName = "Sticky Notes Pro"

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "app": AppName})
}
