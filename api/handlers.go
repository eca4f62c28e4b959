package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/akarpov/fintrack/db"
	"github.com/akarpov/fintrack/models"
)

type Handler struct {
	storage   *db.Storage
	jwtSecret string
}

func NewHandler(s *db.Storage, jwtSecret string) *Handler {
	return &Handler{storage: s, jwtSecret: jwtSecret}
}

// parseID достаёт числовой id из пути. При ошибке сам отвечает 400.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func serverError(c *gin.Context, err error, msg string) {
	logrus.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}
