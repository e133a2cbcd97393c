package application

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data Bundle
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	app, err := d.Applications.Create(c.Request.Context(), userID, data.toNew())
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Debug("Application saved", zap.String("id", app.ID), zap.String("requestID", requestID))
	c.JSON(http.StatusOK, app)
}
