package application

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"

	"github.com/gin-gonic/gin"
)

// List returns the caller's newest applications
func List(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	entries, err := d.Applications.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func Fetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	app, err := d.Applications.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
