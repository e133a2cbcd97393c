package application

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	if err := d.Applications.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bewerbung gelöscht"})
}
