package auth

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/gin-gonic/gin"
)

// Me returns the caller. The auth middleware already loaded the record.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, c.MustGet("user").(*model.User))
}
