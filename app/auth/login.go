package auth

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=255"`
}

func Login(c *gin.Context, d *internal.Deps) {
	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	s, err := d.Accounts.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(s))
}
