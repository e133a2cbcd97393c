package auth

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=255"`
	Name     string `json:"name" binding:"required"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

func newTokenResponse(s *service.Session) tokenResponse {
	return tokenResponse{
		AccessToken: s.Token,
		TokenType:   "bearer",
		User:        s.User,
	}
}

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	s, err := d.Accounts.Register(c.Request.Context(), data.Email, data.Password, data.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Info("User registered", zap.String("userID", s.User.ID), zap.String("requestID", requestID))
	c.JSON(http.StatusOK, newTokenResponse(s))
}
