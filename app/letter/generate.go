package letter

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/gin-gonic/gin"
)

type generateBody struct {
	JobAnalysis *model.JobAnalysis `json:"job_analysis" binding:"required"`
	ResumeData  *model.ResumeData  `json:"resume_data" binding:"required"`
}

func Generate(c *gin.Context, d *internal.Deps) {
	var data generateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	letter, err := d.Letters.Generate(c.Request.Context(), *data.JobAnalysis, *data.ResumeData)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, letter)
}
