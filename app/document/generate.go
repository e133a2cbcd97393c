package document

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/application"
	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"

	"github.com/gin-gonic/gin"
)

// Generate renders the bundle's cover letter and sends it as a download
func Generate(c *gin.Context, d *internal.Deps) {
	var data application.Bundle
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	out, err := d.Renderer.Render(data.CoverLetter)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.Header("Content-Disposition", ContentDisposition(service.DownloadName(data.CompanyName)))
	c.Data(http.StatusOK, "application/pdf", out)
}
