package job

import (
	"net/http"

	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type analyzeBody struct {
	URL string `json:"url" binding:"required"`
}

func Analyze(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data analyzeBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Invalid(c, err)
		return
	}

	analysis, err := d.Scraper.Analyze(c.Request.Context(), data.URL)
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Debug("Job posting analyzed",
		zap.String("url", data.URL),
		zap.String("tone", string(analysis.Tone)),
		zap.String("requestID", requestID),
	)

	c.JSON(http.StatusOK, analysis)
}
