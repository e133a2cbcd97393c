package application

import (
	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"
)

// Bundle is the body clients send to save or render an application
type Bundle struct {
	JobURL      string             `json:"job_url" binding:"required"`
	JobAnalysis *model.JobAnalysis `json:"job_analysis" binding:"required"`
	ResumeData  *model.ResumeData  `json:"resume_data" binding:"required"`
	CoverLetter string             `json:"cover_letter" binding:"required"`
	CompanyName *string            `json:"company_name"`
	JobTitle    *string            `json:"job_title"`
}

func (b *Bundle) toNew() service.NewApplication {
	return service.NewApplication{
		JobURL:      b.JobURL,
		JobAnalysis: *b.JobAnalysis,
		ResumeData:  *b.ResumeData,
		CoverLetter: b.CoverLetter,
		CompanyName: b.CompanyName,
		JobTitle:    b.JobTitle,
	}
}
