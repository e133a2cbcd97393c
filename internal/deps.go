package internal

import (
	"github.com/molliqajbedrush-arch/enerbewwer/internal/service"

	"gorm.io/gorm"
)

// Deps is everything a handler may need. Archive is nil when résumés are not
// kept.
type Deps struct {
	DB           *gorm.DB
	Accounts     *service.Accounts
	Applications *service.Applications
	Scraper      *service.JobScraper
	Resumes      *service.ResumeExtractor
	Letters      *service.LetterGenerator
	Renderer     *service.DocumentRenderer
	Archive      service.Archive

	MaxUploadSize int64
}
