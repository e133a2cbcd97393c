package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"gorm.io/gorm"
)

// ListLimit caps how many applications a single list call returns
const ListLimit = 100

// NewApplication is the bundle a client asks to save
type NewApplication struct {
	JobURL      string
	JobAnalysis model.JobAnalysis
	ResumeData  model.ResumeData
	CoverLetter string
	CompanyName *string
	JobTitle    *string
}

// Applications stores saved bundles. Every query is filtered by the owner so
// an application that belongs to someone else looks exactly like one that
// doesn't exist.
type Applications struct {
	db  *gorm.DB
	now func() time.Time
}

func NewApplications(db *gorm.DB) *Applications {
	return &Applications{
		db:  db,
		now: time.Now,
	}
}

func (a *Applications) Create(ctx context.Context, userID string, in NewApplication) (*model.Application, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application ID, %w", err)
	}

	app := &model.Application{
		ID:          id,
		UserID:      userID,
		JobURL:      in.JobURL,
		JobAnalysis: in.JobAnalysis,
		ResumeData:  in.ResumeData,
		CoverLetter: in.CoverLetter,
		CompanyName: in.CompanyName,
		JobTitle:    in.JobTitle,
		CreatedAt:   a.now().UTC(),
	}

	if err := a.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to save application, %w", err)
	}

	return app, nil
}

// List returns the newest ListLimit applications of userID
func (a *Applications) List(ctx context.Context, userID string) ([]model.Application, error) {
	entries := []model.Application{}

	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(ListLimit).
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications, %w", err)
	}

	return entries, nil
}

func (a *Applications) Get(ctx context.Context, userID, id string) (*model.Application, error) {
	var app model.Application

	err := a.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&app).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch application, %w", err)
	}

	return &app, nil
}

func (a *Applications) Delete(ctx context.Context, userID, id string) error {
	r := a.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Application{})
	if r.Error != nil {
		return fmt.Errorf("failed to delete application, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
