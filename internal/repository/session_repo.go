package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/veritest/assess-api/internal/models"
)

// SessionRepository resolves login sessions issued by the auth process.
type SessionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Session, error)
	GetByToken(ctx context.Context, token string) (models.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository instantiates the repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Preload("Candidate").First(&session, id).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Preload("Candidate").Where("token = ?", token).First(&session).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}
