package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *ports.Session) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Session{
		Token:     session.Token,
		UserID:    session.UserID,
		Settings:  session.Settings,
		CreatedAt: session.Created,
		ExpiresAt: session.Expires,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert session")
	}
	return nil
}

// GetSession returns an unexpired session with its user loaded; an expired
// row is deleted on sight.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (ports.Session, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Session{}, err
	}

	var row model.Session
	if err := db.Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Session{}, ports.ErrSessionNotFound
		}
		return ports.Session{}, errs.Wrap(err, "query session")
	}

	if !row.ExpiresAt.After(nowUTC()) {
		_ = db.Where("token = ?", token).Delete(&model.Session{}).Error
		return ports.Session{}, ports.ErrSessionNotFound
	}

	var userRow model.User
	if err := db.Where("user_id = ? AND is_active = ?", row.UserID, true).First(&userRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Session{}, ports.ErrSessionNotFound
		}
		return ports.Session{}, errs.Wrap(err, "load session user")
	}

	return ports.Session{
		Token:    row.Token,
		UserID:   row.UserID,
		User:     mapUser(userRow),
		Settings: row.Settings,
		Created:  row.CreatedAt,
		Expires:  row.ExpiresAt,
	}, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return errs.Wrap(err, "delete session")
	}
	return nil
}

func (r *SessionRepository) UpdateSessionSettings(ctx context.Context, token string, settings string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	res := db.Model(&model.Session{}).Where("token = ?", token).Update("settings", settings)
	if res.Error != nil {
		return errs.Wrap(res.Error, "update session settings")
	}
	if res.RowsAffected == 0 {
		return ports.ErrSessionNotFound
	}
	return nil
}
