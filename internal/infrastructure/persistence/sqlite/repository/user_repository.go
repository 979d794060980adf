package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]ports.User, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.User
	if err := db.Where("is_active = ?", true).Order("username asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query users")
	}

	items := make([]ports.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapUser(row))
	}
	return items, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (ports.User, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.User{}, err
	}

	var row model.User
	if err := db.Where("user_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, ports.ErrUserNotFound
		}
		return ports.User{}, errs.Wrap(err, "query user")
	}
	return mapUser(row), nil
}

func (r *UserRepository) GetCredentials(ctx context.Context, username string) (ports.User, string, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.User{}, "", err
	}

	var row model.User
	if err := db.Where("username = ? AND is_active = ?", username, true).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, "", ports.ErrUserNotFound
		}
		return ports.User{}, "", errs.Wrap(err, "query user by username")
	}
	return mapUser(row), row.PasswordHash, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *ports.User, passwordHash string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.User{
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert user")
	}

	user.ID = row.UserID
	user.IsActive = true
	return nil
}

// DeleteUser clears assignee references but refuses while the user is still
// a reporter on any issue.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	var reported int64
	if err := db.Model(&model.Issue{}).Where("reporter_id = ?", id).Count(&reported).Error; err != nil {
		return errs.Wrap(err, "count reported issues")
	}
	if reported > 0 {
		return ports.ErrReferenced
	}

	if err := db.Model(&model.Issue{}).
		Where("assignee_id = ?", id).
		Update("assignee_id", nil).Error; err != nil {
		return errs.Wrap(err, "unassign issues")
	}

	if err := db.Where("user_id = ?", id).Delete(&model.Session{}).Error; err != nil {
		return errs.Wrap(err, "delete user sessions")
	}

	res := db.Where("user_id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}
