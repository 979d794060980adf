package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) ListIssueComments(ctx context.Context, issueID int64) ([]ports.Comment, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Comment
	if err := db.
		Where("content_type = ? AND object_id = ?", ports.CommentContentIssue, issueID).
		Order("comment_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query issue comments")
	}

	authorIDs := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		authorIDs[row.AuthorID] = struct{}{}
	}
	authors := make(map[int64]model.User, len(authorIDs))
	if len(authorIDs) > 0 {
		var userRows []model.User
		if err := db.Where("user_id IN ?", keys(authorIDs)).Find(&userRows).Error; err != nil {
			return nil, errs.Wrap(err, "load comment authors")
		}
		for _, userRow := range userRows {
			authors[userRow.UserID] = userRow
		}
	}

	items := make([]ports.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapComment(row, authors[row.AuthorID]))
	}
	return items, nil
}

func (r *CommentRepository) GetComment(ctx context.Context, id int64) (ports.Comment, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Comment{}, err
	}

	var row model.Comment
	if err := db.Where("comment_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Comment{}, ports.ErrCommentNotFound
		}
		return ports.Comment{}, errs.Wrap(err, "query comment")
	}

	var author model.User
	if err := db.Where("user_id = ?", row.AuthorID).First(&author).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Comment{}, errs.Wrap(err, "load comment author")
	}
	return mapComment(row, author), nil
}

// CreateComment stamps created and updated with the same instant.
func (r *CommentRepository) CreateComment(ctx context.Context, comment *ports.Comment) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	now := nowUTC()
	row := model.Comment{
		ContentType: comment.ContentType,
		ObjectID:    comment.ObjectID,
		AuthorID:    comment.AuthorID,
		Created:     now,
		Updated:     now,
		Text:        comment.Text,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert comment")
	}

	comment.ID = row.CommentID
	comment.Created = row.Created
	comment.Updated = row.Updated
	return nil
}

func (r *CommentRepository) SaveComment(ctx context.Context, comment *ports.Comment) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	now := nowUTC()
	res := db.Model(&model.Comment{}).
		Where("comment_id = ?", comment.ID).
		Updates(map[string]any{"text": comment.Text, "updated": now})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update comment")
	}
	if res.RowsAffected == 0 {
		return ports.ErrCommentNotFound
	}

	comment.Updated = now
	return nil
}
