package model

import "time"

type Comment struct {
	CommentID   int64     `gorm:"column:comment_id;primaryKey;autoIncrement"`
	ContentType string    `gorm:"column:content_type;type:text;not null;index:ix_comments_content,priority:1"`
	ObjectID    int64     `gorm:"column:object_id;not null;index:ix_comments_content,priority:2"`
	AuthorID    int64     `gorm:"column:author_id;not null"`
	Created     time.Time `gorm:"column:created;not null"`
	Updated     time.Time `gorm:"column:updated;not null"`
	Text        string    `gorm:"column:text;type:text;not null;default:''"`
}

func (Comment) TableName() string {
	return "comments"
}
