package model

import "time"

type Session struct {
	Token     string    `gorm:"column:token;type:text;primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index:ix_sessions_user"`
	Settings  string    `gorm:"column:settings;type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

func (Session) TableName() string {
	return "sessions"
}
