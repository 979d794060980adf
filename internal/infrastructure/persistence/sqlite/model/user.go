package model

type User struct {
	UserID       int64  `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;type:text;not null;uniqueIndex:ux_users_username"`
	FirstName    string `gorm:"column:first_name;type:text;not null;default:''"`
	LastName     string `gorm:"column:last_name;type:text;not null;default:''"`
	Email        string `gorm:"column:email;type:text;not null;default:''"`
	PasswordHash string `gorm:"column:password_hash;type:text;not null"`
	IsActive     bool   `gorm:"column:is_active;not null;default:1"`
}

func (User) TableName() string {
	return "users"
}
