package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex" json:"email"`
	Username     string    `gorm:"column:username;type:varchar(150);not null;uniqueIndex" json:"username"`
	FirstName    string    `gorm:"column:first_name;type:varchar(150);not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;type:varchar(150);not null" json:"last_name"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为全局管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
