package model

// User represents an admin account for the management API
type User struct {
	BaseModel
	Username     string `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	Role         string `gorm:"column:role;type:varchar(20);not null;default:admin" json:"role"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// User roles
const (
	RoleAdmin = "admin"
)
