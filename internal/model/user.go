package model

type UserRole string

const (
	Guest        UserRole = "guest"
	Member       UserRole = "user"
	Admin        UserRole = "admin"
	MetaAdmin    UserRole = "metaadmin"
	Undetermined UserRole = "undetermined"
)

// ParseRole 未识别的角色一律视为 undetermined（无特权）
func ParseRole(s string) UserRole {
	switch UserRole(s) {
	case Guest, Member, Admin, MetaAdmin:
		return UserRole(s)
	default:
		return Undetermined
	}
}

// IsPrivileged 只有 admin 和 metaadmin 可以看到管理入口
func (r UserRole) IsPrivileged() bool {
	return r == Admin || r == MetaAdmin
}

// swagger:model User
type User struct {
	BaseModel
	Email    string   `gorm:"size:191;uniqueIndex;not null" json:"email"`
	FullName string   `gorm:"size:100" json:"fullName"`
	Role     UserRole `gorm:"size:20;default:'user'" json:"role"`
	Language string   `gorm:"size:10;default:'en'" json:"language"`
}

func (User) TableName() string {
	return "users"
}
