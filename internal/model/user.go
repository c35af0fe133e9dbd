package model

import "time"

type UserRole string

const (
	Student  UserRole = "student"
	Lecturer UserRole = "lecturer"
	Admin    UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string      `gorm:"size:100;not null" json:"name"`
	Email        string      `gorm:"size:100;unique;not null" json:"email"`
	Password     string      `gorm:"size:100;not null" json:"-"`
	Role         UserRole    `gorm:"size:20;default:'student'" json:"role"`
	Gender       string      `gorm:"size:10" json:"gender"`
	Avatar       string      `gorm:"size:255" json:"avatar"`
	DepartmentID *uint       `gorm:"index;type:bigint unsigned" json:"departmentId,omitempty"` // 仅学生归属院系
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Disabled     bool        `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time   `json:"lastLogin"`
	LastSeen     time.Time   `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsLecturer() bool {
	return u.Role == Lecturer
}

func (u *User) IsStudent() bool {
	return u.Role == Student
}
