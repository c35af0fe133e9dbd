package model

// Classroom 由讲师创建并归属一个院系，该院系的学生自动可见
// swagger:model Classroom
type Classroom struct {
	BaseModel
	OwnerID      uint        `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Owner        *User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	DepartmentID uint        `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Name         string      `gorm:"size:300;not null" json:"name"`
	Subtitle     string      `gorm:"size:200" json:"subtitle"`
	Description  string      `gorm:"size:500" json:"description"`
	HeaderImg    string      `gorm:"size:255" json:"headerImg"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
