package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	OwnerID        uint      `gorm:"index;type:bigint unsigned" json:"ownerId"`
	ClassroomID    uint      `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Title          string    `gorm:"size:300;not null" json:"title"`
	Content        string    `gorm:"type:text" json:"content"`
	DateDue        time.Time `json:"dateDue"`
	DocumentURL    string    `gorm:"size:500" json:"documentUrl"`
	ReviewComplete bool      `gorm:"default:false" json:"reviewComplete"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentSubmission 每个学生对一份作业至多提交一次
// swagger:model AssignmentSubmission
type AssignmentSubmission struct {
	BaseModel
	AssignmentID uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_assignment_student" json:"assignmentId"`
	StudentID    uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_assignment_student" json:"studentId"`
	Student      *User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FileURL      string `gorm:"size:500" json:"fileUrl"`
	Grade        string `gorm:"size:10;default:'Not Graded'" json:"grade"`
	Graded       bool   `gorm:"default:false" json:"graded"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
