package model

// Post 课堂公告
// swagger:model Post
type Post struct {
	BaseModel
	OwnerID     uint   `gorm:"index;type:bigint unsigned" json:"ownerId"`
	ClassroomID uint   `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Title       string `gorm:"size:300;not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
}

func (Post) TableName() string {
	return "posts"
}
