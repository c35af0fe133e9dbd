package model

import "time"

// swagger:model Meeting
type Meeting struct {
	BaseModel
	OwnerID     uint      `gorm:"index;type:bigint unsigned" json:"ownerId"`
	ClassroomID uint      `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Topic       string    `gorm:"size:300;not null" json:"topic"`
	Start       time.Time `json:"start"`
	Duration    int       `gorm:"default:60" json:"duration"` // Minutes
	JoinURL     string    `gorm:"size:500" json:"joinUrl"`
}

func (Meeting) TableName() string {
	return "meetings"
}

func (m *Meeting) End() time.Time {
	return m.Start.Add(time.Duration(m.Duration) * time.Minute)
}

func (m *Meeting) IsToday(now time.Time) bool {
	y1, m1, d1 := m.Start.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (m *Meeting) IsExpired(now time.Time) bool {
	return now.After(m.End())
}
