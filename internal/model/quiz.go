package model

import "time"

// QuizState 完全由墙钟时间推导，不落库
type QuizState string

const (
	QuizScheduled QuizState = "scheduled"
	QuizLive      QuizState = "live"
	QuizExpired   QuizState = "expired"
)

// Quiz 同一课堂内标题唯一
// swagger:model Quiz
type Quiz struct {
	BaseModel
	ClassroomID        uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_classroom_title" json:"classroomId"`
	OwnerID            uint      `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Title              string    `gorm:"size:300;not null;uniqueIndex:idx_classroom_title" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	Start              time.Time `json:"start"`
	Duration           int       `gorm:"default:30" json:"duration"` // Minutes
	AcceptAfterExpired bool      `gorm:"default:false" json:"acceptAfterExpired"`
	AcceptingAnswers   bool      `gorm:"default:true" json:"acceptingAnswers"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) EndsAt() time.Time {
	return q.Start.Add(time.Duration(q.Duration) * time.Minute)
}

// State 推导测验的时间状态：scheduled / live / expired
func (q *Quiz) State(now time.Time) QuizState {
	if now.Before(q.Start) {
		return QuizScheduled
	}
	if now.Before(q.EndsAt()) {
		return QuizLive
	}
	return QuizExpired
}

// Submittable 判断当前时刻是否接受新的作答：
// (live 或 expired+AcceptAfterExpired) 且 AcceptingAnswers 为真
func (q *Quiz) Submittable(now time.Time) bool {
	if !q.AcceptingAnswers {
		return false
	}
	switch q.State(now) {
	case QuizLive:
		return true
	case QuizExpired:
		return q.AcceptAfterExpired
	default:
		return false
	}
}
