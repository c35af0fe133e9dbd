package model

// QuizQuestion 题号由出题者给定并原样保存，读取时按题号升序排列
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID  uint         `gorm:"index;type:bigint unsigned" json:"quizId"`
	Number  int          `gorm:"not null" json:"number"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Answers []QuizAnswer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAnswer 候选答案，字母 A-F 由出题者给定。一题可以有零个、
// 一个或多个正确答案（多选语义）。
// swagger:model QuizAnswer
type QuizAnswer struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Letter     string `gorm:"size:1;not null" json:"letter"`
	Text       string `gorm:"type:text" json:"text"`
	Correct    bool   `gorm:"default:false" json:"correct"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
