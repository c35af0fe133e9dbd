package model

// QuizResponse 学生对一次测验的完整作答。(quiz_id, student_id) 的唯一索引
// 在存储层兜底并发重复提交。
// swagger:model QuizResponse
type QuizResponse struct {
	BaseModel
	QuizID    uint                   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_quiz_student" json:"quizId"`
	StudentID uint                   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_quiz_student" json:"studentId"`
	Student   *User                  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Score     float64                `gorm:"type:decimal(5,2);default:0" json:"score"`
	Questions []QuizResponseQuestion `gorm:"foreignKey:ResponseID" json:"questions,omitempty"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

// QuizResponseQuestion 作答中遇到的每道题一行
type QuizResponseQuestion struct {
	BaseModel
	ResponseID uint                 `gorm:"index;type:bigint unsigned" json:"responseId"`
	QuestionID uint                 `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question   *QuizQuestion        `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Selected   []QuizResponseAnswer `gorm:"foreignKey:ResponseQuestionID" json:"selected,omitempty"`
}

func (QuizResponseQuestion) TableName() string {
	return "quiz_response_questions"
}

// QuizResponseAnswer 只记录学生勾选了的答案，未勾选不落行，
// 评分时以缺行作为否定证据。
type QuizResponseAnswer struct {
	BaseModel
	ResponseQuestionID uint        `gorm:"index;type:bigint unsigned" json:"responseQuestionId"`
	AnswerID           uint        `gorm:"index;type:bigint unsigned" json:"answerId"`
	Answer             *QuizAnswer `gorm:"foreignKey:AnswerID" json:"answer,omitempty"`
}

func (QuizResponseAnswer) TableName() string {
	return "quiz_response_answers"
}
