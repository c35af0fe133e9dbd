package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizTitleTaken     = errors.New("quiz title already used in this classroom")
	ErrQuizNotStarted     = errors.New("quiz has not started yet")
	ErrQuizNotSubmittable = errors.New("quiz is not accepting answers")

	// 测验已有作答，题目结构被永久冻结
	ErrAuthoringLocked = errors.New("quiz already has responses, questions are locked")
	// 同一学生对同一测验重复提交
	ErrDuplicateResponse = errors.New("response already submitted for this quiz")
	// 提交引用了该题不存在的答案字母
	ErrInvalidAnswerReference = errors.New("selected answer does not exist for this question")

	ErrAlreadySubmitted = errors.New("assignment already submitted")
	ErrSubmitInProgress = errors.New("another submission for this quiz is in progress")
)
