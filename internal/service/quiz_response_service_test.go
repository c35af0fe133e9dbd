package service

import (
	"context"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocker 内存版提交锁，busy 为真时模拟并发占用
type fakeLocker struct {
	busy     bool
	acquired int
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, quizID, studentID uint) (bool, error) {
	if l.busy {
		return false, nil
	}
	l.acquired++
	return true, nil
}

func (l *fakeLocker) Release(ctx context.Context, quizID, studentID uint) {
	l.released++
}

func TestSubmitScoresAndPersistsTree(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	// 共 3 个正确选项，勾中 1 个正确、0 个错误：1/3*100 = 33.33
	response, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
		{Number: 2, Letters: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 33.33, response.Score)

	saved, err := env.respService.GetForStudent(quiz.ID, env.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, saved.Score)
	require.Len(t, saved.Questions, 2)

	// 稀疏存储：只有勾选过的选项落行
	require.Len(t, saved.Questions[0].Selected, 1)
	assert.Len(t, saved.Questions[1].Selected, 0)
	require.NotNil(t, saved.Questions[0].Selected[0].Answer)
	assert.Equal(t, "A", saved.Questions[0].Selected[0].Answer.Letter)
}

func TestSubmitMixedSelections(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	// 勾中 2 个正确 1 个错误：2/3*100 - 0.1 = 66.57
	response, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A", "B"}},
		{Number: 2, Letters: []string{"C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 66.57, response.Score)
}

func TestSubmitDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"B"}},
	})
	assert.ErrorIs(t, err, util.ErrDuplicateResponse)

	var count int64
	require.NoError(t, env.db.Model(&model.QuizResponse{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitOtherDepartmentRejected(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	outsider := env.createOutsider(t)
	_, err := env.respService.Submit(context.Background(), quiz.ID, outsider, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 越界提交不落任何作答行
	var count int64
	require.NoError(t, env.db.Model(&model.QuizResponse{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// 无院系的账号同样拒绝
	stray := &model.User{Name: "Pat", Email: "pat@example.com", Password: "x", Role: model.Student}
	require.NoError(t, env.db.Create(stray).Error)
	_, err = env.respService.Submit(context.Background(), quiz.ID, stray, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCreateTreeEnforcesOneResponsePerStudent(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")

	first := &model.QuizResponse{QuizID: quiz.ID, StudentID: env.student.ID, Score: 50}
	require.NoError(t, env.respRepo.CreateTree(first))

	// 绕过服务层预检，唯一索引兜底
	second := &model.QuizResponse{QuizID: quiz.ID, StudentID: env.student.ID, Score: 60}
	err := env.respRepo.CreateTree(second)
	assert.ErrorIs(t, err, util.ErrDuplicateResponse)
}

func TestSubmitInvalidReferenceLeavesNothing(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	// 不存在的题号
	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 99, Letters: []string{"A"}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidAnswerReference)

	// 不存在的字母
	_, err = env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"Z"}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidAnswerReference)

	// 拒绝的提交不留任何痕迹，学生之后仍可正常提交
	for _, m := range []interface{}{
		&model.QuizResponse{}, &model.QuizResponseQuestion{}, &model.QuizResponseAnswer{},
	} {
		var count int64
		require.NoError(t, env.db.Model(m).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}

	_, err = env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	assert.NoError(t, err)
}

func TestSubmitLifecycleGates(t *testing.T) {
	env := newTestEnv(t)

	title := "Future quiz"
	start := time.Now().Add(time.Hour)
	scheduled, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), scheduled.ID, env.student, nil)
	assert.ErrorIs(t, err, util.ErrQuizNotSubmittable)

	title = "Expired quiz"
	start = time.Now().Add(-24 * time.Hour)
	expired, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), expired.ID, env.student, nil)
	assert.ErrorIs(t, err, util.ErrQuizNotSubmittable)

	// 开启补交后可提交
	grace := true
	_, err = env.quizService.UpdateQuiz(expired.ID, QuizReq{AcceptAfterExpired: &grace})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), expired.ID, env.student, nil)
	assert.NoError(t, err)
}

func TestSubmitAcceptingAnswersToggle(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	off := false
	_, err := env.quizService.UpdateQuiz(quiz.ID, QuizReq{AcceptingAnswers: &off})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	assert.ErrorIs(t, err, util.ErrQuizNotSubmittable)
}

func TestSubmitLockBusy(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	locker := &fakeLocker{busy: true}
	env.respService.Locker = locker

	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	assert.ErrorIs(t, err, util.ErrSubmitInProgress)

	locker.busy = false
	_, err = env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestListForReview(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	dept := env.classroom.DepartmentID
	second := &model.User{Name: "Tia", Email: "tia@example.com", Password: "x", Role: model.Student, DepartmentID: &dept}
	require.NoError(t, env.db.Create(second).Error)

	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
		{Number: 2, Letters: []string{"A", "C"}},
	})
	require.NoError(t, err)

	_, err = env.respService.Submit(context.Background(), quiz.ID, second, []SelectionReq{
		{Number: 1, Letters: []string{"B"}},
	})
	require.NoError(t, err)

	responses, err := env.respService.ListForReview(quiz.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	// 满分：3/3*100
	assert.Equal(t, float64(100), responses[0].Score)
	require.NotNil(t, responses[0].Student)
	assert.Equal(t, "Sam", responses[0].Student.Name)

	// 只勾了一个错误选项：0 - 0.1 -> 地板 0
	assert.Equal(t, float64(0), responses[1].Score)
	require.Len(t, responses[1].Questions, 1)
	require.Len(t, responses[1].Questions[0].Selected, 1)
	assert.Equal(t, "B", responses[1].Questions[0].Selected[0].Answer.Letter)
}
