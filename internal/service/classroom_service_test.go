package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassroomService(env *testEnv) *ClassroomService {
	return NewClassroomService(
		env.classRepo,
		repository.NewUserRepository(env.db),
		repository.NewDepartmentRepository(env.db),
	)
}

func TestClassroomVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := newClassroomService(env)

	// 另一个院系的课堂学生不可见
	otherBatch := &model.Batch{Year: "2025"}
	require.NoError(t, env.db.Create(otherBatch).Error)
	otherDept := &model.Department{BatchID: otherBatch.ID, Name: "Physics"}
	require.NoError(t, env.db.Create(otherDept).Error)
	foreign := &model.Classroom{OwnerID: env.lecturer.ID, DepartmentID: otherDept.ID, Name: "Mechanics"}
	require.NoError(t, env.db.Create(foreign).Error)

	mine, err := svc.ListForUser(env.student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, env.classroom.ID, mine[0].ID)

	// 讲师看到自己创建的全部课堂，跨院系
	owned, err := svc.ListForUser(env.lecturer)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestClassroomCanAccess(t *testing.T) {
	env := newTestEnv(t)
	svc := newClassroomService(env)

	ok, err := svc.CanAccess(env.student, env.classroom.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccess(env.lecturer, env.classroom.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	stranger := &model.User{Name: "Nora", Email: "nora@example.com", Password: "x", Role: model.Lecturer}
	require.NoError(t, env.db.Create(stranger).Error)
	ok, err = svc.CanAccess(stranger, env.classroom.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClassroomUpdateOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := newClassroomService(env)

	stranger := &model.User{Name: "Nora", Email: "nora@example.com", Password: "x", Role: model.Lecturer}
	require.NoError(t, env.db.Create(stranger).Error)

	name := "Renamed"
	_, err := svc.Update(env.classroom.ID, stranger.ID, ClassroomReq{Name: &name})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := svc.Update(env.classroom.ID, env.lecturer.ID, ClassroomReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}
