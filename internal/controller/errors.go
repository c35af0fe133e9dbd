package controller

import (
	"errors"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondServiceError 将服务层哨兵错误映射为 HTTP 状态码
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrQuizNotStarted):
		util.Error(ctx, 403, "测验尚未开始")
	case errors.Is(err, util.ErrQuizNotSubmittable):
		util.Error(ctx, 403, "测验当前不接受作答")
	case errors.Is(err, util.ErrQuizTitleTaken):
		util.Conflict(ctx, "同一课堂内测验标题重复")
	case errors.Is(err, util.ErrAuthoringLocked):
		util.Conflict(ctx, "测验已有作答记录，题目不可再修改")
	case errors.Is(err, util.ErrDuplicateResponse):
		util.Conflict(ctx, "已提交过该测验")
	case errors.Is(err, util.ErrSubmitInProgress):
		util.Conflict(ctx, "提交正在处理中，请勿重复提交")
	case errors.Is(err, util.ErrAlreadySubmitted):
		util.Conflict(ctx, "已提交过该作业")
	case errors.Is(err, util.ErrInvalidAnswerReference):
		util.UnprocessableEntity(ctx, "作答引用了不存在的题目或选项")
	default:
		util.LogInternalError(ctx, err)
	}
}
