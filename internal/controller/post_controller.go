package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService      *service.PostService
	ClassroomService *service.ClassroomService
	AuthService      *service.AuthService
}

func NewPostController(postService *service.PostService, classroomService *service.ClassroomService, authService *service.AuthService) *PostController {
	return &PostController{PostService: postService, ClassroomService: classroomService, AuthService: authService}
}

// Create godoc
// @Summary 发布课堂帖子
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Param   body body service.PostReq true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/classrooms/{id}/posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.Create(claims.UserID, util.ParseID(ctx), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, post)
}

// Update godoc
// @Summary 更新帖子
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "帖子ID"
// @Param   body body service.PostReq true "帖子字段"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/posts/{id} [put]
func (c *PostController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.Update(util.ParseID(ctx), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// Delete godoc
// @Summary 删除帖子
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "帖子ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id} [delete]
func (c *PostController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PostService.Delete(util.ParseID(ctx), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 课堂帖子列表
// @Tags 帖子
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/classrooms/{id}/posts [get]
func (c *PostController) List(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	classroomID := util.ParseID(ctx)
	ok, err := c.ClassroomService.CanAccess(user, classroomID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}

	posts, err := c.PostService.ListByClassroom(classroomID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}
