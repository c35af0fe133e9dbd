package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseID 解析路径参数 id，非法或缺失时返回 0，
// 查询层会把 0 当作不存在的记录处理
func ParseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
