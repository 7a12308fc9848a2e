package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/types"
	"github.com/sakuray/campusvault/pkg/rule"
)

// AddStudent 新增学生.
func AddStudent(c *gin.Context) {
	var req types.StudentAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewStudentService(c.Request.Context())

	student, err := svc.Add(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudent 更新学生.
func UpdateStudent(c *gin.Context) {
	var req types.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewStudentService(c.Request.Context())

	student, err := svc.Update(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent 删除学生.
func DeleteStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc := service.NewStudentService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PageStudents 分页查询学生，可选关键词.
func PageStudents(c *gin.Context) {
	var q types.StudentPageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rule.ValidateStruct(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewStudentService(c.Request.Context())

	page, err := svc.Page(c.Request.Context(), &q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// SearchStudent 按姓名精确查找学生.
func SearchStudent(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	svc := service.NewStudentService(c.Request.Context())

	student, err := svc.FindByName(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}
