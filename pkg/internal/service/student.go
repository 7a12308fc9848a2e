package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	ctxPkg "github.com/sakuray/campusvault/pkg/context"
	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/storage/db"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

// StudentService 学生档案服务.
type StudentService struct {
	dbClient *db.Client
}

// NewStudentServiceWith 以显式依赖构造 StudentService.
func NewStudentServiceWith(dbClient *db.Client) *StudentService {
	return &StudentService{dbClient: dbClient}
}

// NewStudentService 从请求上下文中取出存储客户端构造服务.
func NewStudentService(c context.Context) *StudentService {
	return &StudentService{dbClient: ctxPkg.GetDBClient(c)}
}

// Add 新增学生，姓名或学号冲突时返回校验错误.
func (ss *StudentService) Add(ctx context.Context, req *types.StudentAddRequest) (*model.Student, error) {
	if err := ss.checkConflict(ctx, req.StudentName, req.StudentNumber, 0); err != nil {
		return nil, err
	}

	student := model.Student{
		StudentName:   req.StudentName,
		StudentNumber: req.StudentNumber,
		School:        req.School,
		ClassName:     req.ClassName,
		Chinese:       req.Chinese,
		Math:          req.Math,
		English:       req.English,
		Physics:       req.Physics,
		Chemistry:     req.Chemistry,
	}

	if err := ss.dbClient.WithContext(ctx).Create(&student).Error; err != nil {
		return nil, NewStorageError("student insert", err)
	}

	return &student, nil
}

// Update 按主键覆盖学生的可编辑字段.
func (ss *StudentService) Update(ctx context.Context, req *types.StudentUpdateRequest) (*model.Student, error) {
	student, err := ss.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := ss.checkConflict(ctx, req.StudentName, req.StudentNumber, req.ID); err != nil {
		return nil, err
	}

	student.StudentName = req.StudentName
	student.StudentNumber = req.StudentNumber
	student.School = req.School
	student.ClassName = req.ClassName
	student.Chinese = req.Chinese
	student.Math = req.Math
	student.English = req.English
	student.Physics = req.Physics
	student.Chemistry = req.Chemistry

	if err := ss.dbClient.WithContext(ctx).Save(student).Error; err != nil {
		return nil, NewStorageError("student update", err)
	}

	return student, nil
}

// Delete 按主键删除学生，不存在时返回 NotFoundError.
func (ss *StudentService) Delete(ctx context.Context, id uint) error {
	if _, err := ss.find(ctx, id); err != nil {
		return err
	}

	if err := ss.dbClient.WithContext(ctx).Delete(&model.Student{}, id).Error; err != nil {
		return NewStorageError("student delete", err)
	}

	return nil
}

// Page 分页查询学生，Keyword 非空时按姓名或学号模糊匹配.
func (ss *StudentService) Page(ctx context.Context, q *types.StudentPageQuery) (*types.Page[model.Student], error) {
	if q.Page < 0 {
		return nil, NewValidationError("page must not be negative")
	}

	q.Normalize()

	matched := func() *gorm.DB {
		query := ss.dbClient.WithContext(ctx).Model(&model.Student{})
		if q.Keyword != "" {
			pattern := "%" + q.Keyword + "%"
			query = query.Where("student_name LIKE ? OR student_number LIKE ?", pattern, pattern)
		}

		return query
	}

	var total int64
	if err := matched().Count(&total).Error; err != nil {
		return nil, NewStorageError("student count", err)
	}

	var students []model.Student

	err := matched().
		Order("id ASC").
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Find(&students).Error
	if err != nil {
		return nil, NewStorageError("student list", err)
	}

	page := types.NewPage(students, q.Page, q.Size, total)

	return &page, nil
}

// FindByName 按姓名精确查找.
func (ss *StudentService) FindByName(ctx context.Context, name string) (*model.Student, error) {
	var student model.Student

	err := ss.dbClient.WithContext(ctx).
		Where("student_name = ?", name).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("student not found: name=%s", name)
	}

	if err != nil {
		return nil, NewStorageError("student query", err)
	}

	return &student, nil
}

// find 按主键加载学生.
func (ss *StudentService) find(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student

	err := ss.dbClient.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("student not found: id=%d", id)
	}

	if err != nil {
		return nil, NewStorageError("student query", err)
	}

	return &student, nil
}

// checkConflict 检查姓名和学号唯一性，excludeID 用于更新场景排除自身.
func (ss *StudentService) checkConflict(ctx context.Context, name, number string, excludeID uint) error {
	var count int64

	query := ss.dbClient.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_name = ? OR student_number = ?", name, number)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return NewStorageError("student lookup", err)
	}

	if count > 0 {
		return NewValidationError("student name or number already exists")
	}

	return nil
}
