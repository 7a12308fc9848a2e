package service_test

import (
	"context"
	"testing"

	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

func sampleStudent(name, number string) *types.StudentAddRequest {
	score := 95.5

	return &types.StudentAddRequest{
		StudentName:   name,
		StudentNumber: number,
		School:        "No.1 Middle School",
		ClassName:     "3-2",
		Math:          &score,
	}
}

func TestStudentAdd(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))
	ctx := context.Background()

	student, err := ss.Add(ctx, sampleStudent("Zhang San", "20240001"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if student.ID == 0 {
		t.Error("student should have an ID")
	}

	if student.Math == nil || *student.Math != 95.5 {
		t.Errorf("math = %v, want 95.5", student.Math)
	}

	if student.Chinese != nil {
		t.Error("unset score should stay nil")
	}
}

func TestStudentAddConflict(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))
	ctx := context.Background()

	if _, err := ss.Add(ctx, sampleStudent("Li Si", "20240002")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// 姓名重复
	if _, err := ss.Add(ctx, sampleStudent("Li Si", "20240099")); !service.IsValidation(err) {
		t.Errorf("duplicate name: err = %v, want ValidationError", err)
	}

	// 学号重复
	if _, err := ss.Add(ctx, sampleStudent("Wang Wu", "20240002")); !service.IsValidation(err) {
		t.Errorf("duplicate number: err = %v, want ValidationError", err)
	}
}

func TestStudentUpdate(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))
	ctx := context.Background()

	student, err := ss.Add(ctx, sampleStudent("Zhao Liu", "20240003"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	req := &types.StudentUpdateRequest{ID: student.ID}
	req.StudentAddRequest = *sampleStudent("Zhao Liu", "20240003")
	req.ClassName = "3-5"
	req.Math = nil

	updated, err := ss.Update(ctx, req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.ClassName != "3-5" {
		t.Errorf("className = %q, want 3-5", updated.ClassName)
	}

	if updated.Math != nil {
		t.Error("math should be cleared to nil")
	}

	req.ID = 9999
	if _, err := ss.Update(ctx, req); !service.IsNotFound(err) {
		t.Errorf("missing id: err = %v, want NotFoundError", err)
	}
}

func TestStudentDelete(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))
	ctx := context.Background()

	student, err := ss.Add(ctx, sampleStudent("Sun Qi", "20240004"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := ss.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := ss.Delete(ctx, student.ID); !service.IsNotFound(err) {
		t.Errorf("second delete: err = %v, want NotFoundError", err)
	}
}

func TestStudentPageRejectsNegativePage(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))

	_, err := ss.Page(context.Background(), &types.StudentPageQuery{Page: -1})
	if !service.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestStudentPageAndSearch(t *testing.T) {
	ss := service.NewStudentServiceWith(newTestDB(t))
	ctx := context.Background()

	names := []struct{ name, number string }{
		{"Chen Yi", "20250001"},
		{"Chen Er", "20250002"},
		{"Lin San", "20250003"},
	}
	for _, n := range names {
		if _, err := ss.Add(ctx, sampleStudent(n.name, n.number)); err != nil {
			t.Fatalf("Add %s: %v", n.name, err)
		}
	}

	page, err := ss.Page(ctx, &types.StudentPageQuery{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if page.TotalElements != 3 || len(page.Content) != 2 {
		t.Errorf("total = %d, len = %d", page.TotalElements, len(page.Content))
	}

	// 关键词同时匹配姓名和学号
	byName, err := ss.Page(ctx, &types.StudentPageQuery{Keyword: "Chen"})
	if err != nil {
		t.Fatalf("Page keyword: %v", err)
	}

	if byName.TotalElements != 2 {
		t.Errorf("keyword Chen total = %d, want 2", byName.TotalElements)
	}

	byNumber, err := ss.Page(ctx, &types.StudentPageQuery{Keyword: "20250003"})
	if err != nil {
		t.Fatalf("Page keyword: %v", err)
	}

	if byNumber.TotalElements != 1 {
		t.Errorf("keyword number total = %d, want 1", byNumber.TotalElements)
	}

	found, err := ss.FindByName(ctx, "Lin San")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}

	if found.StudentNumber != "20250003" {
		t.Errorf("number = %q", found.StudentNumber)
	}
}
