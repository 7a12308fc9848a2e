package service_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakuray/campusvault/pkg/internal/model"
	"github.com/sakuray/campusvault/pkg/internal/service"
	"github.com/sakuray/campusvault/pkg/internal/storage/blob"
	"github.com/sakuray/campusvault/pkg/internal/storage/db"
	"github.com/sakuray/campusvault/pkg/internal/types"
)

// newTestDB 打开测试专用的内存数据库并建表.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&model.File{}, &model.User{}, &model.Student{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &db.Client{DB: gdb}
}

// newTestFileService 构造带临时Blob根目录的文件服务.
func newTestFileService(t *testing.T) (*service.FileService, string) {
	t.Helper()

	root := t.TempDir()

	store, err := blob.NewFSStoreAt(root)
	if err != nil {
		t.Fatalf("NewFSStoreAt: %v", err)
	}

	fs := service.New(newTestDB(t), &blob.Client{Store: store}, nil, nil)

	return fs, root
}

func uploadSample(t *testing.T, fs *service.FileService, name, content, description string) *types.FileView {
	t.Helper()

	view, err := fs.Upload(context.Background(), name, strings.NewReader(content), int64(len(content)), description)
	if err != nil {
		t.Fatalf("Upload(%s): %v", name, err)
	}

	return view
}

func TestUpload(t *testing.T) {
	fs, root := newTestFileService(t)

	view := uploadSample(t, fs, "report.txt", "hello upload", "quarterly report")

	if view.ID == 0 {
		t.Error("uploaded file should have an ID")
	}

	if view.Name != "report.txt" {
		t.Errorf("name = %q, want report.txt", view.Name)
	}

	if view.Size != int64(len("hello upload")) {
		t.Errorf("size = %d, want %d", view.Size, len("hello upload"))
	}

	if !strings.HasSuffix(view.Locator, "_report.txt") {
		t.Errorf("locator %q should end with _report.txt", view.Locator)
	}

	if view.Hash == "" {
		t.Error("hash should not be empty")
	}

	if view.UploadTime.IsZero() {
		t.Error("upload time should be set")
	}

	// Blob 确实落盘
	data, err := os.ReadFile(filepath.Join(root, view.Locator))
	if err != nil {
		t.Fatalf("blob file missing: %v", err)
	}

	if string(data) != "hello upload" {
		t.Errorf("blob content = %q", data)
	}
}

func TestUploadValidation(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	_, err := fs.Upload(ctx, "", strings.NewReader("x"), 1, "")
	if !service.IsValidation(err) {
		t.Errorf("empty name: err = %v, want ValidationError", err)
	}

	_, err = fs.Upload(ctx, "empty.txt", strings.NewReader(""), 0, "")
	if !service.IsValidation(err) {
		t.Errorf("empty file: err = %v, want ValidationError", err)
	}

	_, err = fs.Upload(ctx, "big-desc.txt", strings.NewReader("x"), 1, strings.Repeat("d", 513))
	if !service.IsValidation(err) {
		t.Errorf("long description: err = %v, want ValidationError", err)
	}

	_, err = fs.Upload(ctx, strings.Repeat("n", 256), strings.NewReader("x"), 1, "")
	if !service.IsValidation(err) {
		t.Errorf("long name: err = %v, want ValidationError", err)
	}
}

func TestUploadKeepsOriginalDisplayName(t *testing.T) {
	fs, _ := newTestFileService(t)

	view := uploadSample(t, fs, "archive..2024.txt", "x", "")

	if view.Name != "archive..2024.txt" {
		t.Errorf("name = %q, want the original file name", view.Name)
	}

	// 定位符里的文件名部分是净化过的
	if strings.Contains(view.Locator, "..") {
		t.Errorf("locator %q must not contain traversal fragments", view.Locator)
	}
}

func TestUploadLongNameLocatorFits(t *testing.T) {
	fs, root := newTestFileService(t)

	name := strings.Repeat("n", 251) + ".txt"

	view := uploadSample(t, fs, name, "long name payload", "")

	if view.Name != name {
		t.Errorf("display name length = %d, want the original %d chars", len(view.Name), len(name))
	}

	if len(view.Locator) > 255 {
		t.Errorf("locator length = %d, must fit a 255-char column", len(view.Locator))
	}

	if !strings.HasSuffix(view.Locator, ".txt") {
		t.Errorf("locator %q should keep the extension", view.Locator)
	}

	if _, err := os.Stat(filepath.Join(root, view.Locator)); err != nil {
		t.Fatalf("blob file missing: %v", err)
	}
}

func TestUploadSameNameTwice(t *testing.T) {
	fs, _ := newTestFileService(t)

	a := uploadSample(t, fs, "same.txt", "first", "")
	b := uploadSample(t, fs, "same.txt", "second", "")

	if a.Locator == b.Locator {
		t.Error("two uploads of the same name must get distinct locators")
	}
}

func TestListDefaultOrder(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	uploadSample(t, fs, "a.txt", "aaa", "")
	uploadSample(t, fs, "b.txt", "bb", "")
	uploadSample(t, fs, "c.txt", "c", "")

	page, err := fs.List(ctx, &types.FilePageQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if page.TotalElements != 3 {
		t.Errorf("total = %d, want 3", page.TotalElements)
	}

	if len(page.Content) != 3 {
		t.Fatalf("len(content) = %d, want 3", len(page.Content))
	}

	// 默认按上传时间倒序，最后上传的排最前
	for i := 1; i < len(page.Content); i++ {
		if page.Content[i].UploadTime.After(page.Content[i-1].UploadTime) {
			t.Errorf("content not sorted by uploadTime desc at index %d", i)
		}
	}
}

func TestListPagingAndSort(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	for _, name := range []string{"delta.txt", "alpha.txt", "charlie.txt", "bravo.txt"} {
		uploadSample(t, fs, name, "data", "")
	}

	page, err := fs.List(ctx, &types.FilePageQuery{Page: 0, Size: 2, SortBy: "name", SortDirection: "asc"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if page.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", page.TotalPages)
	}

	if len(page.Content) != 2 {
		t.Fatalf("len(content) = %d, want 2", len(page.Content))
	}

	if page.Content[0].Name != "alpha.txt" || page.Content[1].Name != "bravo.txt" {
		t.Errorf("first page = %s, %s; want alpha.txt, bravo.txt", page.Content[0].Name, page.Content[1].Name)
	}
}

func TestListRejectsNegativePage(t *testing.T) {
	fs, _ := newTestFileService(t)

	_, err := fs.List(context.Background(), &types.FilePageQuery{Page: -3})
	if !service.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestListRejectsUnknownSortField(t *testing.T) {
	fs, _ := newTestFileService(t)

	_, err := fs.List(context.Background(), &types.FilePageQuery{SortBy: "locator; DROP TABLE files"})
	if !service.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "orig.txt", "payload", "original description")

	// 只更新名字，描述保持原值
	newName := "renamed.txt"

	updated, err := fs.Update(ctx, view.ID, &types.FileUpdateRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "renamed.txt" {
		t.Errorf("name = %q, want renamed.txt", updated.Name)
	}

	if updated.Description != "original description" {
		t.Errorf("description changed unexpectedly: %q", updated.Description)
	}

	// 显式空描述要被应用
	empty := ""

	updated, err = fs.Update(ctx, view.ID, &types.FileUpdateRequest{Description: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Description != "" {
		t.Errorf("description = %q, want empty", updated.Description)
	}

	// 定位符和大小不可变
	if updated.Locator != view.Locator {
		t.Error("locator must not change on update")
	}

	if updated.Size != view.Size {
		t.Error("size must not change on update")
	}
}

func TestUpdateValidation(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "v.txt", "x", "")

	_, err := fs.Update(ctx, view.ID, &types.FileUpdateRequest{})
	if !service.IsValidation(err) {
		t.Errorf("no fields: err = %v, want ValidationError", err)
	}

	empty := ""

	_, err = fs.Update(ctx, view.ID, &types.FileUpdateRequest{Name: &empty})
	if !service.IsValidation(err) {
		t.Errorf("empty name: err = %v, want ValidationError", err)
	}

	name := "ok.txt"

	_, err = fs.Update(ctx, 9999, &types.FileUpdateRequest{Name: &name})
	if !service.IsNotFound(err) {
		t.Errorf("missing id: err = %v, want NotFoundError", err)
	}
}

func TestDownload(t *testing.T) {
	fs, _ := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "dl.txt", "download me", "")

	meta, rc, err := fs.Download(ctx, view.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()

	if meta.Name != "dl.txt" {
		t.Errorf("meta name = %q", meta.Name)
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if string(data) != "download me" {
		t.Errorf("content = %q", data)
	}
}

func TestDownloadDanglingRecord(t *testing.T) {
	fs, root := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "gone.txt", "soon gone", "")

	// 元数据还在，Blob 直接抹掉
	if err := os.Remove(filepath.Join(root, view.Locator)); err != nil {
		t.Fatalf("remove blob: %v", err)
	}

	_, _, err := fs.Download(ctx, view.ID)
	if !service.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}

	// 悬挂记录的消息和元数据缺失不同
	if !strings.Contains(err.Error(), "content missing") {
		t.Errorf("error message %q should mention missing content", err.Error())
	}

	_, _, err = fs.Download(ctx, 9999)
	if !service.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}

	if !strings.Contains(err.Error(), "metadata not found") {
		t.Errorf("error message %q should mention missing metadata", err.Error())
	}
}

func TestDelete(t *testing.T) {
	fs, root := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "del.txt", "bye", "")

	if err := fs.Delete(ctx, view.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, view.Locator)); !os.IsNotExist(err) {
		t.Error("blob should be removed")
	}

	// 重复删除同一 ID 返回 NotFound
	if err := fs.Delete(ctx, view.ID); !service.IsNotFound(err) {
		t.Errorf("second delete: err = %v, want NotFoundError", err)
	}
}

func TestDeleteBlobMissingStillRemovesMetadata(t *testing.T) {
	fs, root := newTestFileService(t)
	ctx := context.Background()

	view := uploadSample(t, fs, "halfgone.txt", "x", "")

	if err := os.Remove(filepath.Join(root, view.Locator)); err != nil {
		t.Fatalf("remove blob: %v", err)
	}

	// Blob 删除失败只记日志，元数据删除照常
	if err := fs.Delete(ctx, view.ID); err != nil {
		t.Fatalf("Delete with missing blob: %v", err)
	}

	if _, err := fs.Get(ctx, view.ID); !service.IsNotFound(err) {
		t.Errorf("metadata should be gone, err = %v", err)
	}
}
