package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCategoryServiceTest(t *testing.T) *CategoryService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate category failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db))
}

func strPtr(s string) *string {
	return &s
}

func uintPtr(v uint) *uint {
	return &v
}

func mustCreateOne(t *testing.T, svc *CategoryService, name string, parentID *uint) models.Category {
	t.Helper()
	created, err := svc.Create([]CategoryInput{{Name: strPtr(name), ParentID: parentID}})
	if err != nil {
		t.Fatalf("create %q failed: %v", name, err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created category, got %d", len(created))
	}
	return created[0]
}

func TestCreateDerivesTitleSlugAndNormalizedName(t *testing.T) {
	svc := newCategoryServiceTest(t)

	created := mustCreateOne(t, svc, "home appliances", nil)
	if created.Name != "Home Appliances" {
		t.Fatalf("name want %q got %q", "Home Appliances", created.Name)
	}
	if created.Slug != "home-appliances" {
		t.Fatalf("slug want %q got %q", "home-appliances", created.Slug)
	}
	if created.NameNormalized != "home appliances" {
		t.Fatalf("normalized want %q got %q", "home appliances", created.NameNormalized)
	}
}

func TestCreateRejectsSpecialCharacters(t *testing.T) {
	svc := newCategoryServiceTest(t)

	_, err := svc.Create([]CategoryInput{{Name: strPtr("Boots & Shoes!")}})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	got := bulkErr.Items[0]["name"]
	if len(got) != 1 || got[0] != msgNameSpecialChars {
		t.Fatalf("unexpected name errors: %v", got)
	}
}

func TestCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc := newCategoryServiceTest(t)
	mustCreateOne(t, svc, "Electronics", nil)

	_, err := svc.Create([]CategoryInput{{Name: strPtr("eLeCtRoNiCs")}})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	got := bulkErr.Items[0]["name"]
	if len(got) != 1 || got[0] != msgNameDuplicate {
		t.Fatalf("unexpected name errors: %v", got)
	}
}

func TestCreateRejectsNameOverMaxLength(t *testing.T) {
	svc := newCategoryServiceTest(t)

	_, err := svc.Create([]CategoryInput{{Name: strPtr(strings.Repeat("a", 129))}})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	if len(bulkErr.Items[0]["name"]) == 0 {
		t.Fatalf("expected name length error, got %v", bulkErr.Items[0])
	}
}

func TestCreateRejectsUnknownParent(t *testing.T) {
	svc := newCategoryServiceTest(t)

	_, err := svc.Create([]CategoryInput{{Name: strPtr("Phones"), ParentID: uintPtr(999)}})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	if len(bulkErr.Items[0]["parent"]) == 0 {
		t.Fatalf("expected parent error, got %v", bulkErr.Items[0])
	}
}

func TestBulkCreateIsAllOrNothing(t *testing.T) {
	svc := newCategoryServiceTest(t)

	_, err := svc.Create([]CategoryInput{
		{Name: strPtr("Books")},
		{Name: strPtr("Invalid!Name")},
		{Name: strPtr("Music")},
	})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	if len(bulkErr.Items) != 3 {
		t.Fatalf("expected 3 aligned items, got %d", len(bulkErr.Items))
	}
	if len(bulkErr.Items[0]) != 0 || len(bulkErr.Items[2]) != 0 {
		t.Fatalf("valid items should carry no errors: %v", bulkErr.Items)
	}
	if len(bulkErr.Items[1]["name"]) == 0 {
		t.Fatalf("expected name error on item 1: %v", bulkErr.Items[1])
	}

	// 整批回滚，合法条目也不应落库
	all, listErr := svc.List()
	if listErr != nil {
		t.Fatalf("list failed: %v", listErr)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty table after rollback, got %d rows", len(all))
	}
}

func TestBulkCreateRejectsInBatchDuplicates(t *testing.T) {
	svc := newCategoryServiceTest(t)

	_, err := svc.Create([]CategoryInput{
		{Name: strPtr("Garden")},
		{Name: strPtr("GARDEN")},
	})
	var bulkErr *BulkValidationError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("expected BulkValidationError, got %v", err)
	}
	if len(bulkErr.Items[1]["name"]) == 0 {
		t.Fatalf("expected duplicate error on second item: %v", bulkErr.Items)
	}
}

func TestBulkCreateMultipleValid(t *testing.T) {
	svc := newCategoryServiceTest(t)

	created, err := svc.Create([]CategoryInput{
		{Name: strPtr("books")},
		{Name: strPtr("music")},
	})
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(created))
	}
	if created[0].Name != "Books" || created[1].Name != "Music" {
		t.Fatalf("unexpected names: %q %q", created[0].Name, created[1].Name)
	}
}

func TestUpdateRequiresNameOnFullUpdate(t *testing.T) {
	svc := newCategoryServiceTest(t)
	created := mustCreateOne(t, svc, "Electronics", nil)

	_, err := svc.Update(created.Slug, CategoryInput{Description: strPtr("gadgets")}, false)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := valErr.Fields["name"]
	if len(got) != 1 || got[0] != msgFieldRequired {
		t.Fatalf("unexpected name errors: %v", got)
	}
}

func TestUpdateRenameRederivesSlug(t *testing.T) {
	svc := newCategoryServiceTest(t)
	created := mustCreateOne(t, svc, "Phones", nil)

	updated, err := svc.Update(created.Slug, CategoryInput{Name: strPtr("mobile phones")}, true)
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.Name != "Mobile Phones" {
		t.Fatalf("name want %q got %q", "Mobile Phones", updated.Name)
	}
	if updated.Slug != "mobile-phones" {
		t.Fatalf("slug want %q got %q", "mobile-phones", updated.Slug)
	}

	// 旧 slug 不再可用
	if _, err := svc.GetBySlug("phones"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old slug gone, got %v", err)
	}
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	svc := newCategoryServiceTest(t)
	created := mustCreateOne(t, svc, "Electronics", nil)

	_, err := svc.Update(created.Slug, CategoryInput{ParentID: uintPtr(created.ID), ParentProvided: true}, true)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := valErr.Fields["parent"]
	if len(got) != 1 || got[0] != msgSelfParent {
		t.Fatalf("unexpected parent errors: %v", got)
	}
}

func TestUpdateRejectsCircularParent(t *testing.T) {
	svc := newCategoryServiceTest(t)
	a := mustCreateOne(t, svc, "A Level", nil)
	b := mustCreateOne(t, svc, "B Level", uintPtr(a.ID))
	c := mustCreateOne(t, svc, "C Level", uintPtr(b.ID))

	_, err := svc.Update(a.Slug, CategoryInput{ParentID: uintPtr(c.ID), ParentProvided: true}, true)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	got := valErr.Fields["parent"]
	if len(got) != 1 || got[0] != msgCircularParent {
		t.Fatalf("unexpected parent errors: %v", got)
	}
}

func TestUpdateNoOpWhenNothingChanges(t *testing.T) {
	svc := newCategoryServiceTest(t)
	mustCreateOne(t, svc, "Electronics", nil)
	before, err := svc.GetBySlug("electronics")
	if err != nil {
		t.Fatalf("get before update failed: %v", err)
	}

	updated, err := svc.Update(before.Slug, CategoryInput{Name: strPtr("Electronics")}, true)
	if err != nil {
		t.Fatalf("no-op update failed: %v", err)
	}
	if updated.ID != before.ID || updated.Slug != before.Slug {
		t.Fatalf("no-op update should return existing row, got %+v", updated)
	}
	if !updated.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("no-op update should not touch updated_at")
	}
}

func TestUpdateNoOpSkipsParentRevalidation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate category failed: %v", err)
	}
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	a := mustCreateOne(t, svc, "Electronics", nil)
	b := mustCreateOne(t, svc, "Phones", uintPtr(a.ID))

	// 绕过服务层制造脏数据：A 与 B 互为父分类
	if err := db.Model(&models.Category{}).Where("id = ?", a.ID).Update("parent_id", b.ID).Error; err != nil {
		t.Fatalf("corrupt parent failed: %v", err)
	}

	// 名称与父分类均未变化时不得重跑父分类校验
	if _, err := svc.Update(a.Slug, CategoryInput{Name: strPtr(a.Name)}, true); err != nil {
		t.Fatalf("no-op update should skip parent revalidation, got %v", err)
	}
}

func TestUpdateClearsParentWithExplicitNull(t *testing.T) {
	svc := newCategoryServiceTest(t)
	root := mustCreateOne(t, svc, "Electronics", nil)
	child := mustCreateOne(t, svc, "Phones", uintPtr(root.ID))

	updated, err := svc.Update(child.Slug, CategoryInput{ParentID: nil, ParentProvided: true}, true)
	if err != nil {
		t.Fatalf("clear parent failed: %v", err)
	}
	if updated.ParentID != nil {
		t.Fatalf("expected parent cleared, got %v", *updated.ParentID)
	}
}

func TestDeleteCascadesThroughDescendants(t *testing.T) {
	svc := newCategoryServiceTest(t)
	root := mustCreateOne(t, svc, "Electronics", nil)
	child := mustCreateOne(t, svc, "Phones", uintPtr(root.ID))
	mustCreateOne(t, svc, "Smartphones", uintPtr(child.ID))

	if err := svc.Delete(root.Slug); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected cascade to remove all rows, got %d", len(all))
	}

	if err := svc.Delete(root.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestListSubcategories(t *testing.T) {
	svc := newCategoryServiceTest(t)
	root := mustCreateOne(t, svc, "Electronics", nil)
	child := mustCreateOne(t, svc, "Phones", uintPtr(root.ID))
	mustCreateOne(t, svc, "Smartphones", uintPtr(child.ID))

	children, err := svc.ListSubcategories(root.Slug)
	if err != nil {
		t.Fatalf("list subcategories failed: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("expected only direct child, got %+v", children)
	}

	leaves, err := svc.ListSubcategories("smartphones")
	if err != nil {
		t.Fatalf("list leaf subcategories failed: %v", err)
	}
	if len(leaves) != 0 {
		t.Fatalf("expected empty children for leaf, got %+v", leaves)
	}

	if _, err := svc.ListSubcategories("unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown parent should be not found, got %v", err)
	}
}

func TestCategoryLifecycleScenario(t *testing.T) {
	svc := newCategoryServiceTest(t)

	electronics := mustCreateOne(t, svc, "electronics", nil)
	if electronics.Name != "Electronics" || electronics.Slug != "electronics" {
		t.Fatalf("unexpected root: %+v", electronics)
	}

	phones := mustCreateOne(t, svc, "phones", uintPtr(electronics.ID))

	got, err := svc.GetBySlug("electronics")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	children, err := svc.ListSubcategories(got.Slug)
	if err != nil {
		t.Fatalf("list children failed: %v", err)
	}
	if len(children) != 1 || children[0].ID != phones.ID {
		t.Fatalf("expected phones under electronics, got %+v", children)
	}

	renamed, err := svc.Update(phones.Slug, CategoryInput{Name: strPtr("Mobile Phones")}, true)
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Slug != "mobile-phones" {
		t.Fatalf("slug want %q got %q", "mobile-phones", renamed.Slug)
	}

	// 尝试把根分类挂到自己的后代下面
	_, err = svc.Update(electronics.Slug, CategoryInput{ParentID: uintPtr(renamed.ID), ParentProvided: true}, true)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected circular rejection, got %v", err)
	}
	afterReject, err := svc.GetBySlug(electronics.Slug)
	if err != nil {
		t.Fatalf("reload root failed: %v", err)
	}
	if afterReject.ParentID != nil {
		t.Fatalf("rejected circular update must not mutate parent, got %v", *afterReject.ParentID)
	}

	if err := svc.Delete(electronics.Slug); err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}
	all, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty catalog, got %d rows", len(all))
	}
}
