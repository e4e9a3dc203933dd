package repository

import (
	"errors"
	"testing"

	"github.com/sandro988/E-commerce/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryRepositoryTest(t *testing.T) *GormCategoryRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate category failed: %v", err)
	}
	return NewCategoryRepository(db)
}

func createCategory(t *testing.T, repo *GormCategoryRepository, name, slug string, parentID *uint) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:           name,
		NameNormalized: toLowerASCII(name),
		Slug:           slug,
		ParentID:       parentID,
	}
	if err := repo.Create(category); err != nil {
		t.Fatalf("create category %q failed: %v", name, err)
	}
	return category
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

func TestFindByNameFoldIgnoresCase(t *testing.T) {
	repo := setupCategoryRepositoryTest(t)
	created := createCategory(t, repo, "Electronics", "electronics", nil)

	found, err := repo.FindByNameFold("eLeCtRoNiCs", 0)
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected to find category %d, got %+v", created.ID, found)
	}

	excluded, err := repo.FindByNameFold("electronics", created.ID)
	if err != nil {
		t.Fatalf("find with exclusion failed: %v", err)
	}
	if excluded != nil {
		t.Fatalf("expected exclusion of own id, got %+v", excluded)
	}
}

func TestCreateDuplicateNormalizedNameTranslatesToDuplicatedKey(t *testing.T) {
	repo := setupCategoryRepositoryTest(t)
	createCategory(t, repo, "Books", "books", nil)

	err := repo.Create(&models.Category{
		Name:           "BOOKS",
		NameNormalized: "books",
		Slug:           "books-2",
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestListByParentReturnsDirectChildrenOnly(t *testing.T) {
	repo := setupCategoryRepositoryTest(t)
	root := createCategory(t, repo, "Electronics", "electronics", nil)
	child := createCategory(t, repo, "Phones", "phones", &root.ID)
	createCategory(t, repo, "Smartphones", "smartphones", &child.ID)

	children, err := repo.ListByParent(root.ID)
	if err != nil {
		t.Fatalf("list by parent failed: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("expected only direct child %d, got %+v", child.ID, children)
	}
}

func TestDeleteByIDsHardDeletesAndFreesName(t *testing.T) {
	repo := setupCategoryRepositoryTest(t)
	created := createCategory(t, repo, "Garden", "garden", nil)

	if err := repo.DeleteByIDs([]uint{created.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := repo.GetBySlug("garden")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected category gone, got %+v", got)
	}

	// 硬删除后名称与 slug 可复用
	createCategory(t, repo, "Garden", "garden", nil)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repo := setupCategoryRepositoryTest(t)

	wantErr := errors.New("abort")
	err := repo.Transaction(func(tx CategoryRepository) error {
		if err := tx.Create(&models.Category{
			Name:           "Toys",
			NameNormalized: "toys",
			Slug:           "toys",
		}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected abort error, got %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, count=%d", count)
	}
}
