package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandro988/E-commerce/internal/models"
	"github.com/sandro988/E-commerce/internal/provider"
	"github.com/sandro988/E-commerce/internal/repository"
	"github.com/sandro988/E-commerce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newCategoryTestRouter(t *testing.T) (*gin.Engine, *service.CategoryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate category failed: %v", err)
	}

	svc := service.NewCategoryService(repository.NewCategoryRepository(db))
	h := New(&provider.Container{CategoryService: svc})

	r := gin.New()
	r.GET("/api/v1/public/categories", h.GetCategories)
	r.GET("/api/v1/public/categories/:slug", h.GetCategoryBySlug)
	r.GET("/api/v1/public/categories/:slug/subcategories", h.GetSubcategories)
	return r, svc
}

func seedCategory(t *testing.T, svc *service.CategoryService, name string, parentID *uint) models.Category {
	t.Helper()
	created, err := svc.Create([]service.CategoryInput{{Name: &name, ParentID: parentID}})
	if err != nil {
		t.Fatalf("seed category %q failed: %v", name, err)
	}
	return created[0]
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return w, resp
}

func TestGetCategoriesListsAll(t *testing.T) {
	r, svc := newCategoryTestRouter(t)
	parent := seedCategory(t, svc, "Electronics", nil)
	seedCategory(t, svc, "Audio", &parent.ID)

	w, resp := doGet(t, r, "/api/v1/public/categories")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var categories []models.Category
	if err := json.Unmarshal(resp.Data, &categories); err != nil {
		t.Fatalf("unmarshal categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("categories want 2 got %d", len(categories))
	}
}

func TestGetCategoryBySlugIncludesSubcategories(t *testing.T) {
	r, svc := newCategoryTestRouter(t)
	parent := seedCategory(t, svc, "Electronics", nil)
	seedCategory(t, svc, "Audio", &parent.ID)
	seedCategory(t, svc, "Wearables", &parent.ID)

	_, resp := doGet(t, r, "/api/v1/public/categories/electronics")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var detail struct {
		models.Category
		Subcategories []models.Category `json:"subcategories"`
	}
	if err := json.Unmarshal(resp.Data, &detail); err != nil {
		t.Fatalf("unmarshal detail failed: %v", err)
	}
	if detail.Slug != "electronics" {
		t.Fatalf("slug want electronics got %s", detail.Slug)
	}
	if len(detail.Subcategories) != 2 {
		t.Fatalf("subcategories want 2 got %d", len(detail.Subcategories))
	}
}

func TestGetCategoryBySlugNotFound(t *testing.T) {
	r, _ := newCategoryTestRouter(t)

	w, resp := doGet(t, r, "/api/v1/public/categories/missing")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestGetSubcategoriesEmptyForLeaf(t *testing.T) {
	r, svc := newCategoryTestRouter(t)
	seedCategory(t, svc, "Lifestyle", nil)

	_, resp := doGet(t, r, "/api/v1/public/categories/lifestyle/subcategories")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var children []models.Category
	if err := json.Unmarshal(resp.Data, &children); err != nil {
		t.Fatalf("unmarshal subcategories failed: %v", err)
	}
	if len(children) != 0 {
		t.Fatalf("subcategories want empty got %d", len(children))
	}
}

func TestGetSubcategoriesUnknownParent(t *testing.T) {
	r, _ := newCategoryTestRouter(t)

	_, resp := doGet(t, r, "/api/v1/public/categories/missing/subcategories")
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}
