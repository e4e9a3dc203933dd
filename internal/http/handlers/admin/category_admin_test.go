package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newCategoryAdminRouter(t *testing.T) (*gin.Engine, *service.CategoryService) {
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
	r.POST("/api/v1/admin/categories", h.CreateCategories)
	r.PUT("/api/v1/admin/categories/:slug", h.UpdateCategory)
	r.PATCH("/api/v1/admin/categories/:slug", h.PatchCategory)
	r.DELETE("/api/v1/admin/categories/:slug", h.DeleteCategory)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return w, resp
}

func TestCreateCategorySingleObject(t *testing.T) {
	r, _ := newCategoryAdminRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories", `{"name":"home appliances"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d", w.Code)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var created models.Category
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("unmarshal created failed: %v", err)
	}
	if created.Name != "Home Appliances" || created.Slug != "home-appliances" {
		t.Fatalf("unexpected created category: %+v", created)
	}
}

func TestCreateCategoriesBatchArray(t *testing.T) {
	r, _ := newCategoryAdminRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories",
		`[{"name":"Electronics"},{"name":"Lifestyle"}]`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d", w.Code)
	}
	var created []models.Category
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("unmarshal created failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created want 2 got %d", len(created))
	}
}

func TestCreateCategoriesBatchAllOrNothing(t *testing.T) {
	r, svc := newCategoryAdminRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories",
		`[{"name":"Books"},{"name":"Boots & Shoes!"}]`)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	var data struct {
		Items []map[string][]string `json:"items"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal error data failed: %v", err)
	}
	if len(data.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(data.Items))
	}
	if len(data.Items[0]) != 0 {
		t.Fatalf("first item should have no errors, got %v", data.Items[0])
	}
	if len(data.Items[1]["name"]) == 0 {
		t.Fatalf("second item should carry name errors, got %v", data.Items[1])
	}

	// 整批回滚，合法的那条也不应落库
	if _, err := svc.GetBySlug("books"); err == nil {
		t.Fatalf("valid row should have been rolled back with the batch")
	}
}

func TestPatchCategoryParentNullDetaches(t *testing.T) {
	r, svc := newCategoryAdminRouter(t)
	name := "Electronics"
	parent, err := svc.Create([]service.CategoryInput{{Name: &name}})
	if err != nil {
		t.Fatalf("seed parent failed: %v", err)
	}
	childName := "Audio"
	if _, err := svc.Create([]service.CategoryInput{{Name: &childName, ParentID: &parent[0].ID}}); err != nil {
		t.Fatalf("seed child failed: %v", err)
	}

	_, resp := doJSON(t, r, http.MethodPatch, "/api/v1/admin/categories/audio", `{"parent":null}`)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var updated models.Category
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("unmarshal updated failed: %v", err)
	}
	if updated.ParentID != nil {
		t.Fatalf("parent should be detached, got %v", *updated.ParentID)
	}
}

func TestPatchCategoryWithoutParentKeepsParent(t *testing.T) {
	r, svc := newCategoryAdminRouter(t)
	name := "Electronics"
	parent, err := svc.Create([]service.CategoryInput{{Name: &name}})
	if err != nil {
		t.Fatalf("seed parent failed: %v", err)
	}
	childName := "Audio"
	if _, err := svc.Create([]service.CategoryInput{{Name: &childName, ParentID: &parent[0].ID}}); err != nil {
		t.Fatalf("seed child failed: %v", err)
	}

	_, resp := doJSON(t, r, http.MethodPatch, "/api/v1/admin/categories/audio", `{"description":"Speakers and headphones"}`)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var updated models.Category
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("unmarshal updated failed: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != parent[0].ID {
		t.Fatalf("parent should be unchanged, got %v", updated.ParentID)
	}
	if updated.Description != "Speakers and headphones" {
		t.Fatalf("description not updated: %q", updated.Description)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	r, _ := newCategoryAdminRouter(t)

	_, resp := doJSON(t, r, http.MethodPut, "/api/v1/admin/categories/missing", `{"name":"Anything"}`)
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	r, svc := newCategoryAdminRouter(t)
	name := "Electronics"
	parent, err := svc.Create([]service.CategoryInput{{Name: &name}})
	if err != nil {
		t.Fatalf("seed parent failed: %v", err)
	}
	childName := "Audio"
	if _, err := svc.Create([]service.CategoryInput{{Name: &childName, ParentID: &parent[0].ID}}); err != nil {
		t.Fatalf("seed child failed: %v", err)
	}

	_, resp := doJSON(t, r, http.MethodDelete, "/api/v1/admin/categories/electronics", "")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	if _, err := svc.GetBySlug("audio"); err == nil {
		t.Fatalf("descendant should be deleted with parent")
	}

	_, resp = doJSON(t, r, http.MethodDelete, "/api/v1/admin/categories/electronics", "")
	if resp.StatusCode != 404 {
		t.Fatalf("second delete status_code want 404 got %d", resp.StatusCode)
	}
}
