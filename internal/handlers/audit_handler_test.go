package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
)

func setupAuditRouter(handler *AuditHandler) *gin.Engine {
	r := gin.New()
	r.GET("/audit-logs", injectUserID(1), handler.ListAuditLogs)
	return r
}

func TestAuditHandler_ListAuditLogs(t *testing.T) {
	t.Run("returns the user's entries newest first", func(t *testing.T) {
		svc := &mockAuditService{
			listForUserFn: func(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.AuditLog], error) {
				if userID != 1 {
					t.Errorf("userID = %d, want 1", userID)
				}
				page.Defaults()
				entries := []models.AuditLog{
					{Base: models.Base{ID: 2}, UserID: userID, Action: "delete", ResourceType: "inventory_sale", ResourceID: 7},
					{Base: models.Base{ID: 1}, UserID: userID, Action: "create", ResourceType: "transaction", ResourceID: 3},
				}
				return pagination.NewPageResponse(entries, page.Page, page.PageSize, 2), nil
			},
		}
		handler := NewAuditHandler(svc)
		r := setupAuditRouter(handler)

		rec := doRequest(r, "GET", "/audit-logs", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data, ok := result["data"].([]interface{})
		if !ok || len(data) != 2 {
			t.Fatalf("data = %v", result["data"])
		}
		first, _ := data[0].(map[string]interface{})
		if first["action"] != "delete" {
			t.Errorf("first action = %v, want delete", first["action"])
		}
	})

	t.Run("returns 400 on a bad page parameter", func(t *testing.T) {
		handler := NewAuditHandler(&mockAuditService{})
		r := setupAuditRouter(handler)

		rec := doRequest(r, "GET", "/audit-logs?page=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
