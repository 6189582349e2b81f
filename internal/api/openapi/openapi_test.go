package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestLoad проверяет, что встроенный контракт загружается и валиден.
func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	for _, path := range []string{
		"/health/live",
		"/health/ready",
		"/metrics",
		"/api/v1/assets",
		"/api/v1/assets/{asset_id}",
		"/api/v1/exports/csv",
	} {
		if doc.Paths.Find(path) == nil {
			t.Errorf("путь %s отсутствует в контракте", path)
		}
	}
}

// TestValidationMiddleware проверяет валидацию запросов по контракту.
func TestValidationMiddleware(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	mw, err := ValidationMiddleware(doc)
	if err != nil {
		t.Fatalf("ValidationMiddleware ошибка: %v", err)
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{
			name:       "валидный запрос экспорта",
			method:     http.MethodGet,
			target:     "/api/v1/exports/csv?label=Library&status=active",
			wantStatus: http.StatusOK,
		},
		{
			name:       "недопустимый статус в фильтре",
			method:     http.MethodGet,
			target:     "/api/v1/exports/csv?status=archived",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "недопустимый limit",
			method:     http.MethodGet,
			target:     "/api/v1/assets?limit=5000",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "неизвестный путь пропускается",
			method:     http.MethodGet,
			target:     "/unknown",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("статус = %d, ожидался %d, тело: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
