// Пакет openapi — встроенный OpenAPI контракт Export Module и
// middleware валидации входящих запросов по этому контракту.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	apierrors "github.com/bigkaa/goassetstore/export-module/internal/api/errors"
)

//go:embed openapi.yaml
var specYAML []byte

// Load загружает и валидирует встроенный OpenAPI контракт.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("загрузка OpenAPI контракта: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("валидация OpenAPI контракта: %w", err)
	}
	return doc, nil
}

// ValidationMiddleware возвращает middleware, валидирующий входящие
// запросы по OpenAPI контракту: параметры, тела запросов, content type.
// Запросы к неизвестным путям пропускаются без валидации —
// маршрутизация остаётся за chi.
// Аутентификация не проверяется здесь (AuthenticationFunc — noop):
// ей занимается JWT middleware.
func ValidationMiddleware(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("создание OpenAPI router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: func(_ context.Context, _ *openapi3filter.AuthenticationInput) error {
			return nil
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if err == routers.ErrPathNotFound || err == routers.ErrMethodNotAllowed {
					// Не описанные в контракте пути валидирует chi (404/405)
					next.ServeHTTP(w, r)
					return
				}
				apierrors.InternalError(w, "Ошибка маршрутизации OpenAPI: "+err.Error())
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}

			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				apierrors.ValidationError(w, "Запрос не соответствует контракту: "+err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
