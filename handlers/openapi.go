package handlers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed api/admin.openapi.yaml
var adminSpec []byte

// LoadAdminSpec parses and validates the embedded admin OpenAPI document.
func LoadAdminSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(adminSpec)
	if err != nil {
		return nil, fmt.Errorf("load admin openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate admin openapi spec: %w", err)
	}
	return doc, nil
}

// OpenAPIRequestValidator validates requests whose route is described in doc. Requests to paths the
// document does not describe pass through untouched. A validation failure becomes an echo.HTTPError 400
// carrying the *openapi3filter.RequestError, which the error handler renders as bad_parameter.
func OpenAPIRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ectx echo.Context) error {
			return validateRequest(router, ectx, next)
		}
	}, nil
}

func validateRequest(router routers.Router, ectx echo.Context, next echo.HandlerFunc) error {
	req := ectx.Request()
	route, pathParams, err := router.FindRoute(req)
	if err != nil {
		return next(ectx)
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
	}
	if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error(), Internal: err}
	}
	return next(ectx)
}
