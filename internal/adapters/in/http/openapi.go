package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// OpenAPIValidator rejects requests whose parameters or body do not match the
// API description. Requests for routes the description does not know are passed
// through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
				return next(ctx)
			}
			if findErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest+": "+validationMessage(err))
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		var schemaErr *openapi3.SchemaError
		if errors.As(requestErr.Err, &schemaErr) {
			return schemaErr.Reason
		}
		return requestErr.Error()
	}
	return err.Error()
}

// swaggerSpec is registered with swag once per process; later registrations
// replace its template.
var (
	swaggerOnce sync.Once
	swaggerSpec = &swag.Spec{
		InfoInstanceName: swag.Name,
		LeftDelim:        "{%",
		RightDelim:       "%}",
	}
)

// RegisterSwaggerDoc publishes doc as the "swagger" instance of the swag registry,
// which is what the Swagger UI handler serves as doc.json.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	swaggerSpec.Title = doc.Info.Title
	swaggerSpec.Version = doc.Info.Version
	swaggerSpec.Description = doc.Info.Description
	swaggerSpec.SwaggerTemplate = string(data)

	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerSpec)
	})
	return nil
}
