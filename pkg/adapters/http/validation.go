package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/api"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// newRequestValidator returns middleware that checks requests against the
// embedded OpenAPI document. Requests that match no documented operation are
// passed through untouched so chi can answer them.
func newRequestValidator(logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
				if r.Header.Get("Content-Type") == "" {
					r.Header.Set("Content-Type", "application/json")
				}
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if !errors.Is(err, routers.ErrPathNotFound) && !errors.Is(err, routers.ErrMethodNotAllowed) {
					logger.Debug("openapi route lookup failed", "path", r.URL.Path, "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeError(w, logger, &requestError{cause: err})
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

// requestError marks a request rejected before it reached the service.
type requestError struct {
	cause error
}

func (e *requestError) Error() string { return e.cause.Error() }

func (e *requestError) Unwrap() error { return e.cause }
