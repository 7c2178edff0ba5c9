// Package contract exposes the backend routes as an embedded OpenAPI document.
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Route is one method and path of the backend.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	ContentType string
}

var (
	loadOnce sync.Once
	doc      *openapi3.T
	loadErr  error
)

// Document returns the parsed and validated contract.
func Document() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, loadErr = loader.LoadFromData(openapiYAML)
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to load backend contract: %w", loadErr)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			loadErr = fmt.Errorf("invalid backend contract: %w", err)
		}
	})
	return doc, loadErr
}

// Lookup finds the route for a method and path template.
func Lookup(method, path string) (Route, error) {
	d, err := Document()
	if err != nil {
		return Route{}, err
	}
	item := d.Paths.Find(path)
	if item == nil {
		return Route{}, fmt.Errorf("unknown route %s", path)
	}
	op := item.GetOperation(strings.ToUpper(method))
	if op == nil {
		return Route{}, fmt.Errorf("route %s does not accept %s", path, method)
	}
	return newRoute(strings.ToUpper(method), path, op), nil
}

// Routes lists every route, sorted by path then method.
func Routes() ([]Route, error) {
	d, err := Document()
	if err != nil {
		return nil, err
	}
	var out []Route
	for path, item := range d.Paths.Map() {
		for method, op := range item.Operations() {
			out = append(out, newRoute(method, path, op))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

func newRoute(method, path string, op *openapi3.Operation) Route {
	r := Route{
		Method:      method,
		Path:        path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
	}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		var types []string
		for ct := range op.RequestBody.Value.Content {
			types = append(types, ct)
		}
		sort.Strings(types)
		r.ContentType = strings.Join(types, ", ")
	}
	return r
}
