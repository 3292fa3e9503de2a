package swaggerkit

import (
	"encoding/json"
	"net/http"

	docs "replyguard/internal/services/api/docs"
)

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// errorSchema mirrors the envelope an error response carries
var errorSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// serveDocJSON serves the generated spec with the shared error responses filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		addErrorResponses(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// addErrorResponses documents the 400 and 500 every operation can return
// responses an operation already declares are left alone
func addErrorResponses(spec map[string]any) {
	defs, _ := spec["definitions"].(map[string]any)
	if defs == nil {
		defs = map[string]any{}
		spec["definitions"] = defs
	}
	if _, ok := defs["ErrorResponse"]; !ok {
		defs["ErrorResponse"] = errorSchema
	}

	ref := map[string]any{"$ref": "#/definitions/ErrorResponse"}
	defaults := map[string]any{
		"400": map[string]any{"description": "Bad Request", "schema": ref},
		"500": map[string]any{"description": "Internal Server Error", "schema": ref},
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps, _ := op["responses"].(map[string]any)
			if resps == nil {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for code, resp := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = resp
				}
			}
		}
	}
}
