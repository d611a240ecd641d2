package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var parsed struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if parsed.Info.Title != SwaggerInfo.Title {
		t.Fatalf("title=%q", parsed.Info.Title)
	}
	for _, path := range []string{"/api/v1/status", "/api/v1/motor", "/api/v1/schedules", "/api/v1/settings"} {
		if _, ok := parsed.Paths[path]; !ok {
			t.Errorf("path %s not documented", path)
		}
	}
}
