package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const validateRequestSchemaURL = "schema://validate-request.json"

// validateRequestSchema accepts any object whose jenkinsConfig, when present,
// is a string or null. Presence is checked by the validation service.
var validateRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"jenkinsConfig": map[string]any{
			"type": []any{"string", "null"},
		},
	},
}

var (
	compileOnce     sync.Once
	compiledRequest *jsonschema.Schema
	compileErr      error
)

func requestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(validateRequestSchemaURL, validateRequestSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledRequest, compileErr = c.Compile(validateRequestSchemaURL)
	})
	return compiledRequest, compileErr
}

// decodeValidateRequest parses body and checks it against the request schema.
func decodeValidateRequest(body []byte) (validateRequest, error) {
	var req validateRequest

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := requestSchema()
	if err != nil {
		return req, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return req, fmt.Errorf("schema validation failed: %w", err)
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

type validateRequest struct {
	JenkinsConfig *string `json:"jenkinsConfig"`
}
