package mcp

import (
	"fmt"
	"math"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/config"
	"smartdocs/internal/errors"
)

// parseAnalysisRequest validates tool arguments into an analysis request.
// JSON numbers arrive as float64; maxFiles must be a whole number when present.
func parseAnalysisRequest(params map[string]interface{}) (analyzer.Request, error) {
	var req analyzer.Request

	root, ok := params["rootPath"].(string)
	if !ok || root == "" {
		return req, errors.NewInvalidArgumentError("rootPath", "a non-empty string is required")
	}
	req.RootPath = root

	if raw, present := params["maxFiles"]; present && raw != nil {
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) {
			return req, errors.NewInvalidArgumentError("maxFiles", "must be an integer")
		}
		if n < 1 || n > config.MaxFilesLimit {
			return req, errors.NewInvalidArgumentError("maxFiles", fmt.Sprintf("must be between 1 and %d", config.MaxFilesLimit))
		}
		req.MaxFiles = int(n)
	}

	if raw, present := params["excludePatterns"]; present && raw != nil {
		items, ok := raw.([]interface{})
		if !ok {
			return req, errors.NewInvalidArgumentError("excludePatterns", "must be an array of strings")
		}
		for i, item := range items {
			p, ok := item.(string)
			if !ok {
				return req, errors.NewInvalidArgumentError("excludePatterns", fmt.Sprintf("item %d is not a string", i))
			}
			req.ExcludePatterns = append(req.ExcludePatterns, p)
		}
	}

	return req, req.Validate()
}
