package envelope

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/errors"
)

func TestBuilderBasic(t *testing.T) {
	resp := New().
		Data(map[string]string{"key": "value"}).
		Build()

	assert.Equal(t, CurrentSchemaVersion, resp.SchemaVersion)
	assert.Equal(t, map[string]string{"key": "value"}, resp.Data)
	assert.Nil(t, resp.Meta)
	assert.Nil(t, resp.Error)
}

func TestBuilderRun(t *testing.T) {
	resp := New().Run("run-1", 1500*time.Millisecond).Build()

	require.NotNil(t, resp.Meta)
	assert.Equal(t, "run-1", resp.Meta.RunID)
	assert.Equal(t, int64(1500), resp.Meta.DurationMs)
}

func TestBuilderWithTruncation(t *testing.T) {
	resp := New().WithTruncation(false, 1, 2, "max-files").Build()
	assert.Nil(t, resp.Meta)

	resp = New().WithTruncation(true, 10, 0, "max-files").Build()
	require.NotNil(t, resp.Meta)
	require.NotNil(t, resp.Meta.Truncation)
	assert.True(t, resp.Meta.Truncation.IsTruncated)
	assert.Equal(t, 10, resp.Meta.Truncation.Shown)
	assert.Equal(t, "max-files", resp.Meta.Truncation.Reason)
}

func TestBuilderWarnings(t *testing.T) {
	resp := New().
		Warning("first").
		WarningWithCode("PARSE_FAILURE", "second").
		Build()

	assert.Equal(t, []Warning{
		{Message: "first"},
		{Code: "PARSE_FAILURE", Message: "second"},
	}, resp.Warnings)
}

func TestBuilderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{"nil", nil, "", ""},
		{"plain", fmt.Errorf("boom"), "", "boom"},
		{"coded", errors.NewInvalidArgumentError("maxFiles", "must be between 1 and 5000"), "INVALID_ARGUMENT", `invalid argument "maxFiles": must be between 1 and 5000`},
		{"wrapped coded", fmt.Errorf("run: %w", errors.New(errors.NotADirectory, "root is not a directory", nil)), "NOT_A_DIRECTORY", "root is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := New().Error(tt.err).Build()
			if tt.err == nil {
				assert.Nil(t, resp.Error)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestResponseJSON(t *testing.T) {
	resp := New().
		Data([]int{1}).
		Run("abc", 0).
		Error(errors.NewInvalidArgumentError("rootPath", "")).
		Build()

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "1.0", decoded["schemaVersion"])
	meta := decoded["meta"].(map[string]interface{})
	assert.Equal(t, "abc", meta["runId"])
	assert.NotContains(t, meta, "truncation")

	errInfo := decoded["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_ARGUMENT", errInfo["code"])
	assert.Equal(t, map[string]interface{}{"param": "rootPath"}, errInfo["details"])
	assert.NotEmpty(t, errInfo["suggestedFixes"])
}
