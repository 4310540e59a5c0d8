package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad sidebar").Build(), expected: 2},
		{name: "config", err: ConfigError("bad metadata").Build(), expected: 7},
		{name: "docs", err: DocsError("bad markdown").Build(), expected: 11},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: stderrors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	assert.Empty(t, adapter.FormatError(nil))
	assert.Equal(t, "Error: unknown", adapter.FormatError(stderrors.New("unknown")))
	assert.Equal(t, "Internal error occurred (use -v for details)", adapter.FormatError(InternalError("boom").Build()))

	err := ValidationError("Category 'Guides' is not found").
		WithContext("language", "es").
		WithContext("category", "Guides").
		Build()
	assert.Equal(t, "Error: Category 'Guides' is not found (category=Guides, language=es)", adapter.FormatError(err))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	assert.Equal(t, err.Error(), verbose.FormatError(err))
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	assert.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	assert.Equal(t, http.StatusBadRequest, adapter.StatusCodeFor(ConfigError("x").Build()))
	assert.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(DocsError("x").Build()))
	assert.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(stderrors.New("x")))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/en/index.html", nil)
	adapter.WriteErrorResponse(rec, req, DocsError("parse failed").WithContext("file", "a.md").Build())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"parse failed","code":"docs","details":{"file":"a.md"}}`, rec.Body.String())
}
