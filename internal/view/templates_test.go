package view

import (
	"io/fs"
	"net/http/httptest"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maresia/maresia/web"
)

func TestNewEngineParsesAllTemplates(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	// Every page file must define a template named after its path, which is
	// the name handlers render by.
	entries, err := fs.ReadDir(web.Templates, "templates/pages")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		name := path.Join("pages", entry.Name())
		require.NotNil(t, engine.templates.Lookup(name), "missing template %s", name)
	}
}

func TestRenderErrorPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	data := TemplateData{Title: "Erro", Data: map[string]any{"Message": "backend indisponível"}}
	require.NoError(t, engine.Render(rec, "pages/error.html", data))
	require.Contains(t, rec.Body.String(), "backend indisponível")
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}
