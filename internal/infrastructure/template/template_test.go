package template_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/template"
)

func TestSubstitute(t *testing.T) {
	out, err := template.Substitute("<h1>{{TITLE}}</h1>{{ BODY }}", map[string]string{
		"TITLE": "Invoice MEMO-1",
		"BODY":  "<p>{{TITLE}}</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Invoice MEMO-1</h1><p>{{TITLE}}</p>", out, "los valores no se vuelven a sustituir")
}

func TestSubstitute_MarcadorSinValor(t *testing.T) {
	_, err := template.Substitute("{{TITLE}} {{SELLER}} {{BODY}} {{SELLER}}", map[string]string{"TITLE": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, template.ErrUnresolvedToken)
	assert.Contains(t, err.Error(), "BODY, SELLER")
}

func TestSubstitute_IgnoraLlavesQueNoSonMarcadores(t *testing.T) {
	out, err := template.Substitute("a { b: c } {{lower}}", nil)
	require.NoError(t, err)
	assert.Equal(t, "a { b: c } {{lower}}", out)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"TITLE", "BODY"}, template.Tokens("{{TITLE}}{{BODY}}{{TITLE}}"))
}

func TestFSStore_Embebidas(t *testing.T) {
	s := template.NewFSStore("")
	ctx := context.Background()

	html, err := s.HTML(ctx, template.DefaultHTML)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"TITLE", "STYLESHEET", "INVOICE_NO", "BODY", "GENERATED_AT"},
		template.Tokens(html))

	css, err := s.Stylesheet(ctx, template.DefaultStylesheet)
	require.NoError(t, err)
	assert.Contains(t, css, "@page")

	_, err = s.HTML(ctx, "missing.html")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.HTML(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFSStore_ContextoCancelado(t *testing.T) {
	s := template.NewStoreFromFS(fstest.MapFS{"a.html": {Data: []byte("x")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.HTML(ctx, "a.html")
	assert.ErrorIs(t, err, context.Canceled)
}
