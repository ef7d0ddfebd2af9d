package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderIndex(&buf, p))
	return buf.String()
}

func TestRenderIndex_Form(t *testing.T) {
	html := render(t, NewPage(".png,.jpg,.jpeg,.pdf"))

	assert.Contains(t, html, "Financial Literacy Expense Analyzer")
	assert.Contains(t, html, "Do NOT upload or include any personal or sensitive information")
	assert.Contains(t, html, `accept=".png,.jpg,.jpeg,.pdf"`)
	assert.Contains(t, html, `name="file"`)
	assert.Contains(t, html, `name="context"`)
	assert.Contains(t, html, "Analyze Expense")
	assert.NotContains(t, html, `id="analysis"`)
	assert.NotContains(t, html, `id="error"`)
}

func TestRenderIndex_Analysis(t *testing.T) {
	p := NewPage("").WithAnalysis("Looks fine.\n  Maybe brew at home.")

	html := render(t, p)

	assert.Contains(t, html, `id="analysis"`)
	assert.Contains(t, html, "Analysis</h2>")
	assert.Contains(t, html, "Looks fine.\n  Maybe brew at home.")
}

func TestRenderIndex_EscapesText(t *testing.T) {
	p := NewPage("").WithAnalysis("<script>alert(1)</script>")
	p.Context = "</textarea><b>x</b>"

	html := render(t, p)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "</textarea><b>")
}

func TestRenderIndex_Failure(t *testing.T) {
	p := NewPage("").WithAnalysis("stale")
	p = p.WithFailure("llm: completion endpoint returned 401: bad key")

	html := render(t, p)

	assert.Contains(t, html, "Error: llm: completion endpoint returned 401: bad key")
	assert.NotContains(t, html, `id="analysis"`)
}

func TestRenderIndex_EmptyAnalysis(t *testing.T) {
	html := render(t, NewPage("").WithAnalysis(""))

	assert.Contains(t, html, `id="analysis"`)
	assert.Contains(t, html, "Analysis</h2>")
	assert.NotContains(t, html, `id="error"`)
}

func TestPage_HasAnalysis(t *testing.T) {
	assert.False(t, Page{}.HasAnalysis())
	assert.False(t, Page{Analysis: "x"}.HasAnalysis())
	assert.True(t, Page{}.WithAnalysis("").HasAnalysis())
	assert.True(t, Page{}.WithAnalysis("x").HasAnalysis())
	assert.False(t, Page{}.WithAnalysis("x").WithFailure("boom").HasAnalysis())
}
