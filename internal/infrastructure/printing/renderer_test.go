package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperSize(t *testing.T) {
	t.Run("valid sizes", func(t *testing.T) {
		assert.True(t, PaperSizeA4.IsValid())
		assert.True(t, PaperSizeA5.IsValid())
		assert.True(t, PaperSizeLetter.IsValid())
		assert.False(t, PaperSize("TABLOID").IsValid())
	})

	t.Run("dimensions in millimeters", func(t *testing.T) {
		w, h := PaperSizeA4.Dimensions()
		assert.Equal(t, 210, w)
		assert.Equal(t, 297, h)

		w, h = PaperSizeLetter.Dimensions()
		assert.Equal(t, 216, w)
		assert.Equal(t, 279, h)
	})
}

func TestDefaultMargins(t *testing.T) {
	m := DefaultMargins()
	assert.Equal(t, Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}, m)
}

func TestRenderError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewRenderError(ErrCodeRenderFailed, "render failed", nil)
		assert.Equal(t, "render failed", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := assert.AnError
		err := NewRenderError(ErrCodeRenderTimeout, "timed out", cause)
		assert.Contains(t, err.Error(), "timed out")
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestEstimatePageCount(t *testing.T) {
	t.Run("counts page objects excluding the parent", func(t *testing.T) {
		pdf := []byte("/Type /Pages /Type /Page /Type /Page")
		assert.Equal(t, 2, estimatePageCount(pdf))
	})

	t.Run("at least one page", func(t *testing.T) {
		assert.Equal(t, 1, estimatePageCount([]byte("not a pdf")))
	})
}

func TestBuildCompleteHTML(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{}}

	t.Run("wraps fragments in a document", func(t *testing.T) {
		html := r.buildCompleteHTML(&RenderRequest{HTML: "<p>hello</p>", Title: "Doc"})
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<title>Doc</title>")
		assert.Contains(t, html, "<p>hello</p>")
	})

	t.Run("leaves complete documents alone", func(t *testing.T) {
		full := "<!DOCTYPE html><html><body>done</body></html>"
		assert.Equal(t, full, r.buildCompleteHTML(&RenderRequest{HTML: full}))
	})
}
