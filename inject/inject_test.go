package inject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/service/vo"
)

const editorPage = `<!DOCTYPE html>
<html>
<head><title>Edit Post ‹ Blog</title></head>
<body>
<div id="wpbody-content">
	<div class="notice wrap-notice"><h2>Notice</h2></div>
	<div class="wrap">
		<h2 class="wp-heading-inline">Edit Post</h2>
		<div id="poststuff"></div>
	</div>
</div>
</body>
</html>`

func TestInject(t *testing.T) {
	page, err := Parse(strings.NewReader(editorPage))
	require.NoError(t, err)
	assert.Equal(t, "Edit Post ‹ Blog", page.Title())

	fragment := render.NewRenderer(render.Options{}).Render(vo.Some(5), vo.Some(3))
	require.NoError(t, Into(page, "")(fragment))

	var b strings.Builder
	require.NoError(t, page.Render(&b))
	out := b.String()
	assert.Contains(t, out, `<h2 class="wp-heading-inline">Edit Post<div id="editorPrevNextNavigation"`)
	assert.Contains(t, out, `<h2>Notice</h2>`)
	assert.Equal(t, 1, strings.Count(out, `id="editorPrevNextNavigation"`))
}

func TestInjectReplacesExisting(t *testing.T) {
	page, err := Parse(strings.NewReader(editorPage))
	require.NoError(t, err)
	r := render.NewRenderer(render.Options{})

	require.NoError(t, page.Inject(DefaultContainer, r.Render(vo.Some(5), vo.None())))
	require.NoError(t, page.Inject(DefaultContainer, r.Render(vo.None(), vo.Some(3))))

	var b strings.Builder
	require.NoError(t, page.Render(&b))
	out := b.String()
	assert.Equal(t, 1, strings.Count(out, `id="editorPrevNextNavigation"`))
	assert.Contains(t, out, "post=3")
	assert.NotContains(t, out, "post=5")
}

func TestInjectContainerNotFound(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><body><p>login</p></body></html>`))
	require.NoError(t, err)

	err = page.Inject(DefaultContainer, render.NewRenderer(render.Options{}).Render(vo.Some(1), vo.None()))
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestInjectContainerNotFoundKeepsExisting(t *testing.T) {
	page, err := Parse(strings.NewReader(`<html><body><div id="wpbody-content"><div id="editorPrevNextNavigation">old</div></div></body></html>`))
	require.NoError(t, err)

	err = page.Inject(DefaultContainer, render.NewRenderer(render.Options{}).Render(vo.Some(1), vo.None()))
	assert.ErrorIs(t, err, ErrContainerNotFound)

	var b strings.Builder
	require.NoError(t, page.Render(&b))
	assert.Contains(t, b.String(), `<div id="editorPrevNextNavigation">old</div>`)
	assert.NotContains(t, b.String(), "post=1")
}

func TestParseSelector(t *testing.T) {
	steps, err := parseSelector("#wpbody-content .wrap h2.wp-heading-inline")
	require.NoError(t, err)
	assert.Equal(t, []simpleSelector{
		{id: "wpbody-content"},
		{class: "wrap"},
		{tag: "h2", class: "wp-heading-inline"},
	}, steps)

	_, err = parseSelector("  ")
	assert.Error(t, err)
	_, err = parseSelector("#")
	assert.Error(t, err)
}
