package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTest(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Header(2, "Components")
	assert.Equal(t, "## Components\n\n", out.String())

	r, out, _ = newTest(ModeText, false)
	r.Header(2, "Components")
	assert.Equal(t, "Components\n", out.String())
}

func TestMessages_PlainWithoutTTY(t *testing.T) {
	r, out, errOut := newTest(ModeText, false)
	r.Success("built 3 components")
	r.Muted("state saved")
	r.Warning("unused prop")
	r.Error("boom")

	assert.Equal(t, "✓ built 3 components\nstate saved\n", out.String())
	assert.Equal(t, "warning: unused prop\nerror: boom\n", errOut.String())
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		status string
		detail string
		want   string
	}{
		{"built", "12ms", "✓ Hero 12ms\n"},
		{"failed", "", "✗ Hero\n"},
		{"skipped", "unchanged", "- Hero unchanged\n"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r, out, _ := newTest(ModeText, false)
			r.StatusLine("Hero", tt.status, tt.detail)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestJSON(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"components": 2}))
	assert.Equal(t, "{\n  \"components\": 2\n}\n", out.String())
}

func TestCode(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Code("css", ".a {}\n")
	assert.Equal(t, "```css\n.a {}\n```\n", out.String())

	r, out, _ = newTest(ModeText, false)
	r.Code("css", ".a {}\n")
	assert.Equal(t, ".a {}\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Graph", FormatHeader(1, "Graph"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "# Zero", FormatHeader(0, "Zero"))
	assert.Equal(t, "- **Components**: 4", FormatKeyValue("Components", "4"))
	assert.Equal(t, "```jsx\nx\n```", FormatCodeBlock("jsx", "x\n"))
	assert.Equal(t, "Media Queries", Title("media_queries"))
}

func TestTable(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Table([]string{"Code", "Message"}, [][]string{{"E102", "ref not found"}})
	assert.Contains(t, out.String(), "| Code | Message")
	assert.Contains(t, out.String(), "| E102 | ref not found |")

	r, out, _ = newTest(ModeText, false)
	r.Table([]string{"Code"}, [][]string{{"W001"}})
	assert.Contains(t, out.String(), "W001")
	assert.Contains(t, out.String(), "┌")
}
