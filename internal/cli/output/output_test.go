package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveMode_AutoFallsBackToMarkdown(t *testing.T) {
	// a bytes.Buffer is not a terminal
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r = NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, Mode(""))
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestEffectiveMode_ExplicitModesPassThrough(t *testing.T) {
	for _, mode := range []Mode{ModeText, ModeMarkdown, ModeJSON} {
		r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestHeader_Markdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &bytes.Buffer{}, ModeMarkdown)

	r.Header(1, "Artifacts")
	r.Header(2, "Edges")

	assert.Contains(t, buf.String(), "# Artifacts")
	assert.Contains(t, buf.String(), "## Edges")
}

func TestHeader_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &bytes.Buffer{}, ModeText)

	r.Header(1, "Artifacts")

	assert.Contains(t, buf.String(), "Artifacts")
	assert.NotContains(t, buf.String(), "# Artifacts")
}

func TestKeyValue(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &bytes.Buffer{}, ModeMarkdown)
	r.KeyValue("Nodes", "17")
	assert.Equal(t, "- **Nodes:** 17\n", buf.String())

	buf.Reset()
	r = NewRenderer(&buf, &bytes.Buffer{}, ModeText)
	r.KeyValue("Nodes", "17")
	assert.Contains(t, buf.String(), "Nodes:")
	assert.Contains(t, buf.String(), "17")
}

func TestWarnf_WritesToErrStream(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Warnf("mapping column absent: %s", "origins")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "mapping column absent: origins")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "- **Key:** value", FormatKeyValue("Key", "value"))
	assert.Equal(t, "```bash\nleaplineage render\n```", FormatCodeBlock("bash", "leaplineage render"))
}

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &bytes.Buffer{}, ModeText)
	r.Success("artifact written")
	assert.Contains(t, buf.String(), "✓ artifact written")

	buf.Reset()
	r = NewRenderer(&buf, &bytes.Buffer{}, ModeMarkdown)
	r.Success("artifact written")
	assert.Equal(t, "artifact written\n", buf.String())
}

func TestStatusLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &bytes.Buffer{}, ModeText)
	r.StatusLine("leaplineage.yaml", "success", "")
	assert.Contains(t, buf.String(), "✓ leaplineage.yaml")

	buf.Reset()
	r.StatusLine("data_mapping.csv", "success", "sample")
	assert.Contains(t, buf.String(), "(sample)")

	buf.Reset()
	r = NewRenderer(&buf, &bytes.Buffer{}, ModeMarkdown)
	r.StatusLine("leaplineage.yaml", "error", "exists")
	assert.Equal(t, "- ✗ leaplineage.yaml (exists)\n", buf.String())
}
