package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("📇", "Loading contacts...")

	// Then: output contains icon and message
	assert.Equal(t, "📇 Loading contacts...\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"success", func(w *Writer) { w.Successf("Imported %d contacts", 3) }, "✅ Imported 3 contacts\n"},
		{"warning", func(w *Writer) { w.Warningf("%s skipped", "a.vcf") }, "⚠️  a.vcf skipped\n"},
		{"error", func(w *Writer) { w.Errorf("call failed: %s", "no opener") }, "❌ call failed: no opener\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Code_IndentsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("a: 1\nb: 2\n")

	assert.Equal(t, "\n  a: 1\n  b: 2\n\n", buf.String())
}

func TestWriter_KeyValue(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).KeyValue("region", "DE")

	assert.Contains(t, buf.String(), "region:")
	assert.Contains(t, buf.String(), "DE")
}

func TestWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}

	err := New(buf).JSON(map[string]string{"uri": "tel://1<2>"})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"uri\": \"tel://1<2>\"\n}\n", buf.String())
}
