package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{})
	l.Debug("hidden")
	l.Info("shown", "iter", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "fstbench")

	buf.Reset()
	l = New(&buf, Config{Debug: true})
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
