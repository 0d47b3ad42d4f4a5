package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, true)
	defer InitWriter(os.Stderr, false)

	Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=1")
}

func TestInitWriter_InfoHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)
	defer InitWriter(os.Stderr, false)

	Debug("hidden")
	Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)
	defer InitWriter(os.Stderr, false)

	Error("command failed", "err", "boom")
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "err=boom")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, true)
	defer InitWriter(os.Stderr, false)

	p := NewProgress("entities", 5, 2)
	for i := 0; i < 5; i++ {
		p.Step()
	}
	p.Finish()

	assert.Equal(t, 5, p.Done())
	assert.Contains(t, buf.String(), "entities finished")

	var nilProgress *Progress
	nilProgress.Step()
	nilProgress.Finish()
}
