package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarsWriteDescription(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracker := Bars(&buf)(2, "Processing RSS feeds")
	tracker.Add(1)
	tracker.Add(1)
	tracker.Finish()

	assert.Contains(t, buf.String(), "Processing RSS feeds")
}

func TestNoneIsSilent(t *testing.T) {
	t.Parallel()

	tracker := None()(10, "ignored")
	tracker.Add(5)
	tracker.Finish()
	tracker.Exit()
}

func TestBarsExitKeepsPartialProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracker := Bars(&buf)(4, "Summarising")
	tracker.Add(1)
	tracker.Exit()

	assert.Contains(t, buf.String(), "1/4")
	assert.NotContains(t, buf.String(), "4/4")
}
