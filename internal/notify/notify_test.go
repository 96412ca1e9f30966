package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnceNotifierSuppressesRepeats(t *testing.T) {
	rec := &Recorder{}
	once := NewOnce(rec)

	once.Notify(LevelError, "Error saving data")
	once.Notify(LevelError, "Error saving data")
	once.Notify(LevelError, "Error saving data")
	once.Notify(LevelWarning, "Using instant response (AI unavailable)")

	entries := rec.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "Error saving data", entries[0].Message)
	assert.Equal(t, "Using instant response (AI unavailable)", entries[1].Message)
}

func TestRecorderCopies(t *testing.T) {
	rec := &Recorder{}
	rec.Notify(LevelInfo, "one")

	first := rec.Entries()
	rec.Notify(LevelInfo, "two")

	assert.Len(t, first, 1)
	assert.Len(t, rec.Entries(), 2)
}
