package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMarks(t *testing.T) {
	assert.True(t, SentinelMarks().IsSentinel())
	assert.False(t, Marks{Timestamp: 1, Fingerprint: "abc"}.IsSentinel())
}

func TestMarksNewerThan(t *testing.T) {
	newer := Marks{Timestamp: 200, Fingerprint: "b"}
	older := Marks{Timestamp: 100, Fingerprint: "a"}
	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))

	sameFingerprint := Marks{Timestamp: 200, Fingerprint: "a"}
	assert.False(t, sameFingerprint.NewerThan(older), "identical fingerprints never count as newer")
}
