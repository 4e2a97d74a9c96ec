//go:build !integration

package helpers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/bulk-unzipper/unzipper"
)

func TestRenderSummary(t *testing.T) {
	withoutColors(t)

	result := &unzipper.Result{
		Total:     2,
		Completed: 2,
		Failed:    1,
		Tasks: []unzipper.TaskResult{
			{
				Path:     "/src/photos.zip",
				Success:  true,
				Stats:    unzipper.Stats{Entries: 10, Size: 2500, Nested: 2, NestedSkipped: 1},
				Duration: 1500 * time.Millisecond,
			},
			{
				Path:     "/src/broken.zip",
				Err:      errors.New("zip: not a valid zip file"),
				Duration: 2 * time.Millisecond,
			},
		},
	}

	buf := new(bytes.Buffer)
	renderSummary(buf, result)

	out := buf.String()
	assert.Contains(t, out, "ARCHIVE")
	assert.Contains(t, out, "photos.zip")
	assert.Contains(t, out, "broken.zip")
	assert.NotContains(t, out, "/src/")
	assert.Contains(t, out, messageOK)
	assert.Contains(t, out, messageFailed)
	assert.Contains(t, out, "2.50 KB")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "2/2 processed")
	assert.Contains(t, out, "1 failed")
}

func TestTotalsRow(t *testing.T) {
	result := &unzipper.Result{
		Total:     3,
		Completed: 2,
		Tasks: []unzipper.TaskResult{
			{Stats: unzipper.Stats{Entries: 1, Nested: 1, Size: 1000}, Duration: time.Second},
			{Stats: unzipper.Stats{Entries: 2, NestedFailed: 3, Size: 500}, Duration: time.Second},
		},
	}

	row := totalsRow(result)
	require.Len(t, row, 8)
	assert.Equal(t, "2/3 processed", row[0])
	assert.Equal(t, 3, row[2])
	assert.Equal(t, 1, row[3])
	assert.Equal(t, 3, row[4])
	assert.Equal(t, 0, row[5])
	assert.Equal(t, "1.50 KB", row[6])
	assert.Equal(t, 2*time.Second, row[7])
}
