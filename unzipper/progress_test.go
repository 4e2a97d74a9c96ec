//go:build !integration

package unzipper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/meter"
)

var _ meter.Counter = &Progress{}

func TestProgress(t *testing.T) {
	var p Progress

	completed, total := p.Load()
	assert.Zero(t, completed)
	assert.Zero(t, total)

	p.start(2)
	completed, total = p.Load()
	assert.Equal(t, 0, completed)
	assert.Equal(t, 2, total)

	assert.Equal(t, 1, p.advance())
	assert.Equal(t, 2, p.advance())

	completed, total = p.Load()
	assert.Equal(t, 2, completed)
	assert.Equal(t, 2, total)

	p.start(5)
	completed, total = p.Load()
	assert.Equal(t, 0, completed)
	assert.Equal(t, 5, total)
}
