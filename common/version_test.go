//go:build !integration

package common

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAppVersionInfo(t *testing.T) {
	v := AppVersionInfo{
		Name:         "bulk-unzipper",
		Version:      "1.2.3",
		Revision:     "abcdef",
		Branch:       "main",
		GOVersion:    "go1.26",
		BuiltAt:      "now",
		OS:           "linux",
		Architecture: "amd64",
	}

	assert.Equal(t, "bulk-unzipper 1.2.3 (abcdef)", v.Line())
	assert.Equal(t, "1.2.3 (abcdef)", v.ShortLine())
	assert.Contains(t, v.Extended(), "OS/Arch:      linux/amd64\n")

	collector := v.NewMetricsCollector()
	assert.Equal(t, 1, testutil.CollectAndCount(collector, "bulk_unzipper_version_info"))
}
