package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorTakesFirstSnapshotImmediately(t *testing.T) {
	StartHealthMonitor(nil, nil, nil)

	assert.Eventually(t, func() bool {
		return !GetHealthStatus().CheckedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond)

	// Unconfigured collaborators report nil, not false.
	status := GetHealthStatus()
	assert.Nil(t, status.Catalog)
	assert.Nil(t, status.Mongo)
	assert.Nil(t, status.Redis)
}
