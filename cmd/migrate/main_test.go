package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsUnreachableDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "1")
	t.Setenv("DB_CONNECT_TIMEOUT", "1s")

	err := run(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
