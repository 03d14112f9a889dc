package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFlags(t *testing.T) {
	for _, name := range []string{"config", "data-dir", "drop"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

func TestSeedRequiresMongoURL(t *testing.T) {
	t.Setenv("DATA_BACKEND", "static")
	t.Setenv("MONGO_URL", "")

	rootCmd.SetArgs([]string{"--data-dir", t.TempDir()})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")
}
