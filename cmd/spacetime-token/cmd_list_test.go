package main

import (
	"testing"

	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestFilterForEnvironment(t *testing.T) {
	profiles := store.Profiles{
		"dev":  {Credential: "a", Address: "local"},
		"dev2": {Credential: "b", Address: "local"},
		"prod": {Credential: "c", Address: "https://x.example"},
	}

	t.Run("no environment set lists everything", func(t *testing.T) {
		assert.Equal(t, []string{"dev", "dev2", "prod"}, filterForEnvironment(profiles, "", false))
	})

	t.Run("set environment narrows the list", func(t *testing.T) {
		assert.Equal(t, []string{"dev", "dev2"}, filterForEnvironment(profiles, "local", true))
	})

	t.Run("environment with no matches is empty, not everything", func(t *testing.T) {
		assert.Empty(t, filterForEnvironment(profiles, "https://other.example", true))
	})
}
