package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/config"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "./generated_resumes", cfg.OutputDir)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, 10, cfg.Limit)
}

func TestResolveConfig_FileAndOverrides(t *testing.T) {
	content := `{"output_dir": "./from-file", "limit": 3}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := resolveConfig(path, func(c *config.Config) {
		c.OutputDir = "./from-flag"
	})
	require.NoError(t, err)

	assert.Equal(t, "./from-flag", cfg.OutputDir, "flag overrides file")
	assert.Equal(t, 3, cfg.Limit)
}

func TestResolveConfig_InvalidProvider(t *testing.T) {
	_, err := resolveConfig("", func(c *config.Config) {
		c.Provider = "cohere"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestAddJob_FlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		textFile    string
		url         string
		score       float64
		errorString string
	}{
		{"neither source", "", "", 0, "either --text-file or --url"},
		{"both sources", "job.txt", "https://example.com", 0, "mutually exclusive"},
		{"score out of range", "job.txt", "", 1.5, "between 0.0 and 1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addJobTextFile = tt.textFile
			addJobURL = tt.url
			addJobScore = tt.score
			t.Cleanup(func() {
				addJobTextFile, addJobURL, addJobScore = "", "", 0
			})

			err := runAddJob(addJobCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestProcessJob_InvalidJobID(t *testing.T) {
	processJobID = "not-a-uuid"
	t.Cleanup(func() { processJobID = "" })

	err := runProcessJob(processJobCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job ID")
}

func TestBuildRenderer_DefaultsWithoutFingerprint(t *testing.T) {
	r := buildRenderer(config.Config{})
	require.NotNil(t, r)
	assert.True(t, r.Registered("Helvetica"))
	assert.False(t, r.Registered("Calibri"))
}
