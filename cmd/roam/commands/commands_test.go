package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamfs/roamfs/pkg/config"
)

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2026-01-01")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "roam 1.2.3")
	assert.Contains(t, buf.String(), "abc1234")
}

func TestLsOnMemoryBackend(t *testing.T) {
	// No config file: defaults select the in-memory backend.
	cfgPath = filepath.Join(t.TempDir(), "absent.yaml")
	t.Cleanup(func() { cfgPath = "" })

	rootCmd.SetArgs([]string{"ls"})
	require.NoError(t, rootCmd.Execute())
}

func TestMkdirThenRm(t *testing.T) {
	cfgPath = filepath.Join(t.TempDir(), "absent.yaml")
	t.Cleanup(func() { cfgPath = "" })

	// Each invocation gets a fresh in-memory backend, so rm must fail on
	// the directory mkdir created in the previous run.
	rootCmd.SetArgs([]string{"mkdir", "/scratch"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"rm", "/scratch"})
	assert.Error(t, rootCmd.Execute())
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.yaml")
	cfgPath = target
	t.Cleanup(func() { cfgPath = "" })

	rootCmd.SetArgs([]string{"config", "init"})
	require.NoError(t, rootCmd.Execute())

	loaded, err := config.Load(target)
	require.NoError(t, err)
	assert.Equal(t, "memory", loaded.Backend.Type)

	// A second init without --force must refuse to overwrite.
	rootCmd.SetArgs([]string{"config", "init"})
	assert.Error(t, rootCmd.Execute())
}

func TestNewBackendClient(t *testing.T) {
	cfg := config.GetDefaultConfig()

	c, err := newBackendClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg.Backend.Type = "local"
	cfg.Backend.Local.Root = t.TempDir()
	c, err = newBackendClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg.Backend.Type = "carrier-pigeon"
	_, err = newBackendClient(cfg)
	assert.Error(t, err)
}
