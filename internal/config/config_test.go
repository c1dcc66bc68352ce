package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	AddFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newCmd())
	require.Nil(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstbench.yaml")
	require.Nil(t, os.WriteFile(path, []byte("algo: invert\nformat: text\nrender: true\n"), 0o644))

	t.Run("File", func(t *testing.T) {
		cmd := newCmd()
		require.Nil(t, cmd.Flags().Set("config", path))
		cfg, err := Load(cmd)
		require.Nil(t, err)
		assert.Equal(t, "invert", cfg.Algorithm)
		assert.Equal(t, "text", cfg.Format)
		assert.True(t, cfg.Render)
	})

	t.Run("EnvOverFile", func(t *testing.T) {
		t.Setenv("FSTBENCH_ALGO", "connect")
		cmd := newCmd()
		require.Nil(t, cmd.Flags().Set("config", path))
		cfg, err := Load(cmd)
		require.Nil(t, err)
		assert.Equal(t, "connect", cfg.Algorithm)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("FlagOverEnv", func(t *testing.T) {
		t.Setenv("FSTBENCH_ALGO", "connect")
		cmd := newCmd()
		require.Nil(t, cmd.Flags().Set("algo", "topsort"))
		require.Nil(t, cmd.Flags().Set("debug", "true"))
		cfg, err := Load(cmd)
		require.Nil(t, err)
		assert.Equal(t, "topsort", cfg.Algorithm)
		assert.True(t, cfg.Debug)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		cmd := newCmd()
		require.Nil(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")))
		_, err := Load(cmd)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("EmptyAlgorithm", func(t *testing.T) {
		cmd := newCmd()
		require.Nil(t, cmd.Flags().Set("algo", ""))
		_, err := Load(cmd)
		assert.NotNil(t, err)
	})
}
