package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v, err := Load("")
	require.NoError(t, err)

	driver, err := StorageDriver(v)
	require.NoError(t, err)
	assert.Equal(t, DriverTOML, driver)
	assert.Equal(t, filepath.Join(home, ".subtrack", "subscriptions.toml"), v.GetString(TOMLPathKey))
	assert.Equal(t, filepath.Join(home, ".subtrack", "session.toml"), v.GetString(SessionPathKey))
	assert.Equal(t, "GBP", v.GetString(CurrencyKey))
	assert.Equal(t, "warn", v.GetString(LogLevelKey))
}

func TestLoadReadsConfigFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".subtrack"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".subtrack", "config.toml"), []byte(`
[storage]
driver = "sqlite"
sqlite_path = "/tmp/subtrack-test.db"

[display]
currency = "USD"
`), 0o600))
	t.Setenv("SUBTRACK_DISPLAY_CURRENCY", "EUR")

	v, err := Load("")
	require.NoError(t, err)

	driver, err := StorageDriver(v)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, driver)
	assert.Equal(t, "/tmp/subtrack-test.db", v.GetString(SQLitePathKey))
	assert.Equal(t, "EUR", v.GetString(CurrencyKey))
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SUBTRACK_STORAGE_DRIVER", "mongo")

	_, err := Load("")
	require.ErrorIs(t, err, ErrUnknownDriver)
	assert.ErrorContains(t, err, "mongo")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger("warn", false, &buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger, err = NewLogger("error", true, &buf)
	require.NoError(t, err)
	logger.Debug("verbose wins")
	assert.Contains(t, buf.String(), "verbose wins")

	_, err = NewLogger("loud", false, &buf)
	assert.ErrorContains(t, err, "parse log level")
}
