package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultFileEncoding, cfg.File.Encoding)
	assert.Equal(t, DefaultFTPHost, cfg.FTP.Host)
	assert.Equal(t, DefaultFTPPort, cfg.FTP.Port)
	assert.Equal(t, DefaultFTPDirectory, cfg.FTP.Directory)
	assert.Equal(t, 30, cfg.FTP.TimeoutSeconds)
	assert.Equal(t, DefaultAddressURL, cfg.Endpoints.AddressURL)
	assert.Equal(t, DefaultOrderURL, cfg.Endpoints.OrderURL)
	assert.Equal(t, DefaultItemURL, cfg.Endpoints.ItemURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ZANDERS_FTP_HOST", "ftp.example.com")
	t.Setenv("ZANDERS_DEBUG", "true")
	t.Setenv("ZANDERS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ftp.example.com", cfg.FTP.Host)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset values still fall back to defaults.
	assert.Equal(t, DefaultFTPDirectory, cfg.FTP.Directory)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("ZANDERS_FTP_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp.port")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultFTPHost, cfg.FTP.Host)
	assert.Equal(t, DefaultFileEncoding, cfg.File.Encoding)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestFTPAddr(t *testing.T) {
	f := FTPConfig{Host: "ftp.example.com", Port: 2121}
	assert.Equal(t, "ftp.example.com:2121", f.FTPAddr())
}
