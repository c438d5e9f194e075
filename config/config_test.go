package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	t.Setenv("APPENV", "test")
	t.Setenv("APPPORT", "")
	t.Setenv("DBDRIVER", "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "input", cfg.ModelInput)
	assert.Equal(t, "output", cfg.ModelOutput)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	t.Setenv("APPENV", "production")
	t.Setenv("APPPORT", "8081")
	t.Setenv("UPLOAD_DIR", "/srv/embryo/uploads")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://clinic.example.com")

	cfg := LoadConfig()
	assert.Equal(t, uint16(8081), cfg.AppPort)
	assert.Equal(t, "/srv/embryo/uploads", cfg.UploadDir)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000", "https://clinic.example.com"}, cfg.AllowedOrigins())
}

func TestLoadConfig_IsSingleton(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	t.Setenv("APPENV", "test")

	first := LoadConfig()
	t.Setenv("APPNAME", "Changed")
	second := LoadConfig()
	assert.Same(t, first, second)
}

func TestConnectDatabase_TestEnvUsesMemorySQLite(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	t.Setenv("APPENV", "test")

	db, err := ConnectDatabase()
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestConnectDatabase_UnknownDriver(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	t.Setenv("APPENV", "development")
	t.Setenv("DBDRIVER", "oracle")

	db, err := ConnectDatabase()
	assert.Nil(t, db)
	assert.Error(t, err)
}
