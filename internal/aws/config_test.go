package aws

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateSharedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

func TestLoadAwsConfig_Region(t *testing.T) {
	isolateSharedConfig(t)

	cfg, err := LoadAwsConfig(Context{Region: "ap-northeast-2"})
	require.NoError(t, err)
	assert.Equal(t, "ap-northeast-2", cfg.Region)
}

func TestLoadAwsConfig_UnknownProfile(t *testing.T) {
	isolateSharedConfig(t)

	_, err := LoadAwsConfig(Context{Profile: "does-not-exist", Region: "ap-northeast-2"})
	assert.Error(t, err)
}

func TestContextGetConfigCaches(t *testing.T) {
	isolateSharedConfig(t)

	ctx := &Context{Region: "ap-northeast-2"}
	first, err := ctx.GetConfig()
	require.NoError(t, err)

	ctx.Region = "us-east-1"
	second, err := ctx.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, first.Region, second.Region)
}

func TestClientsAreLazilyCreated(t *testing.T) {
	isolateSharedConfig(t)

	clients, err := NewAwsClients(&Context{Region: "ap-northeast-2"})
	require.NoError(t, err)
	assert.Same(t, clients.CloudFront(), clients.CloudFront())
	assert.Same(t, clients.S3(), clients.S3())
	assert.Same(t, clients.Uploader(), clients.Uploader())
	assert.NotNil(t, clients.Cfn())
}
