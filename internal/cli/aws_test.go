package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwsCliRun(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		wantStdout string
		wantErr    bool
		wantCode   int
		wantStderr string
	}{
		{
			name:       "stdout is captured and trimmed",
			script:     `printf '  {"ETag":"E1"}\n'`,
			wantStdout: `{"ETag":"E1"}`,
		},
		{
			name:       "non-zero exit returns CommandError",
			script:     `echo "An error occurred (AccessDenied)" >&2; exit 255`,
			wantErr:    true,
			wantCode:   255,
			wantStderr: "An error occurred (AccessDenied)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &AwsCli{Binary: "sh"}
			result, err := runner.Run(context.Background(), "-c", tt.script)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStdout, result.Stdout)
				return
			}

			require.Error(t, err)
			var cmdErr *CommandError
			require.True(t, errors.As(err, &cmdErr))
			assert.Equal(t, tt.wantCode, cmdErr.ExitCode)
			assert.Equal(t, tt.wantStderr, cmdErr.Stderr)
			assert.Contains(t, cmdErr.Error(), "終了コード: 255")
			assert.Contains(t, cmdErr.Error(), "AccessDenied")
		})
	}
}

func TestNewAwsCli(t *testing.T) {
	runner := NewAwsCli("dev", "ap-northeast-2")
	assert.Equal(t, "aws", runner.Binary)
	assert.Equal(t, "dev", runner.Profile)
	assert.Equal(t, "ap-northeast-2", runner.Region)
}

func TestAwsCliRun_ExplicitRegion(t *testing.T) {
	runner := &AwsCli{Binary: "sh", Region: "ap-northeast-2"}

	result, err := runner.Run(context.Background(), "-c", `printf '%s' "$*"`, "sh", "--region", "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "--region us-east-1", result.Stdout)

	result, err = runner.Run(context.Background(), "-c", `printf '%s' "$*"`, "sh")
	require.NoError(t, err)
	assert.Equal(t, "--region ap-northeast-2", result.Stdout)
}
