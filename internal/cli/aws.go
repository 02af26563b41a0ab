package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"ufops/internal/log"
)

// Result はコマンド実行結果（標準出力・標準エラー出力）を保持する
type Result struct {
	Stdout string
	Stderr string
}

// Runner はコマンドを実行して結果を返すインターフェース
// テストではJSONを返すフェイクに差し替える
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// CommandError は外部コマンドが0以外で終了したことを表すエラー
type CommandError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("コマンド '%s' が失敗しました (終了コード: %d)", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\nStderr: " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// AwsCli は aws コマンドを実行する Runner 実装
type AwsCli struct {
	Binary  string // 空の場合は "aws"
	Profile string
	Region  string
}

// NewAwsCli はプロファイル・リージョンを引き継いだ AwsCli を作成
func NewAwsCli(profile, region string) *AwsCli {
	return &AwsCli{Binary: "aws", Profile: profile, Region: region}
}

// Run は aws コマンドを実行し、標準出力と標準エラー出力を取り込んで返す
func (a *AwsCli) Run(ctx context.Context, args ...string) (Result, error) {
	binary := a.Binary
	if binary == "" {
		binary = "aws"
	}
	fullArgs := append([]string{}, args...)
	if a.Profile != "" {
		fullArgs = append(fullArgs, "--profile", a.Profile)
	}
	// 呼び出し側が --region を指定した場合はそちらを優先する
	if a.Region != "" && !hasFlag(args, "--region") {
		fullArgs = append(fullArgs, "--region", a.Region)
	}

	fmt.Printf("▶️  実行: %s %s\n", binary, strings.Join(args, " "))
	log.Debugf("exec %s %v", binary, fullArgs)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, fullArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: stderr.String(),
	}
	log.Tracef("stdout: %s", result.Stdout)
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return result, &CommandError{
			Args:     append([]string{binary}, args...),
			ExitCode: exitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}
	return result, nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
