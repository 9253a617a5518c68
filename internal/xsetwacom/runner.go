package xsetwacom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/google/shlex"
	"golang.org/x/sys/execabs"
)

// DefaultCommand は外部設定ツールのデフォルトのコマンド
const DefaultCommand = "xsetwacom"

// Runner は外部設定ツールを引数付きで実行し、標準出力を返すインターフェース
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner はサブプロセスとして外部ツールを実行する Runner
type ExecRunner struct {
	Command []string  // 実行するコマンドと前置引数
	Stderr  io.Writer // 子プロセスの標準エラー出力先。nil の場合は os.Stderr
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner はシェル風のコマンド文字列 (例: "flatpak-spawn --host xsetwacom") から Runner を作成する
func NewExecRunner(command string) (*ExecRunner, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("unable to split the command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("the command is empty")
	}
	return &ExecRunner{Command: argv}, nil
}

// Run はコマンドを実行して完了まで待機する
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if len(r.Command) == 0 {
		return nil, fmt.Errorf("the command is empty")
	}

	argv := make([]string, 0, len(r.Command)-1+len(args))
	argv = append(argv, r.Command[1:]...)
	argv = append(argv, args...)

	cmd := execabs.CommandContext(ctx, r.Command[0], argv...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debugf(ctx, "running: %s", strings.Join(cmd.Args, " "))
	err := cmd.Run()
	logger.Tracef(ctx, "output of %s: %q", r.Command[0], stdout.String())
	if err != nil {
		return stdout.Bytes(), newCommandError(ctx, append([]string{r.Command[0]}, argv...), err)
	}
	return stdout.Bytes(), nil
}

// 外部コマンドが失敗した場合の終了コード（シェルの慣例）
const (
	exitCodeNotExecutable = 127 // コマンドが見つからない・実行できない
	exitCodeSignalBase    = 128 // シグナルで終了した場合は 128+シグナル番号
)

// CommandError は外部コマンドの失敗を表すエラー
type CommandError struct {
	Args     []string
	ExitCode int
	Err      error
}

func newCommandError(ctx context.Context, args []string, err error) *CommandError {
	cmdErr := &CommandError{
		Args:     args,
		ExitCode: exitCodeNotExecutable,
		Err:      err,
	}

	// コンテキストの取り消し（SIGINT/SIGTERM）による中断
	if ctxErr := ctx.Err(); ctxErr != nil {
		cmdErr.ExitCode = exitCodeSignalBase + int(syscall.SIGINT)
		cmdErr.Err = fmt.Errorf("%w: %v", ctxErr, err)
		return cmdErr
	}

	var exitErr *execabs.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			cmdErr.ExitCode = exitCodeSignalBase + int(ws.Signal())
		} else if cmdErr.ExitCode < 0 {
			cmdErr.ExitCode = exitCodeSignalBase
		}
	}
	return cmdErr
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command '%s' failed (exit code %d): %v", strings.Join(e.Args, " "), e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
