package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"

	"github.com/char5742/stylus-zoom/internal/device"
	"github.com/char5742/stylus-zoom/internal/xsetwacom"
)

// 終了コード
const (
	exitOK             = 0
	exitDeviceNotFound = 1
	exitUsage          = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// シグナルを受けたら実行中の外部コマンドを止める
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout, os.Stderr, newExecRunner)
	cmd, err := root.ExecuteContextC(ctx)
	if cmd != nil {
		// ロガーは実行されたサブコマンドのコンテキストに設定されている
		belt.Flush(cmd.Context())
	}
	if err != nil {
		printError(err)
		return exitCode(err)
	}
	return exitOK
}

func newExecRunner(command string) (xsetwacom.Runner, error) {
	return xsetwacom.NewExecRunner(command)
}

func printError(err error) {
	if errors.Is(err, device.ErrDeviceNotFound) {
		fmt.Fprintln(os.Stderr, "スタイラスデバイスが見つかりませんでした。")
		return
	}
	fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
}

// exitCode はエラーの種類に応じた終了コードを返す
func exitCode(err error) int {
	var cmdErr *xsetwacom.CommandError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, device.ErrDeviceNotFound):
		return exitDeviceNotFound
	case errors.As(err, &cmdErr):
		return cmdErr.ExitCode
	default:
		// 使い方の誤りや外部ツールの想定外の出力
		return exitUsage
	}
}
