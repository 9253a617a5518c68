package features

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/char5742/stylus-zoom/internal/config"
	"github.com/char5742/stylus-zoom/internal/device"
)

// LocateFunc はスタイラスの識別子を探す関数の型
type LocateFunc func(ctx context.Context) (string, error)

// WaitForDevice は locate を実行し、デバイスが見つからない場合は
// cfg.Wait の間デバイスディレクトリを監視して再試行する。
// ファイルイベントとは別に cfg.Poll ごとにも再試行する
func WaitForDevice(ctx context.Context, cfg config.HotplugConfig, locate LocateFunc) (string, error) {
	id, err := locate(ctx)
	if !errors.Is(err, device.ErrDeviceNotFound) || cfg.Wait <= 0 {
		return id, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("unable to create a file watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range cfg.WatchDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warnf(ctx, "unable to watch '%s': %v", dir, err)
			continue
		}
		logger.Debugf(ctx, "watching '%s'", dir)
		watched++
	}
	if watched == 0 {
		return "", fmt.Errorf("%w: none of the directories %v can be watched", device.ErrDeviceNotFound, cfg.WatchDirs)
	}

	// 監視を開始する前に接続されたデバイスを取りこぼさないよう一度確認する
	if id, err := locate(ctx); !errors.Is(err, device.ErrDeviceNotFound) {
		return id, err
	}

	logger.Infof(ctx, "waiting up to %v for the stylus device", cfg.Wait)
	deadline := time.NewTimer(cfg.Wait)
	defer deadline.Stop()

	// 複数のイベントをまとめて処理するためのタイマー
	debounce := time.NewTimer(cfg.Debounce)
	debounce.Stop()
	defer debounce.Stop()
	pendingRescan := false

	// デバイスノードの作成後に一覧へ現れる場合に備えて定期的にも確認する
	var pollC <-chan time.Time
	if cfg.Poll > 0 {
		pollingTicker := time.NewTicker(cfg.Poll)
		defer pollingTicker.Stop()
		pollC = pollingTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case <-deadline.C:
			return "", device.ErrDeviceNotFound

		case <-debounce.C:
			pendingRescan = false
			id, err := locate(ctx)
			if !errors.Is(err, device.ErrDeviceNotFound) {
				return id, err
			}
			logger.Debugf(ctx, "the stylus device is still missing")

		case <-pollC:
			id, err := locate(ctx)
			if !errors.Is(err, device.ErrDeviceNotFound) {
				return id, err
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return "", device.ErrDeviceNotFound
			}
			logger.Tracef(ctx, "file system event: %s %s", event.Op.String(), event.Name)
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !pendingRescan {
				pendingRescan = true
				debounce.Reset(cfg.Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return "", device.ErrDeviceNotFound
			}
			logger.Warnf(ctx, "file watcher error: %v", err)
		}
	}
}
