package features

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/char5742/stylus-zoom/internal/config"
	"github.com/char5742/stylus-zoom/internal/device"
)

func TestWaitForDeviceNoWait(t *testing.T) {
	var calls int
	_, err := WaitForDevice(context.Background(), config.HotplugConfig{}, func(ctx context.Context) (string, error) {
		calls++
		return "", device.ErrDeviceNotFound
	})
	require.ErrorIs(t, err, device.ErrDeviceNotFound)
	require.Equal(t, 1, calls)
}

func TestWaitForDeviceOtherErrorIsReturned(t *testing.T) {
	failure := errors.New("boom")
	cfg := config.HotplugConfig{Wait: time.Minute, WatchDirs: []string{t.TempDir()}}

	_, err := WaitForDevice(context.Background(), cfg, func(ctx context.Context) (string, error) {
		return "", failure
	})
	require.ErrorIs(t, err, failure)
}

func TestWaitForDeviceHotplug(t *testing.T) {
	dir := t.TempDir()
	cfg := config.HotplugConfig{
		Wait:      10 * time.Second,
		Debounce:  20 * time.Millisecond,
		WatchDirs: []string{dir, filepath.Join(dir, "missing")},
	}

	var plugged atomic.Bool
	go func() {
		time.Sleep(200 * time.Millisecond)
		plugged.Store(true)
		_ = os.WriteFile(filepath.Join(dir, "event7"), nil, 0644)
	}()

	id, err := WaitForDevice(context.Background(), cfg, func(ctx context.Context) (string, error) {
		if plugged.Load() {
			return "42", nil
		}
		return "", device.ErrDeviceNotFound
	})
	require.NoError(t, err)
	require.Equal(t, "42", id)
}

func TestWaitForDeviceTimeout(t *testing.T) {
	cfg := config.HotplugConfig{
		Wait:      100 * time.Millisecond,
		Debounce:  10 * time.Millisecond,
		WatchDirs: []string{t.TempDir()},
	}

	start := time.Now()
	_, err := WaitForDevice(context.Background(), cfg, func(ctx context.Context) (string, error) {
		return "", device.ErrDeviceNotFound
	})
	require.ErrorIs(t, err, device.ErrDeviceNotFound)
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitForDeviceNoWatchableDir(t *testing.T) {
	cfg := config.HotplugConfig{
		Wait:      time.Second,
		WatchDirs: []string{filepath.Join(t.TempDir(), "missing")},
	}

	_, err := WaitForDevice(context.Background(), cfg, func(ctx context.Context) (string, error) {
		return "", device.ErrDeviceNotFound
	})
	require.ErrorIs(t, err, device.ErrDeviceNotFound)
}

func TestWaitForDeviceListedAfterDeviceNode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.HotplugConfig{
		Wait:      3 * time.Second,
		Debounce:  20 * time.Millisecond,
		Poll:      50 * time.Millisecond,
		WatchDirs: []string{dir},
	}

	// デバイスノードが作られてから、しばらく後に一覧へ現れる
	var listed atomic.Bool
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "event7"), nil, 0644)
		time.Sleep(300 * time.Millisecond)
		listed.Store(true)
	}()

	start := time.Now()
	id, err := WaitForDevice(context.Background(), cfg, func(ctx context.Context) (string, error) {
		if listed.Load() {
			return "42", nil
		}
		return "", device.ErrDeviceNotFound
	})
	require.NoError(t, err)
	require.Equal(t, "42", id)
	require.Less(t, time.Since(start), 2*time.Second)
}
