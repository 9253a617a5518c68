package features

import (
	"context"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"

	"github.com/char5742/stylus-zoom/internal/area"
	"github.com/char5742/stylus-zoom/internal/device"
	"github.com/char5742/stylus-zoom/internal/xsetwacom"
)

// Tablet は外部設定ツールを通してスタイラスの有効領域を操作する
type Tablet struct {
	client *xsetwacom.Client
	marker string
	out    io.Writer
}

// NewTablet は新しい Tablet を作成する。out には人が読むための状態メッセージが書き込まれる
func NewTablet(client *xsetwacom.Client, marker string, out io.Writer) *Tablet {
	if marker == "" {
		marker = device.DefaultMarker
	}
	return &Tablet{
		client: client,
		marker: marker,
		out:    out,
	}
}

// Locate はデバイス一覧を取得してスタイラスの識別子を返す
func (t *Tablet) Locate(ctx context.Context) (string, error) {
	list, err := t.client.ListDevices(ctx)
	if err != nil {
		return "", err
	}

	id, err := device.FindStylus(list, t.marker)
	if err != nil {
		return "", err
	}
	logger.Debugf(ctx, "stylus device id: %s", id)
	return id, nil
}

// Devices はデバイス一覧と、Locate が選ぶデバイスの識別子を返す（見つからない場合は空）
func (t *Tablet) Devices(ctx context.Context) ([]device.Device, string, error) {
	list, err := t.client.ListDevices(ctx)
	if err != nil {
		return nil, "", err
	}

	id, err := device.FindStylus(list, t.marker)
	if err != nil {
		logger.Debugf(ctx, "no stylus in the device list: %v", err)
		id = ""
	}
	return device.ParseList(list), id, nil
}

// Area はスタイラスの現在の有効領域を返す
func (t *Tablet) Area(ctx context.Context, id string) (area.Rect, error) {
	return t.client.GetArea(ctx, id)
}

// Reset はスタイラスの有効領域をデフォルトに戻す
func (t *Tablet) Reset(ctx context.Context, id string) error {
	fmt.Fprintln(t.out, "スタイラスの領域をデフォルトに戻します。")
	if err := t.client.ResetArea(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(t.out, "スタイラスの領域をデフォルトに戻しました。")
	return nil
}

// Zoom はスタイラスの有効領域を指定したコーナーの一象限に絞り込む。
// reset が true の場合は先にリセットし、リセット後の領域を元に計算する
func (t *Tablet) Zoom(ctx context.Context, id string, corner area.Corner, reset bool) (area.Rect, error) {
	if reset {
		if err := t.Reset(ctx, id); err != nil {
			return area.Rect{}, err
		}
	}

	current, err := t.client.GetArea(ctx, id)
	if err != nil {
		return area.Rect{}, err
	}
	next := area.Zoom(current, corner)
	logger.Debugf(ctx, "area %v -> %v (%s)", current, next, corner)

	fmt.Fprintf(t.out, "スタイラスの領域を %s (%s) に設定します。\n", next, corner)
	if err := t.client.SetArea(ctx, id, next); err != nil {
		return area.Rect{}, err
	}
	fmt.Fprintln(t.out, "スタイラスの領域を設定しました。")
	return next, nil
}
