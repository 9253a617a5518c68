package xsetwacom

import (
	"context"
	"fmt"

	"github.com/char5742/stylus-zoom/internal/area"
)

// Client は外部設定ツールの各操作をラップする
type Client struct {
	runner Runner
}

// NewClient は Runner を使うクライアントを作成する
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// ListDevices はデバイス一覧の出力をそのまま返す
func (c *Client) ListDevices(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "--list", "devices")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GetArea はデバイスの現在の有効領域を取得する
func (c *Client) GetArea(ctx context.Context, id string) (area.Rect, error) {
	out, err := c.runner.Run(ctx, "--get", id, "area")
	if err != nil {
		return area.Rect{}, err
	}
	r, err := area.Parse(string(out))
	if err != nil {
		return area.Rect{}, fmt.Errorf("unable to parse the area of device %s: %w", id, err)
	}
	return r, nil
}

// SetArea はデバイスの有効領域を設定する
func (c *Client) SetArea(ctx context.Context, id string, r area.Rect) error {
	args := append([]string{"--set", id, "area"}, r.Args()...)
	_, err := c.runner.Run(ctx, args...)
	return err
}

// ResetArea はデバイスの有効領域を工場出荷時の値に戻す
func (c *Client) ResetArea(ctx context.Context, id string) error {
	_, err := c.runner.Run(ctx, "--set", id, "resetarea")
	return err
}
