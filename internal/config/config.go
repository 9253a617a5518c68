package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/char5742/stylus-zoom/internal/device"
	"github.com/char5742/stylus-zoom/internal/xsetwacom"
)

// AppName は設定ディレクトリ名として使うアプリケーション名
const AppName = "stylus-zoom"

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Tool    ToolConfig    `toml:"tool"`
	Device  DeviceConfig  `toml:"device"`
	Hotplug HotplugConfig `toml:"hotplug"`
}

// ToolConfig は外部設定ツールの設定
type ToolConfig struct {
	Command string `toml:"command"` // シェル風に分割される (例: "flatpak-spawn --host xsetwacom")
}

// DeviceConfig はデバイス検出の設定
type DeviceConfig struct {
	Marker string `toml:"marker"` // デバイス名に含まれる部分文字列（大文字小文字は区別しない）
}

// HotplugConfig はデバイス接続待ちの設定
type HotplugConfig struct {
	Wait      time.Duration `toml:"wait"`       // 0 の場合は待機しない
	Debounce  time.Duration `toml:"debounce"`   // イベントをまとめて処理する間隔
	Poll      time.Duration `toml:"poll"`       // イベントが無くても一覧を再確認する間隔。0 の場合はポーリングしない
	WatchDirs []string      `toml:"watch_dirs"` // 監視するディレクトリ
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		Tool: ToolConfig{
			Command: xsetwacom.DefaultCommand,
		},
		Device: DeviceConfig{
			Marker: device.DefaultMarker,
		},
		Hotplug: HotplugConfig{
			Wait:      0,
			Debounce:  500 * time.Millisecond,
			Poll:      2 * time.Second,
			WatchDirs: []string{"/dev/input"},
		},
	}
}

// GetDefaultConfigDir はデフォルトの設定ディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// GetDefaultConfigPath はデフォルトの設定ファイルパスを返す
func GetDefaultConfigPath() (string, error) {
	dir, err := GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig は設定ファイルから設定を読み込む。
// ファイルが存在しない場合はデフォルト設定を返す（ファイルは作成しない）
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return config.WriteTo(f)
}

// WriteTo は設定をTOML形式で書き出す
func (c *Config) WriteTo(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
