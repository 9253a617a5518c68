package device

import "errors"

// DefaultMarker はスタイラスを識別するためのデバイス名の部分文字列
const DefaultMarker = "stylus"

var (
	// ErrDeviceNotFound は一致するデバイスが一覧に存在しない場合のエラー
	ErrDeviceNotFound = errors.New("no stylus device found")
	// ErrMalformedID はデバイス行のidフィールドが解析できない場合のエラー
	ErrMalformedID = errors.New("malformed device id")
)

// Device はデバイス一覧の1行を表す構造体
type Device struct {
	Name string // デバイス名
	ID   string // 外部ツールに渡すデバイス識別子
	Type string // type: 列の値 (STYLUS, ERASER, PAD など)。無い場合は空
	Line string // 元の行
}
