package area

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedArea はエリア出力が4つの整数でない場合のエラー
var ErrMalformedArea = errors.New("malformed area")

// Rect はスタイラスの有効領域をデバイス座標で表す構造体
type Rect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// Width は領域の幅を返す
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height は領域の高さを返す
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Contains は o が r の内側（境界を含む）にあるかを返す
func (r Rect) Contains(o Rect) bool {
	return r.X1 <= o.X1 && r.Y1 <= o.Y1 && o.X2 <= r.X2 && o.Y2 <= r.Y2
}

// Args は外部コマンドに渡す引数の形式に変換する
func (r Rect) Args() []string {
	return []string{
		strconv.Itoa(r.X1),
		strconv.Itoa(r.Y1),
		strconv.Itoa(r.X2),
		strconv.Itoa(r.Y2),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", r.X1, r.Y1, r.X2, r.Y2)
}

// Parse は "x1 y1 x2 y2" 形式の行を解析する
func Parse(line string) (Rect, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("%w: expected 4 integers, got %d fields in %q", ErrMalformedArea, len(fields), line)
	}

	var values [4]int
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q is not an integer: %v", ErrMalformedArea, field, err)
		}
		values[i] = v
	}

	return Rect{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]}, nil
}

// Zoom は指定したコーナーが元の領域の一象限になるように領域を拡張する。
// 選択したコーナーの座標は固定され、反対側の辺が幅・高さの分だけ外側へ移動する。
func Zoom(r Rect, c Corner) Rect {
	width := r.Width()
	height := r.Height()

	switch c {
	case BottomRight:
		r.X1 -= width
		r.Y1 -= height
	case BottomLeft:
		r.X2 += width
		r.Y1 -= height
	case TopRight:
		r.X1 -= width
		r.Y2 += height
	case TopLeft:
		r.X2 += width
		r.Y2 += height
	}

	return r
}
