package area

import (
	"fmt"
	"strings"
)

// Corner はズーム先の画面コーナーを表す列挙型
type Corner int

const (
	BottomRight Corner = iota
	BottomLeft
	TopRight
	TopLeft
)

// Corners は全コーナーをCLIでの表示順に並べたもの
var Corners = []Corner{BottomRight, BottomLeft, TopRight, TopLeft}

// Short はCLIで使う短縮名を返す
func (c Corner) Short() string {
	switch c {
	case BottomRight:
		return "br"
	case BottomLeft:
		return "bl"
	case TopRight:
		return "tr"
	case TopLeft:
		return "tl"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// String は人が読める名前を返す
func (c Corner) String() string {
	switch c {
	case BottomRight:
		return "bottom right"
	case BottomLeft:
		return "bottom left"
	case TopRight:
		return "top right"
	case TopLeft:
		return "top left"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// ParseCorner は短縮名 (br, bl, tr, tl) からコーナーを取得する
func ParseCorner(s string) (Corner, error) {
	for _, c := range Corners {
		if strings.EqualFold(s, c.Short()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown corner %q (expected one of br, bl, tr, tl)", s)
}
