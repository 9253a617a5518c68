package device

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	idField   = "id: "
	typeField = "type: "
)

// ParseLine はデバイス一覧の1行を解析する
func ParseLine(line string) (Device, error) {
	idx := strings.Index(line, idField)
	if idx < 0 {
		return Device{}, fmt.Errorf("%w: no %q field in %q", ErrMalformedID, strings.TrimSpace(idField), line)
	}

	rest := strings.Fields(line[idx+len(idField):])
	if len(rest) == 0 {
		return Device{}, fmt.Errorf("%w: empty id in %q", ErrMalformedID, line)
	}
	id := rest[0]
	if _, err := strconv.Atoi(id); err != nil {
		return Device{}, fmt.Errorf("%w: %q is not an integer", ErrMalformedID, id)
	}

	dev := Device{
		Name: strings.TrimSpace(line[:idx]),
		ID:   id,
		Line: line,
	}
	if tIdx := strings.Index(line, typeField); tIdx >= 0 {
		if fields := strings.Fields(line[tIdx+len(typeField):]); len(fields) > 0 {
			dev.Type = fields[0]
		}
	}
	return dev, nil
}

// ParseList はデバイス一覧の出力全体を解析する。id を持たない行は無視する
func ParseList(output string) []Device {
	var devices []Device
	for _, line := range splitLines(output) {
		dev, err := ParseLine(line)
		if err != nil {
			continue
		}
		devices = append(devices, dev)
	}
	return devices
}

// FindStylus は marker を大文字小文字を区別せずに含む最初の行の id を返す
func FindStylus(output, marker string) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	marker = strings.ToLower(marker)

	for _, line := range splitLines(output) {
		if !strings.Contains(strings.ToLower(line), marker) {
			continue
		}
		dev, err := ParseLine(line)
		if err != nil {
			return "", err
		}
		return dev.ID, nil
	}

	return "", ErrDeviceNotFound
}

func splitLines(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}
