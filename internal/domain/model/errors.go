package model

import "fmt"

// 違反した範囲の端
const (
	BoundMin = "min"
	BoundMax = "max"
)

// ConfigurationError 解像度などの設定値が対応範囲外であることを表す
// 計算を始める前に返され、どちらの端に違反したかを含む
type ConfigurationError struct {
	Field string
	Value int
	Min   int
	Max   int
	Bound string // BoundMin または BoundMax
}

func (e *ConfigurationError) Error() string {
	if e.Bound == BoundMin {
		return fmt.Sprintf("%s %d is below supported min %d (range %d-%d)", e.Field, e.Value, e.Min, e.Min, e.Max)
	}
	return fmt.Sprintf("%s %d exceeds supported max %d (range %d-%d)", e.Field, e.Value, e.Max, e.Min, e.Max)
}

// InvalidCellError 不正なセル識別子を表す
type InvalidCellError struct {
	Cell string
}

func (e *InvalidCellError) Error() string {
	return fmt.Sprintf("invalid hex cell identifier %q", e.Cell)
}

// InvalidPointError 単一点の座標が不正であることを表す
type InvalidPointError struct {
	Lat float64
	Lng float64
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("invalid coordinate (%v, %v): latitude must be within -90..90 and longitude within -180..180", e.Lat, e.Lng)
}

// UploadError アップロードされたファイル全体が解釈できないことを表す
type UploadError struct {
	File   string
	Row    int // 0の場合は行に依存しないエラー
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	msg := e.File + ": " + e.Reason
	if e.Row > 0 {
		msg = fmt.Sprintf("%s: row %d: %s", e.File, e.Row, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
