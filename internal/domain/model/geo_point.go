package model

import "math"

// LatLng 緯度経度を表す基本的な型（WGS-84, 度）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid 緯度経度が有限かつ範囲内であるか判定
func (l LatLng) IsValid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// GeoPoint アップロードされたデータセットの1行（ライドや検索）を表す点
// 一度パースされた後は変更しない
type GeoPoint struct {
	Location   LatLng            `json:"location"`
	Row        int               `json:"row"`                  // 元ファイルの行番号（ヘッダーを除き1始まり）
	Attributes map[string]string `json:"attributes,omitempty"` // 座標以外の列
}

// NewGeoPoint 座標のみのGeoPointを作成
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Location: LatLng{Lat: lat, Lng: lng}}
}

// MissingGeoPoint 座標が欠損・不正な行を表すGeoPoint（集計時にスキップされる）
func MissingGeoPoint(row int, attrs map[string]string) GeoPoint {
	return GeoPoint{
		Location:   LatLng{Lat: math.NaN(), Lng: math.NaN()},
		Row:        row,
		Attributes: attrs,
	}
}

// Attribute 属性値を取得（存在しない場合は空文字列）
func (p GeoPoint) Attribute(name string) string {
	if p.Attributes == nil {
		return ""
	}
	return p.Attributes[name]
}
