package model

import "sort"

// HexCell 六角形グリッドのセル識別子（H3インデックスの16進文字列表現）
type HexCell string

// String 識別子文字列を返す
func (c HexCell) String() string {
	return string(c)
}

// Ring 閉じたポリゴンリング（先頭と末尾の頂点が一致する）
type Ring []LatLng

// IsClosed 先頭と末尾が一致しているか判定
func (r Ring) IsClosed() bool {
	return len(r) > 1 && r[0] == r[len(r)-1]
}

// HexBin 1セル分の集計結果
type HexBin struct {
	Cell     HexCell `json:"h3"`
	Count    int     `json:"count"`
	Boundary Ring    `json:"boundary,omitempty"`
}

// HexBinResult セルごとの点数の集計結果
type HexBinResult struct {
	Resolution int             `json:"resolution"`
	Counts     map[HexCell]int `json:"counts"`
	Total      int             `json:"total"`   // 集計対象になった有効な点の数
	Skipped    int             `json:"skipped"` // 座標欠損・不正によりスキップした行数
}

// NewHexBinResult 空の集計結果を作成
func NewHexBinResult(resolution int) *HexBinResult {
	return &HexBinResult{
		Resolution: resolution,
		Counts:     make(map[HexCell]int),
	}
}

// Add セルに1点を加算
func (r *HexBinResult) Add(cell HexCell) {
	r.Counts[cell]++
	r.Total++
}

// Skip スキップした行を記録
func (r *HexBinResult) Skip() {
	r.Skipped++
}

// Merge 同じ解像度の別の集計結果を取り込む
func (r *HexBinResult) Merge(other *HexBinResult) {
	for cell, n := range other.Counts {
		r.Counts[cell] += n
	}
	r.Total += other.Total
	r.Skipped += other.Skipped
}

// Len セル数
func (r *HexBinResult) Len() int {
	return len(r.Counts)
}

// Sum 全セルのカウント合計（常にTotalと一致する）
func (r *HexBinResult) Sum() int {
	sum := 0
	for _, n := range r.Counts {
		sum += n
	}
	return sum
}

// Bins 描画用に件数の降順・セルIDの昇順で並べたビン一覧
func (r *HexBinResult) Bins() []HexBin {
	bins := make([]HexBin, 0, len(r.Counts))
	for cell, n := range r.Counts {
		bins = append(bins, HexBin{Cell: cell, Count: n})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Cell < bins[j].Cell
	})
	return bins
}
