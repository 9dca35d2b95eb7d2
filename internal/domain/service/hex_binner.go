package service

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	log "github.com/sirupsen/logrus"
	h3 "github.com/uber/h3-go/v3"

	"RideHexmap-App/internal/domain/model"
)

// HexBinner 点群をH3グリッドのセルに離散化し、セルごとに集計する
// 状態を持たない純粋な変換で、複数のリクエストから並行に呼び出してよい
type HexBinner interface {
	// IndexOf 1点を指定解像度のセルに変換
	IndexOf(point model.LatLng, resolution int) (model.HexCell, error)

	// Aggregate 点群をセルごとに数える（座標が欠損した行はスキップして件数を返す）
	Aggregate(points []model.GeoPoint, resolution int) (*model.HexBinResult, error)

	// BoundaryOf セル境界を閉じたリングとして返す
	BoundaryOf(cell model.HexCell) (model.Ring, error)

	// CenterOf セル中心
	CenterOf(cell model.HexCell) (model.LatLng, error)

	// ParentOf より粗い解像度の祖先セル
	ParentOf(cell model.HexCell, resolution int) (model.HexCell, error)

	// ResolutionOf セルの解像度
	ResolutionOf(cell model.HexCell) (int, error)

	// ValidateResolution 解像度が対応範囲内か検証
	ValidateResolution(resolution int) error

	// ResolutionRange 対応している解像度の範囲
	ResolutionRange() (min, max int)
}

// h3HexBinner Uber H3を使ったHexBinnerの実装
type h3HexBinner struct {
	minResolution int
	maxResolution int
}

// NewHexBinner 対応解像度の範囲を指定してHexBinnerを作成
func NewHexBinner(minResolution, maxResolution int) (HexBinner, error) {
	if minResolution < model.GridMinResolution {
		return nil, &model.ConfigurationError{
			Field: "min_resolution", Value: minResolution,
			Min: model.GridMinResolution, Max: model.GridMaxResolution, Bound: model.BoundMin,
		}
	}
	if maxResolution > model.GridMaxResolution {
		return nil, &model.ConfigurationError{
			Field: "max_resolution", Value: maxResolution,
			Min: model.GridMinResolution, Max: model.GridMaxResolution, Bound: model.BoundMax,
		}
	}
	if minResolution > maxResolution {
		return nil, fmt.Errorf("解像度の最小値(%d)が最大値(%d)を超えています", minResolution, maxResolution)
	}

	return &h3HexBinner{
		minResolution: minResolution,
		maxResolution: maxResolution,
	}, nil
}

// NewDefaultHexBinner 既定の範囲（5〜10）のHexBinnerを作成
func NewDefaultHexBinner() HexBinner {
	return &h3HexBinner{
		minResolution: model.DefaultMinResolution,
		maxResolution: model.DefaultMaxResolution,
	}
}

func (b *h3HexBinner) ResolutionRange() (int, int) {
	return b.minResolution, b.maxResolution
}

func (b *h3HexBinner) ValidateResolution(resolution int) error {
	if resolution < b.minResolution {
		return &model.ConfigurationError{
			Field: "resolution", Value: resolution,
			Min: b.minResolution, Max: b.maxResolution, Bound: model.BoundMin,
		}
	}
	if resolution > b.maxResolution {
		return &model.ConfigurationError{
			Field: "resolution", Value: resolution,
			Min: b.minResolution, Max: b.maxResolution, Bound: model.BoundMax,
		}
	}
	return nil
}

func (b *h3HexBinner) IndexOf(point model.LatLng, resolution int) (model.HexCell, error) {
	if err := b.ValidateResolution(resolution); err != nil {
		return "", err
	}
	if !point.IsValid() {
		return "", &model.InvalidPointError{Lat: point.Lat, Lng: point.Lng}
	}
	return indexOf(point, resolution), nil
}

func (b *h3HexBinner) Aggregate(points []model.GeoPoint, resolution int) (*model.HexBinResult, error) {
	if err := b.ValidateResolution(resolution); err != nil {
		return nil, err
	}

	result := model.NewHexBinResult(resolution)
	for _, p := range points {
		if !p.Location.IsValid() {
			result.Skip()
			continue
		}
		result.Add(indexOf(p.Location, resolution))
	}

	log.WithFields(log.Fields{
		"resolution": resolution,
		"points":     len(points),
		"cells":      result.Len(),
		"skipped":    result.Skipped,
	}).Debug("hex aggregation finished")

	return result, nil
}

func (b *h3HexBinner) BoundaryOf(cell model.HexCell) (model.Ring, error) {
	h, err := parseCell(cell)
	if err != nil {
		return nil, err
	}

	gb := h3.ToGeoBoundary(h)
	if len(gb) == 0 {
		return nil, &model.InvalidCellError{Cell: string(cell)}
	}

	ring := make(orb.Ring, 0, len(gb)+1)
	for _, v := range gb {
		ring = append(ring, orb.Point{v.Longitude, v.Latitude})
	}
	ring = append(ring, ring[0])

	// 二十面体の辺をまたぐセルには歪み補正の頂点が追加されるため、
	// 六角形（五角形）の頂点数まで間引く
	corners := 6
	if h3.IsPentagon(h) {
		corners = 5
	}
	if len(ring) > corners+1 {
		ring = simplify.VisvalingamKeep(corners + 1).Ring(ring)
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
	}

	out := make(model.Ring, len(ring))
	for i, p := range ring {
		out[i] = model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
	}
	return out, nil
}

func (b *h3HexBinner) CenterOf(cell model.HexCell) (model.LatLng, error) {
	h, err := parseCell(cell)
	if err != nil {
		return model.LatLng{}, err
	}
	g := h3.ToGeo(h)
	return model.LatLng{Lat: g.Latitude, Lng: g.Longitude}, nil
}

func (b *h3HexBinner) ParentOf(cell model.HexCell, resolution int) (model.HexCell, error) {
	h, err := parseCell(cell)
	if err != nil {
		return "", err
	}
	cellResolution := h3.Resolution(h)
	if resolution < model.GridMinResolution {
		return "", &model.ConfigurationError{
			Field: "parent_resolution", Value: resolution,
			Min: model.GridMinResolution, Max: cellResolution, Bound: model.BoundMin,
		}
	}
	if resolution > cellResolution {
		return "", &model.ConfigurationError{
			Field: "parent_resolution", Value: resolution,
			Min: model.GridMinResolution, Max: cellResolution, Bound: model.BoundMax,
		}
	}
	return model.HexCell(h3.ToString(h3.ToParent(h, resolution))), nil
}

func (b *h3HexBinner) ResolutionOf(cell model.HexCell) (int, error) {
	h, err := parseCell(cell)
	if err != nil {
		return 0, err
	}
	return h3.Resolution(h), nil
}

// BinsWithBoundaries 集計結果の各セルに境界リングを付与したビン一覧を作成
func BinsWithBoundaries(binner HexBinner, result *model.HexBinResult) ([]model.HexBin, error) {
	bins := result.Bins()
	for i := range bins {
		ring, err := binner.BoundaryOf(bins[i].Cell)
		if err != nil {
			return nil, fmt.Errorf("セル %s の境界取得に失敗: %w", bins[i].Cell, err)
		}
		bins[i].Boundary = ring
	}
	return bins, nil
}

func indexOf(point model.LatLng, resolution int) model.HexCell {
	h := h3.FromGeo(h3.GeoCoord{Latitude: point.Lat, Longitude: point.Lng}, resolution)
	return model.HexCell(h3.ToString(h))
}

// parseCell 識別子文字列をH3インデックスに変換（不正な場合はInvalidCellError）
func parseCell(cell model.HexCell) (h3.H3Index, error) {
	h := h3.FromString(string(cell))
	if h == 0 || !h3.IsValid(h) {
		return 0, &model.InvalidCellError{Cell: string(cell)}
	}
	return h, nil
}
