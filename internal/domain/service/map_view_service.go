package service

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"RideHexmap-App/internal/domain/helper"
	"RideHexmap-App/internal/domain/model"
)

// MapViewService 地図の初期表示位置とゾーンのカバー状況を計算するサービス
type MapViewService interface {
	// CalculateCenter 全ジオメトリを合わせた境界ボックスの中心を返す（対象がなければfalse）
	CalculateCenter(geometries ...orb.Geometry) (model.LatLng, bool)

	// Coverage 各セルの中心を含むデプロイメントゾーンを割り当て、カバー状況を集計
	Coverage(result *model.HexBinResult, zones []model.DeploymentZone) (map[model.HexCell]model.CellZone, model.CoverageSummary, error)
}

type mapViewServiceImpl struct {
	binner HexBinner
}

// NewMapViewService 新しいMapViewServiceを作成
func NewMapViewService(binner HexBinner) MapViewService {
	return &mapViewServiceImpl{binner: binner}
}

func (s *mapViewServiceImpl) CalculateCenter(geometries ...orb.Geometry) (model.LatLng, bool) {
	var bound orb.Bound
	found := false
	for _, g := range geometries {
		if isEmptyGeometry(g) {
			continue
		}
		if !found {
			bound = g.Bound()
			found = true
			continue
		}
		bound = bound.Union(g.Bound())
	}
	if !found {
		return model.LatLng{}, false
	}

	return helper.PointToLatLng(bound.Center()), true
}

func (s *mapViewServiceImpl) Coverage(result *model.HexBinResult, zones []model.DeploymentZone) (map[model.HexCell]model.CellZone, model.CoverageSummary, error) {
	summary := model.CoverageSummary{ByPriority: map[model.DeploymentPriority]int{}}
	assigned := make(map[model.HexCell]model.CellZone)
	if result == nil {
		return assigned, summary, nil
	}

	// 優先度の高いゾーンから判定する
	ordered := make([]model.DeploymentZone, len(zones))
	copy(ordered, zones)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Rank() < ordered[j].Priority.Rank()
	})

	for cell, count := range result.Counts {
		center, err := s.binner.CenterOf(cell)
		if err != nil {
			return nil, summary, err
		}
		zone, ok := findContainingZone(ordered, helper.LatLngToPoint(center))
		if !ok {
			summary.UncoveredPoints += count
			continue
		}
		assigned[cell] = model.CellZone{Zone: zone.Name, Priority: zone.Priority}
		summary.CoveredPoints += count
		summary.ByPriority[zone.Priority] += count
	}

	return assigned, summary, nil
}

// PointsToMultiPoint 有効な座標を持つ点だけをorb.MultiPointに変換
func PointsToMultiPoint(points []model.GeoPoint) orb.MultiPoint {
	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		if !p.Location.IsValid() {
			continue
		}
		mp = append(mp, helper.LatLngToPoint(p.Location))
	}
	return mp
}

// ZonesToCollection ゾーンのジオメトリをまとめる
func ZonesToCollection(zones []model.DeploymentZone) orb.Collection {
	c := make(orb.Collection, 0, len(zones))
	for _, z := range zones {
		if z.Geometry != nil {
			c = append(c, z.Geometry)
		}
	}
	return c
}

func findContainingZone(zones []model.DeploymentZone, pt orb.Point) (model.DeploymentZone, bool) {
	for _, z := range zones {
		if z.Geometry == nil || !z.Bound().Contains(pt) {
			continue
		}
		if geometryContains(z.Geometry, pt) {
			return z, true
		}
	}
	return model.DeploymentZone{}, false
}

func geometryContains(g orb.Geometry, pt orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	case orb.Ring:
		return planar.RingContains(geom, pt)
	}
	return false
}

func isEmptyGeometry(g orb.Geometry) bool {
	if g == nil {
		return true
	}
	switch geom := g.(type) {
	case orb.MultiPoint:
		return len(geom) == 0
	case orb.Collection:
		for _, c := range geom {
			if !isEmptyGeometry(c) {
				return false
			}
		}
		return true
	case orb.Polygon:
		return len(geom) == 0
	case orb.MultiPolygon:
		return len(geom) == 0
	case orb.LineString:
		return len(geom) == 0
	}
	return false
}
