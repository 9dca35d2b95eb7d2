package render

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"RideHexmap-App/internal/domain/helper"
	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/service"
)

const mapConfigVersion = "v1"

// LayerRenderer 集計結果とアップロードデータを地図フロントエンド向けのGeoJSONレイヤーに変換する
type LayerRenderer struct {
	binner service.HexBinner
	style  model.MapStyle
}

// NewLayerRenderer 表示設定を指定してLayerRendererを作成
func NewLayerRenderer(binner service.HexBinner, style model.MapStyle) *LayerRenderer {
	return &LayerRenderer{
		binner: binner,
		style:  style,
	}
}

// Style 表示設定
func (r *LayerRenderer) Style() model.MapStyle {
	return r.style
}

// HexLayer セルごとの件数を六角形ポリゴンのレイヤーにする
// coverage がnilでなければセル中心を含むゾーンをプロパティに付ける
func (r *LayerRenderer) HexLayer(id string, style model.LayerStyle, result *model.HexBinResult, coverage map[model.HexCell]model.CellZone) (model.MapLayer, error) {
	bins, err := service.BinsWithBoundaries(r.binner, result)
	if err != nil {
		return model.MapLayer{}, err
	}

	fc := geojson.NewFeatureCollection()
	for _, bin := range bins {
		center, err := r.binner.CenterOf(bin.Cell)
		if err != nil {
			return model.MapLayer{}, fmt.Errorf("セル %s の中心取得に失敗: %w", bin.Cell, err)
		}

		f := geojson.NewFeature(helper.RingToPolygon(bin.Boundary))
		f.ID = bin.Cell.String()
		f.Properties[model.PropertyH3] = bin.Cell.String()
		f.Properties[model.PropertyCount] = bin.Count
		f.Properties[model.PropertyCenterLat] = center.Lat
		f.Properties[model.PropertyCenterLng] = center.Lng
		if zone, ok := coverage[bin.Cell]; ok {
			f.Properties[model.PropertyZone] = zone.Zone
			f.Properties[model.PropertyDeploymentPriority] = string(zone.Priority)
		}
		fc.Append(f)
	}

	return newLayer(id, model.LayerTypeHexagon, style, fc), nil
}

// PointLayer 有効な座標を持つ点をポイントレイヤーにする
func (r *LayerRenderer) PointLayer(id string, style model.LayerStyle, points []model.GeoPoint) model.MapLayer {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		if !p.Location.IsValid() {
			continue
		}
		f := geojson.NewFeature(helper.LatLngToPoint(p.Location))
		for k, v := range p.Attributes {
			f.Properties[k] = v
		}
		f.Properties[model.PropertyRow] = p.Row
		fc.Append(f)
	}
	return newLayer(id, model.LayerTypePoint, style, fc)
}

// ZoneLayer デプロイメントゾーンのポリゴンレイヤー（優先度ごとの色をプロパティに付ける）
func (r *LayerRenderer) ZoneLayer(zones []model.DeploymentZone) model.MapLayer {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		f := geojson.NewFeature(z.Geometry)
		for k, v := range z.Properties {
			f.Properties[k] = v
		}
		f.Properties[model.PropertyName] = z.Name
		f.Properties[model.PropertyDeploymentPriority] = string(z.Priority)
		if color, ok := r.style.PriorityColor[z.Priority]; ok {
			f.Properties["color"] = color
		}
		fc.Append(f)
	}
	return newLayer(model.LayerZones, model.LayerTypePolygon, r.style.Zones, fc)
}

// BoundaryLayer サービスエリア境界のレイヤー
func (r *LayerRenderer) BoundaryLayer(boundary orb.Geometry) model.MapLayer {
	fc := geojson.NewFeatureCollection()
	if c, ok := boundary.(orb.Collection); ok {
		for _, g := range c {
			fc.Append(geojson.NewFeature(g))
		}
	} else if boundary != nil {
		fc.Append(geojson.NewFeature(boundary))
	}
	return newLayer(model.LayerBoundary, model.LayerTypePolygon, r.style.Boundary, fc)
}

// MapConfig 初期表示位置を含む地図設定
func (r *LayerRenderer) MapConfig(center model.LatLng) model.MapConfig {
	return model.MapConfig{
		Version: mapConfigVersion,
		Height:  r.style.Height,
		State: model.MapState{
			Latitude:  center.Lat,
			Longitude: center.Lng,
			Zoom:      r.style.Zoom,
		},
	}
}

func newLayer(id, layerType string, style model.LayerStyle, fc *geojson.FeatureCollection) model.MapLayer {
	return model.MapLayer{
		ID:      id,
		Name:    style.Name,
		Type:    layerType,
		Color:   style.Color,
		Opacity: style.Opacity,
		Data:    fc,
	}
}
