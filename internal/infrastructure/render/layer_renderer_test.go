package render

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/service"
)

func newTestRenderer() (*LayerRenderer, service.HexBinner) {
	binner := service.NewDefaultHexBinner()
	return NewLayerRenderer(binner, model.DefaultMapStyle()), binner
}

func TestLayerRenderer_HexLayer(t *testing.T) {
	renderer, binner := newTestRenderer()
	points := []model.GeoPoint{
		model.NewGeoPoint(52.52, 13.40),
		model.NewGeoPoint(52.521, 13.401),
		model.NewGeoPoint(52.50, 13.38),
	}
	result, err := binner.Aggregate(points, 8)
	require.NoError(t, err)

	busiest := result.Bins()[0].Cell
	coverage := map[model.HexCell]model.CellZone{
		busiest: {Zone: "Mitte", Priority: model.PriorityHigh},
	}

	style := renderer.Style().Rides
	layer, err := renderer.HexLayer(model.LayerRides, style, result, coverage)
	require.NoError(t, err)

	assert.Equal(t, model.LayerRides, layer.ID)
	assert.Equal(t, "Hexagon Data (Rides)", layer.Name)
	assert.Equal(t, model.LayerTypeHexagon, layer.Type)
	require.Len(t, layer.Data.Features, 2)

	first := layer.Data.Features[0]
	poly, ok := first.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.True(t, poly[0].Closed())
	assert.Equal(t, busiest.String(), first.Properties[model.PropertyH3])
	assert.Equal(t, 2, first.Properties[model.PropertyCount])
	assert.Equal(t, "Mitte", first.Properties[model.PropertyZone])
	assert.NotContains(t, layer.Data.Features[1].Properties, model.PropertyZone)

	total := 0
	for _, f := range layer.Data.Features {
		total += f.Properties[model.PropertyCount].(int)
	}
	assert.Equal(t, result.Total, total)

	_, err = json.Marshal(layer)
	assert.NoError(t, err)
}

func TestLayerRenderer_PointLayer(t *testing.T) {
	renderer, _ := newTestRenderer()
	points := []model.GeoPoint{
		{Location: model.LatLng{Lat: 52.52, Lng: 13.40}, Row: 1, Attributes: map[string]string{"Search ID": "s1", "row": "A-7"}},
		model.MissingGeoPoint(2, nil),
	}

	layer := renderer.PointLayer(model.LayerSearches, renderer.Style().Searches, points)
	require.Len(t, layer.Data.Features, 1)
	assert.Equal(t, orb.Point{13.40, 52.52}, layer.Data.Features[0].Geometry)
	assert.Equal(t, "s1", layer.Data.Features[0].Properties["Search ID"])
	// アップロードされた列名 row は行番号で上書きされない
	assert.Equal(t, "A-7", layer.Data.Features[0].Properties["row"])
	assert.Equal(t, 1, layer.Data.Features[0].Properties[model.PropertyRow])
	assert.Equal(t, model.LayerTypePoint, layer.Type)
}

func TestLayerRenderer_ZoneAndBoundaryLayers(t *testing.T) {
	renderer, _ := newTestRenderer()
	poly := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}

	zones := renderer.ZoneLayer([]model.DeploymentZone{
		{Name: "A", Priority: model.PriorityMedium, Geometry: poly, Properties: map[string]interface{}{"id": 3}},
	})
	require.Len(t, zones.Data.Features, 1)
	props := zones.Data.Features[0].Properties
	assert.Equal(t, "A", props[model.PropertyName])
	assert.Equal(t, "medium", props[model.PropertyDeploymentPriority])
	assert.Equal(t, [3]int{241, 196, 15}, props["color"])
	assert.Equal(t, 3, props["id"])

	boundary := renderer.BoundaryLayer(orb.Collection{poly, poly})
	assert.Len(t, boundary.Data.Features, 2)
	assert.Equal(t, "Boundary", boundary.Name)
}

func TestLayerRenderer_MapConfig(t *testing.T) {
	renderer, _ := newTestRenderer()
	cfg := renderer.MapConfig(model.LatLng{Lat: 52.5, Lng: 13.4})
	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, 52.5, cfg.State.Latitude)
	assert.Equal(t, 13.4, cfg.State.Longitude)
	assert.Equal(t, 11.0, cfg.State.Zoom)
	assert.Equal(t, 1000, cfg.Height)
}
