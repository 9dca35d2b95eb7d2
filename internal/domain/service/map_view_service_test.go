package service

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RideHexmap-App/internal/domain/model"
)

func square(minLng, minLat, maxLng, maxLat float64) orb.Polygon {
	return orb.Polygon{{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}}
}

func TestMapViewService_CalculateCenter(t *testing.T) {
	svc := NewMapViewService(NewDefaultHexBinner())

	t.Run("複数レイヤーを合わせた境界の中心", func(t *testing.T) {
		points := orb.MultiPoint{{13.30, 52.40}, {13.50, 52.60}}
		zones := square(13.0, 52.0, 13.2, 52.2)

		center, ok := svc.CalculateCenter(points, zones)
		require.True(t, ok)
		assert.InDelta(t, 52.30, center.Lat, 1e-9)
		assert.InDelta(t, 13.25, center.Lng, 1e-9)
	})

	t.Run("空のジオメトリは無視", func(t *testing.T) {
		center, ok := svc.CalculateCenter(nil, orb.MultiPoint{}, orb.MultiPoint{{10, 20}})
		require.True(t, ok)
		assert.Equal(t, model.LatLng{Lat: 20, Lng: 10}, center)
	})

	t.Run("対象がなければfalse", func(t *testing.T) {
		_, ok := svc.CalculateCenter()
		assert.False(t, ok)
		_, ok = svc.CalculateCenter(orb.Collection{})
		assert.False(t, ok)
	})
}

func TestMapViewService_Coverage(t *testing.T) {
	binner := NewDefaultHexBinner()
	svc := NewMapViewService(binner)

	points := berlinPoints()
	result, err := binner.Aggregate(points, 8)
	require.NoError(t, err)

	insideCell, err := binner.IndexOf(points[0].Location, 8)
	require.NoError(t, err)
	outsideCell, err := binner.IndexOf(points[2].Location, 8)
	require.NoError(t, err)
	center, err := binner.CenterOf(insideCell)
	require.NoError(t, err)

	// 1つ目のセル中心だけを含む小さなゾーンを、低優先と高優先で重ねる
	zone := square(center.Lng-0.001, center.Lat-0.001, center.Lng+0.001, center.Lat+0.001)
	zones := []model.DeploymentZone{
		{Name: "low-zone", Priority: model.PriorityLow, Geometry: zone},
		{Name: "high-zone", Priority: model.PriorityHigh, Geometry: orb.MultiPolygon{zone}},
	}

	assigned, summary, err := svc.Coverage(result, zones)
	require.NoError(t, err)

	require.Contains(t, assigned, insideCell)
	assert.Equal(t, "high-zone", assigned[insideCell].Zone)
	assert.Equal(t, model.PriorityHigh, assigned[insideCell].Priority)
	assert.NotContains(t, assigned, outsideCell)

	assert.Equal(t, 2, summary.CoveredPoints)
	assert.Equal(t, 1, summary.UncoveredPoints)
	assert.Equal(t, 2, summary.ByPriority[model.PriorityHigh])
	assert.Equal(t, result.Total, summary.CoveredPoints+summary.UncoveredPoints)
}

func TestPointsToMultiPoint(t *testing.T) {
	points := []model.GeoPoint{
		model.NewGeoPoint(52.52, 13.40),
		model.MissingGeoPoint(2, nil),
	}
	mp := PointsToMultiPoint(points)
	require.Len(t, mp, 1)
	assert.Equal(t, orb.Point{13.40, 52.52}, mp[0])
}
