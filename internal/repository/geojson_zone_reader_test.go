package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RideHexmap-App/internal/domain/model"
)

const zonesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Alexanderplatz", "deployment_priority": "high"},
      "geometry": {"type": "Polygon", "coordinates": [[[13.40,52.52],[13.42,52.52],[13.42,52.53],[13.40,52.53],[13.40,52.52]]]}
    },
    {
      "type": "Feature",
      "id": 7,
      "properties": {"deployment_priority": "LOW"},
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[13.30,52.50],[13.31,52.50],[13.31,52.51],[13.30,52.50]]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "spot", "deployment_priority": "urgent"},
      "geometry": {"type": "Point", "coordinates": [13.4, 52.5]}
    }
  ]
}`

func TestGeoJSONZoneReader_ReadZones(t *testing.T) {
	reader := NewGeoJSONZoneReader()

	t.Run("ポリゴンの地物だけをゾーンにする", func(t *testing.T) {
		zones, err := reader.ReadZones(strings.NewReader(zonesGeoJSON))
		require.NoError(t, err)
		require.Len(t, zones, 2)

		assert.Equal(t, "Alexanderplatz", zones[0].Name)
		assert.Equal(t, model.PriorityHigh, zones[0].Priority)
		assert.IsType(t, orb.Polygon{}, zones[0].Geometry)

		assert.Equal(t, "7", zones[1].Name)
		assert.Equal(t, model.PriorityLow, zones[1].Priority)
		assert.IsType(t, orb.MultiPolygon{}, zones[1].Geometry)
	})

	t.Run("不正なJSONはUploadError", func(t *testing.T) {
		_, err := reader.ReadZones(strings.NewReader("{not json"))
		var upErr *model.UploadError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "deployment_zones", upErr.File)
	})

	t.Run("空のFeatureCollectionは0件", func(t *testing.T) {
		zones, err := reader.ReadZones(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
		require.NoError(t, err)
		assert.Empty(t, zones)
	})
}

func TestGeoJSONZoneReader_ReadBoundary(t *testing.T) {
	reader := NewGeoJSONZoneReader()

	t.Run("単体のジオメトリ", func(t *testing.T) {
		g, err := reader.ReadBoundary(strings.NewReader(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
		require.NoError(t, err)
		assert.IsType(t, orb.Polygon{}, g)
	})

	t.Run("複数の地物はCollectionになる", func(t *testing.T) {
		g, err := reader.ReadBoundary(strings.NewReader(zonesGeoJSON))
		require.NoError(t, err)
		c, ok := g.(orb.Collection)
		require.True(t, ok)
		assert.Len(t, c, 3)
	})

	t.Run("ジオメトリがなければUploadError", func(t *testing.T) {
		_, err := reader.ReadBoundary(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
		var upErr *model.UploadError
		assert.True(t, errors.As(err, &upErr))
	})
}

func TestParseDeploymentPriority(t *testing.T) {
	assert.Equal(t, model.PriorityHigh, model.ParseDeploymentPriority(" High "))
	assert.Equal(t, model.PriorityMedium, model.ParseDeploymentPriority("medium"))
	assert.Equal(t, model.PriorityUnset, model.ParseDeploymentPriority("urgent"))
}
