package repository

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RideHexmap-App/internal/domain/model"
)

func TestCSVPointReader_ReadRides(t *testing.T) {
	reader := NewCSVPointReader()

	t.Run("Pickup Lat / Pickup Lng 列を読み込む", func(t *testing.T) {
		csvData := "Ride ID,Pickup Lat,Pickup Lng,Vehicle\n" +
			"r1,52.52,13.40,scooter\n" +
			"r2,52.521,13.401,bike\n"
		points, err := reader.ReadRides(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, points, 2)

		assert.Equal(t, model.LatLng{Lat: 52.52, Lng: 13.40}, points[0].Location)
		assert.Equal(t, 1, points[0].Row)
		assert.Equal(t, "r1", points[0].Attribute("Ride ID"))
		assert.Equal(t, "scooter", points[0].Attribute("Vehicle"))
		assert.NotContains(t, points[0].Attributes, "Pickup Lat")
	})

	t.Run("リネーム済みの列名とBOMも受け付ける", func(t *testing.T) {
		csvData := "\ufeffPickup_Lat,Pickup_Lng\n1.5,2.5\n"
		points, err := reader.ReadRides(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, model.LatLng{Lat: 1.5, Lng: 2.5}, points[0].Location)
	})

	t.Run("座標が空や数値でない行はNaNの点になる", func(t *testing.T) {
		csvData := "Pickup Lat,Pickup Lng\n" +
			"52.52,13.40\n" +
			",13.40\n" +
			"abc,13.40\n" +
			"52.5\n"
		points, err := reader.ReadRides(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, points, 4)
		assert.True(t, points[0].Location.IsValid())
		for _, p := range points[1:] {
			assert.True(t, math.IsNaN(p.Location.Lat))
			assert.False(t, p.Location.IsValid())
		}
		assert.Equal(t, 3, points[2].Row)
	})

	t.Run("座標列がなければUploadError", func(t *testing.T) {
		_, err := reader.ReadRides(strings.NewReader("id,name\n1,a\n"))
		var upErr *model.UploadError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "rides", upErr.File)
	})

	t.Run("空ファイルはUploadError", func(t *testing.T) {
		_, err := reader.ReadRides(strings.NewReader(""))
		var upErr *model.UploadError
		assert.True(t, errors.As(err, &upErr))
	})

	t.Run("ヘッダーのみは0件", func(t *testing.T) {
		points, err := reader.ReadRides(strings.NewReader("Pickup Lat,Pickup Lng\n"))
		require.NoError(t, err)
		assert.Empty(t, points)
	})
}

func TestCSVPointReader_ReadSearches(t *testing.T) {
	reader := NewCSVPointReader()

	t.Run("Location 列を緯度経度に分解する", func(t *testing.T) {
		csvData := "Search ID,Location\n" +
			"s1,\"52.52,13.40\"\n" +
			"s2,\"52.50, 13.38\"\n" +
			"s3,broken\n"
		points, err := reader.ReadSearches(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, points, 3)
		assert.Equal(t, model.LatLng{Lat: 52.52, Lng: 13.40}, points[0].Location)
		assert.Equal(t, model.LatLng{Lat: 52.50, Lng: 13.38}, points[1].Location)
		assert.False(t, points[2].Location.IsValid())
		assert.Equal(t, "s3", points[2].Attribute("Search ID"))
	})

	t.Run("latitude / longitude 列でもよい", func(t *testing.T) {
		points, err := reader.ReadSearches(strings.NewReader("latitude,longitude\n10,20\n"))
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, model.LatLng{Lat: 10, Lng: 20}, points[0].Location)
	})

	t.Run("Location 列がなければUploadError", func(t *testing.T) {
		_, err := reader.ReadSearches(strings.NewReader("a,b\n1,2\n"))
		var upErr *model.UploadError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "searches", upErr.File)
	})
}
