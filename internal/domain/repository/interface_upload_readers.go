package repository

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"RideHexmap-App/internal/domain/model"
)

// PointReader アップロードされたCSVから点群を読み込む
type PointReader interface {
	// ReadRides ライドCSV（Pickup Lat / Pickup Lng 列）を読み込む
	ReadRides(r io.Reader) ([]model.GeoPoint, error)
	// ReadSearches 検索CSV（"lat,lng" 形式の Location 列）を読み込む
	ReadSearches(r io.Reader) ([]model.GeoPoint, error)
}

// ZoneReader GeoJSONからデプロイメントゾーンと境界を読み込む
type ZoneReader interface {
	ReadZones(r io.Reader) ([]model.DeploymentZone, error)
	ReadBoundary(r io.Reader) (orb.Geometry, error)
}

// GeometryConverter WKTを含むCSVとGeoJSONを相互変換する
type GeometryConverter interface {
	CSVToGeoJSON(r io.Reader) (*geojson.FeatureCollection, error)
	GeoJSONToCSV(r io.Reader, w io.Writer) error
}
