package repository

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/repository"
)

const (
	fileZones    = "deployment_zones"
	fileBoundary = "boundary"
)

// GeoJSONZoneReader GeoJSONのデプロイメントゾーンと境界を読み込む
type GeoJSONZoneReader struct{}

// NewGeoJSONZoneReader 新しいGeoJSONZoneReaderを作成
func NewGeoJSONZoneReader() repository.ZoneReader {
	return &GeoJSONZoneReader{}
}

// ReadZones FeatureCollectionからポリゴンのゾーンを読み込む（ポリゴン以外の地物は無視）
func (r *GeoJSONZoneReader) ReadZones(src io.Reader) ([]model.DeploymentZone, error) {
	features, err := readFeatures(fileZones, src)
	if err != nil {
		return nil, err
	}

	zones := make([]model.DeploymentZone, 0, len(features))
	ignored := 0
	for i, f := range features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			ignored++
			continue
		}

		props := map[string]interface{}(f.Properties)
		zones = append(zones, model.DeploymentZone{
			Name:       zoneName(f, i),
			Priority:   model.ParseDeploymentPriority(f.Properties.MustString(model.PropertyDeploymentPriority, "")),
			Geometry:   f.Geometry,
			Properties: props,
		})
	}

	if ignored > 0 {
		log.WithFields(log.Fields{
			"file":    fileZones,
			"ignored": ignored,
		}).Warn("non-polygon features ignored")
	}
	return zones, nil
}

// ReadBoundary サービスエリア境界を読み込む
// FeatureCollection / Feature / 単体のジオメトリのいずれも受け付ける
func (r *GeoJSONZoneReader) ReadBoundary(src io.Reader) (orb.Geometry, error) {
	features, err := readFeatures(fileBoundary, src)
	if err != nil {
		return nil, err
	}

	collection := make(orb.Collection, 0, len(features))
	for _, f := range features {
		if f.Geometry != nil {
			collection = append(collection, f.Geometry)
		}
	}
	if len(collection) == 0 {
		return nil, &model.UploadError{File: fileBoundary, Reason: "no geometry found"}
	}
	if len(collection) == 1 {
		return collection[0], nil
	}
	return collection, nil
}

// readFeatures GeoJSONの種類を判定して地物の一覧にする
func readFeatures(name string, src io.Reader) ([]*geojson.Feature, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &model.UploadError{File: name, Reason: "failed to read file", Err: err}
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &model.UploadError{File: name, Reason: "invalid GeoJSON", Err: err}
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, &model.UploadError{File: name, Reason: "invalid FeatureCollection", Err: err}
		}
		return fc.Features, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, &model.UploadError{File: name, Reason: "invalid Feature", Err: err}
		}
		return []*geojson.Feature{f}, nil
	case "":
		return nil, &model.UploadError{File: name, Reason: "missing GeoJSON type"}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, &model.UploadError{File: name, Reason: "invalid geometry", Err: err}
		}
		return []*geojson.Feature{geojson.NewFeature(g.Geometry())}, nil
	}
}

// zoneName name プロパティ、なければ地物ID、それもなければ連番
func zoneName(f *geojson.Feature, idx int) string {
	if name := f.Properties.MustString(model.PropertyName, ""); name != "" {
		return name
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return fmt.Sprintf("zone-%d", idx+1)
}
