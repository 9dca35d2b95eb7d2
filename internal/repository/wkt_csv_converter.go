package repository

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/repository"
)

const fileConversion = "deployment_zones"

// WKTCSVConverter geometry 列にWKTを持つCSVとGeoJSONを相互変換する
type WKTCSVConverter struct{}

// NewWKTCSVConverter 新しいWKTCSVConverterを作成
func NewWKTCSVConverter() repository.GeometryConverter {
	return &WKTCSVConverter{}
}

// CSVToGeoJSON CSVの各行を地物に変換する
// geometry 以外の列は文字列のままプロパティにする（空セルはnull）
func (c *WKTCSVConverter) CSVToGeoJSON(src io.Reader) (*geojson.FeatureCollection, error) {
	header, rows, err := readCSV(fileConversion, src)
	if err != nil {
		return nil, err
	}

	geomIdx := findColumn(header, model.ColumnGeometry)
	if geomIdx < 0 {
		return nil, &model.UploadError{
			File:   fileConversion,
			Reason: fmt.Sprintf("missing %q column", model.ColumnGeometry),
		}
	}

	fc := geojson.NewFeatureCollection()
	for i, row := range rows {
		text := strings.TrimSpace(field(row, geomIdx))
		if text == "" {
			return nil, &model.UploadError{File: fileConversion, Row: i + 1, Reason: "empty geometry"}
		}
		geom, err := wkt.Unmarshal(text)
		if err != nil {
			return nil, &model.UploadError{File: fileConversion, Row: i + 1, Reason: "invalid WKT geometry", Err: err}
		}

		f := geojson.NewFeature(geom)
		for j, h := range header {
			if j == geomIdx || isIndexColumn(h) {
				continue
			}
			v := field(row, j)
			if v == "" {
				f.Properties[h] = nil
				continue
			}
			f.Properties[h] = v
		}
		fc.Append(f)
	}
	return fc, nil
}

// GeoJSONToCSV FeatureCollectionを編集用のCSVに変換する
// プロパティ列は名前順、geometry 列は最後
func (c *WKTCSVConverter) GeoJSONToCSV(src io.Reader, dst io.Writer) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return &model.UploadError{File: fileConversion, Reason: "failed to read file", Err: err}
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return &model.UploadError{File: fileConversion, Reason: "invalid FeatureCollection", Err: err}
	}

	keySet := make(map[string]struct{})
	for _, f := range fc.Features {
		for k := range f.Properties {
			if k == model.ColumnGeometry {
				continue
			}
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := csv.NewWriter(dst)
	if err := w.Write(append(append([]string{}, keys...), model.ColumnGeometry)); err != nil {
		return fmt.Errorf("CSVヘッダーの書き込みに失敗: %w", err)
	}
	for _, f := range fc.Features {
		record := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			record = append(record, formatProperty(f.Properties[k]))
		}
		geom := ""
		if f.Geometry != nil {
			geom = wkt.MarshalString(f.Geometry)
		}
		record = append(record, geom)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("CSV行の書き込みに失敗: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("CSVの書き込みに失敗: %w", err)
	}
	return nil
}

// isIndexColumn pandasが書き出す名前なしのインデックス列
func isIndexColumn(h string) bool {
	return h == "" || strings.HasPrefix(h, "Unnamed:")
}

func formatProperty(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
