package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/repository"
)

const (
	fileRides    = "rides"
	fileSearches = "searches"
)

// CSVPointReader CSVアップロードから点群を生成する
type CSVPointReader struct{}

// NewCSVPointReader 新しいCSVPointReaderを作成
func NewCSVPointReader() repository.PointReader {
	return &CSVPointReader{}
}

// ReadRides ライドCSVを読み込む
// 座標が空・数値でない行はNaNの点として残し、集計側でスキップ件数として数える
func (r *CSVPointReader) ReadRides(src io.Reader) ([]model.GeoPoint, error) {
	header, rows, err := readCSV(fileRides, src)
	if err != nil {
		return nil, err
	}

	latIdx := findColumn(header, model.ColumnPickupLat, model.ColumnPickupLatRenamed, model.ColumnLatitude)
	lngIdx := findColumn(header, model.ColumnPickupLng, model.ColumnPickupLngRenamed, model.ColumnLongitude)
	if latIdx < 0 || lngIdx < 0 {
		return nil, &model.UploadError{
			File:   fileRides,
			Reason: fmt.Sprintf("missing coordinate columns %q / %q", model.ColumnPickupLat, model.ColumnPickupLng),
		}
	}

	points := make([]model.GeoPoint, 0, len(rows))
	for i, row := range rows {
		attrs := attributes(header, row, latIdx, lngIdx)
		lat, okLat := parseCoordinate(field(row, latIdx))
		lng, okLng := parseCoordinate(field(row, lngIdx))
		if !okLat || !okLng {
			points = append(points, model.MissingGeoPoint(i+1, attrs))
			continue
		}
		points = append(points, model.GeoPoint{
			Location:   model.LatLng{Lat: lat, Lng: lng},
			Row:        i + 1,
			Attributes: attrs,
		})
	}
	return points, nil
}

// ReadSearches 検索CSVを読み込む
// Location 列がない場合は latitude / longitude 列を使う
func (r *CSVPointReader) ReadSearches(src io.Reader) ([]model.GeoPoint, error) {
	header, rows, err := readCSV(fileSearches, src)
	if err != nil {
		return nil, err
	}

	locIdx := findColumn(header, model.ColumnLocation)
	latIdx := findColumn(header, model.ColumnLatitude)
	lngIdx := findColumn(header, model.ColumnLongitude)
	if locIdx < 0 && (latIdx < 0 || lngIdx < 0) {
		return nil, &model.UploadError{
			File:   fileSearches,
			Reason: fmt.Sprintf("missing %q column", model.ColumnLocation),
		}
	}

	points := make([]model.GeoPoint, 0, len(rows))
	for i, row := range rows {
		var (
			lat, lng float64
			ok       bool
			attrs    map[string]string
		)
		if locIdx >= 0 {
			attrs = attributes(header, row, locIdx)
			lat, lng, ok = splitLocation(field(row, locIdx))
		} else {
			attrs = attributes(header, row, latIdx, lngIdx)
			var okLat, okLng bool
			lat, okLat = parseCoordinate(field(row, latIdx))
			lng, okLng = parseCoordinate(field(row, lngIdx))
			ok = okLat && okLng
		}
		if !ok {
			points = append(points, model.MissingGeoPoint(i+1, attrs))
			continue
		}
		points = append(points, model.GeoPoint{
			Location:   model.LatLng{Lat: lat, Lng: lng},
			Row:        i + 1,
			Attributes: attrs,
		})
	}
	return points, nil
}

// readCSV ヘッダーとデータ行を読み込む
func readCSV(name string, src io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &model.UploadError{File: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, nil, &model.UploadError{File: name, Reason: "invalid CSV header", Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &model.UploadError{File: name, Reason: "invalid CSV", Err: err}
	}
	return header, rows, nil
}

// findColumn 候補の列名のうち最初に見つかった列の位置（大文字小文字は区別しない）
func findColumn(header []string, candidates ...string) int {
	for _, c := range candidates {
		for i, h := range header {
			if strings.EqualFold(h, c) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// attributes 座標列を除いた列を属性として取り出す
func attributes(header, row []string, skip ...int) map[string]string {
	attrs := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" || containsIndex(skip, i) {
			continue
		}
		attrs[h] = field(row, i)
	}
	return attrs
}

func containsIndex(list []int, idx int) bool {
	for _, v := range list {
		if v == idx {
			return true
		}
	}
	return false
}

func parseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// splitLocation "lat,lng" 形式の文字列を分解
func splitLocation(s string) (float64, float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, okLat := parseCoordinate(parts[0])
	lng, okLng := parseCoordinate(parts[1])
	return lat, lng, okLat && okLng
}
