package usecase

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/domain/repository"
)

type ConversionUseCase interface {
	// CSVToGeoJSON WKTを含むCSVをGeoJSON（FeatureCollection）に変換する
	CSVToGeoJSON(ctx context.Context, r io.Reader) ([]byte, error)

	// GeoJSONToCSV GeoJSONを編集用のCSVに変換する
	GeoJSONToCSV(ctx context.Context, r io.Reader, w io.Writer) error
}

type conversionUseCaseImpl struct {
	converter repository.GeometryConverter
}

// NewConversionUseCase は新しいConversionUseCaseインスタンスを作成
func NewConversionUseCase(converter repository.GeometryConverter) ConversionUseCase {
	return &conversionUseCaseImpl{converter: converter}
}

func (u *conversionUseCaseImpl) CSVToGeoJSON(ctx context.Context, r io.Reader) ([]byte, error) {
	fc, err := u.converter.CSVToGeoJSON(r)
	if err != nil {
		return nil, fmt.Errorf("CSVからGeoJSONへの変換に失敗: %w", err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("GeoJSONのマーシャルに失敗: %w", err)
	}

	log.WithField("features", len(fc.Features)).Info("CSV converted to GeoJSON")
	return data, nil
}

func (u *conversionUseCaseImpl) GeoJSONToCSV(ctx context.Context, r io.Reader, w io.Writer) error {
	if err := u.converter.GeoJSONToCSV(r, w); err != nil {
		return fmt.Errorf("GeoJSONからCSVへの変換に失敗: %w", err)
	}
	log.Info("GeoJSON converted to CSV")
	return nil
}
