package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/repository"
	"RideHexmap-App/internal/domain/service"
	"RideHexmap-App/internal/infrastructure/render"
)

const defaultTopCells = 10

// HexMapInput ヘキサゴンマップ生成の入力
type HexMapInput struct {
	Rides           io.Reader // 必須
	Searches        io.Reader // 必須
	DeploymentZones io.Reader // 必須
	Boundary        io.Reader // 任意
	Resolution      *int      // nilの場合は既定の解像度
	BinSearches     bool      // 検索データも六角形に集計する
}

type HexMapUseCase interface {
	// BuildHexMap アップロードされたファイルを読み込み、集計して描画用レイヤーを返す
	BuildHexMap(ctx context.Context, in *HexMapInput) (*model.HexMapResponse, error)
}

// hexMapUseCaseImpl はHexMapUseCaseの実装
// 呼び出しごとに独立しており、結果をキャッシュしたりディスクに書いたりしない
type hexMapUseCaseImpl struct {
	pointReader       repository.PointReader
	zoneReader        repository.ZoneReader
	binner            service.HexBinner
	aggregator        *service.ParallelAggregator
	mapView           service.MapViewService
	renderer          *render.LayerRenderer
	defaultResolution int
	topCells          int
}

// NewHexMapUseCase は新しいHexMapUseCaseインスタンスを作成
func NewHexMapUseCase(
	pointReader repository.PointReader,
	zoneReader repository.ZoneReader,
	binner service.HexBinner,
	mapView service.MapViewService,
	renderer *render.LayerRenderer,
	defaultResolution int,
) HexMapUseCase {
	return &hexMapUseCaseImpl{
		pointReader:       pointReader,
		zoneReader:        zoneReader,
		binner:            binner,
		aggregator:        service.NewParallelAggregator(binner),
		mapView:           mapView,
		renderer:          renderer,
		defaultResolution: defaultResolution,
		topCells:          defaultTopCells,
	}
}

func (u *hexMapUseCaseImpl) BuildHexMap(ctx context.Context, in *HexMapInput) (*model.HexMapResponse, error) {
	if err := validateHexMapInput(in); err != nil {
		return nil, err
	}

	resolution := u.defaultResolution
	if in.Resolution != nil {
		resolution = *in.Resolution
	}
	if err := u.binner.ValidateResolution(resolution); err != nil {
		return nil, err
	}

	mapID := uuid.New().String()
	logger := log.WithFields(log.Fields{"map_id": mapID, "resolution": resolution})
	logger.Info("hex map build started")

	// Step 1: アップロードされたファイルを読み込む
	rides, err := u.pointReader.ReadRides(in.Rides)
	if err != nil {
		return nil, fmt.Errorf("ライドデータの読み込みに失敗: %w", err)
	}
	searches, err := u.pointReader.ReadSearches(in.Searches)
	if err != nil {
		return nil, fmt.Errorf("検索データの読み込みに失敗: %w", err)
	}
	zones, err := u.zoneReader.ReadZones(in.DeploymentZones)
	if err != nil {
		return nil, fmt.Errorf("デプロイメントゾーンの読み込みに失敗: %w", err)
	}
	var boundary orb.Geometry
	if in.Boundary != nil {
		boundary, err = u.zoneReader.ReadBoundary(in.Boundary)
		if err != nil {
			return nil, fmt.Errorf("境界データの読み込みに失敗: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: 六角形グリッドに集計する
	rideBins, err := u.aggregator.Aggregate(ctx, rides, resolution)
	if err != nil {
		return nil, fmt.Errorf("ライドの集計に失敗: %w", err)
	}
	coverage, summary, err := u.mapView.Coverage(rideBins, zones)
	if err != nil {
		return nil, fmt.Errorf("ゾーンのカバー状況の計算に失敗: %w", err)
	}

	stats := map[string]model.LayerStats{
		model.LayerRides: {
			Rows:    len(rides),
			Valid:   rideBins.Total,
			Skipped: rideBins.Skipped,
			Cells:   rideBins.Len(),
		},
	}

	// Step 3: レイヤーを組み立てる
	style := u.renderer.Style()
	rideLayer, err := u.renderer.HexLayer(model.LayerRides, style.Rides, rideBins, coverage)
	if err != nil {
		return nil, fmt.Errorf("ライドレイヤーの生成に失敗: %w", err)
	}
	layers := []model.MapLayer{
		rideLayer,
		u.renderer.PointLayer(model.LayerSearches, style.Searches, searches),
		u.renderer.ZoneLayer(zones),
	}

	searchValid := len(service.PointsToMultiPoint(searches))
	searchStats := model.LayerStats{
		Rows:    len(searches),
		Valid:   searchValid,
		Skipped: len(searches) - searchValid,
	}
	if in.BinSearches {
		searchBins, err := u.aggregator.Aggregate(ctx, searches, resolution)
		if err != nil {
			return nil, fmt.Errorf("検索データの集計に失敗: %w", err)
		}
		searchLayer, err := u.renderer.HexLayer(model.LayerSearchesHex, style.SearchesHex, searchBins, nil)
		if err != nil {
			return nil, fmt.Errorf("検索レイヤーの生成に失敗: %w", err)
		}
		layers = append(layers, searchLayer)
		searchStats.Cells = searchBins.Len()
	}
	stats[model.LayerSearches] = searchStats
	stats[model.LayerZones] = model.LayerStats{Rows: len(zones), Valid: len(zones)}

	if boundary != nil {
		layers = append(layers, u.renderer.BoundaryLayer(boundary))
	}

	center := u.calculateCenter(rideBins, searches, zones, boundary)

	bins := rideBins.Bins()
	if len(bins) > u.topCells {
		bins = bins[:u.topCells]
	}

	logger.WithFields(log.Fields{
		"ride_cells":    rideBins.Len(),
		"rides_skipped": rideBins.Skipped,
		"searches":      len(searches),
		"zones":         len(zones),
	}).Info("hex map build finished")

	return &model.HexMapResponse{
		MapID:      mapID,
		Resolution: resolution,
		Config:     u.renderer.MapConfig(center),
		Layers:     layers,
		Stats:      stats,
		Coverage:   summary,
		TopCells:   bins,
	}, nil
}

// calculateCenter 境界があれば境界の中心、なければセル中心・検索地点・ゾーン全体の中心
func (u *hexMapUseCaseImpl) calculateCenter(rideBins *model.HexBinResult, searches []model.GeoPoint, zones []model.DeploymentZone, boundary orb.Geometry) model.LatLng {
	if boundary != nil {
		if center, ok := u.mapView.CalculateCenter(boundary); ok {
			return center
		}
	}

	cellCenters := make(orb.MultiPoint, 0, rideBins.Len())
	for cell := range rideBins.Counts {
		c, err := u.binner.CenterOf(cell)
		if err != nil {
			continue
		}
		cellCenters = append(cellCenters, orb.Point{c.Lng, c.Lat})
	}

	center, ok := u.mapView.CalculateCenter(cellCenters, service.PointsToMultiPoint(searches), service.ZonesToCollection(zones))
	if !ok {
		log.Warn("no geometry to center the map on, falling back to (0, 0)")
	}
	return center
}

func validateHexMapInput(in *HexMapInput) error {
	if in == nil {
		return &model.UploadError{File: "request", Reason: "no input"}
	}
	required := []struct {
		name string
		r    io.Reader
	}{
		{"rides", in.Rides},
		{"searches", in.Searches},
		{"deployment_zones", in.DeploymentZones},
	}
	for _, f := range required {
		if f.r == nil {
			return &model.UploadError{File: f.name, Reason: "file is required"}
		}
	}
	return nil
}
