package model

import "github.com/paulmach/orb/geojson"

// レイヤー種別
const (
	LayerTypeHexagon = "hexagon"
	LayerTypePoint   = "point"
	LayerTypePolygon = "polygon"
)

// LayerStyle 1レイヤー分の表示設定
type LayerStyle struct {
	Name    string  `json:"name"`
	Color   [3]int  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// MapStyle 地図全体の表示設定
// 呼び出し側から渡される値で、グローバルな可変状態としては持たない
type MapStyle struct {
	Rides         LayerStyle                    `json:"rides"`
	Searches      LayerStyle                    `json:"searches"`
	SearchesHex   LayerStyle                    `json:"searches_hex"`
	Zones         LayerStyle                    `json:"zones"`
	Boundary      LayerStyle                    `json:"boundary"`
	PriorityColor map[DeploymentPriority][3]int `json:"priority_color,omitempty"`
	Zoom          float64                       `json:"zoom"`
	Height        int                           `json:"height"`
}

// DefaultMapStyle 既定の表示設定
func DefaultMapStyle() MapStyle {
	return MapStyle{
		Rides:       LayerStyle{Name: "Hexagon Data (Rides)", Color: [3]int{255, 153, 31}, Opacity: 0.8},
		Searches:    LayerStyle{Name: "Searches Data", Color: [3]int{18, 147, 154}, Opacity: 0.6},
		SearchesHex: LayerStyle{Name: "Hexagon Data (Searches)", Color: [3]int{90, 24, 70}, Opacity: 0.6},
		Zones:       LayerStyle{Name: "Deployment Zones", Color: [3]int{34, 63, 154}, Opacity: 0.4},
		Boundary:    LayerStyle{Name: "Boundary", Color: [3]int{130, 154, 227}, Opacity: 0.2},
		PriorityColor: map[DeploymentPriority][3]int{
			PriorityHigh:   {231, 76, 60},
			PriorityMedium: {241, 196, 15},
			PriorityLow:    {46, 204, 113},
		},
		Zoom:   11,
		Height: 1000,
	}
}

// MapState 初期表示位置
type MapState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}

// MapConfig フロントエンドに渡す地図設定
type MapConfig struct {
	Version string   `json:"version"`
	Height  int      `json:"height"`
	State   MapState `json:"mapState"`
}

// MapLayer 描画用レイヤー
type MapLayer struct {
	ID      string                     `json:"id"`
	Name    string                     `json:"name"`
	Type    string                     `json:"type"`
	Color   [3]int                     `json:"color"`
	Opacity float64                    `json:"opacity"`
	Data    *geojson.FeatureCollection `json:"data"`
}

// CoverageSummary デプロイメントゾーンによる需要のカバー状況
type CoverageSummary struct {
	CoveredPoints   int                        `json:"covered_points"`
	UncoveredPoints int                        `json:"uncovered_points"`
	ByPriority      map[DeploymentPriority]int `json:"by_priority"`
}

// CellZone セル中心を含むゾーン
type CellZone struct {
	Zone     string             `json:"zone"`
	Priority DeploymentPriority `json:"deployment_priority"`
}

// LayerStats レイヤーごとの読み込み結果
type LayerStats struct {
	Rows    int `json:"rows"`
	Valid   int `json:"valid"`
	Skipped int `json:"skipped"`
	Cells   int `json:"cells,omitempty"`
}

// HexMapResponse ヘキサゴンマップ生成APIのレスポンス
type HexMapResponse struct {
	MapID      string                `json:"map_id"`
	Resolution int                   `json:"resolution"`
	Config     MapConfig             `json:"config"`
	Layers     []MapLayer            `json:"layers"`
	Stats      map[string]LayerStats `json:"stats"`
	Coverage   CoverageSummary       `json:"coverage"`
	TopCells   []HexBin              `json:"top_cells"`
}

// CellBoundaryResponse セル境界取得APIのレスポンス
type CellBoundaryResponse struct {
	Cell         HexCell `json:"h3"`
	Resolution   int     `json:"resolution"`
	Center       LatLng  `json:"center"`
	Boundary     Ring    `json:"boundary"`
	EdgeLengthKm float64 `json:"edge_length_km"`
}
