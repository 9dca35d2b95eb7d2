package model

// ResolutionConstants はH3解像度に関する定数
const (
	// H3グリッドそのものが持つ解像度の上下限
	GridMinResolution = 0
	GridMaxResolution = 15

	// 既定の対応範囲（ダッシュボードのスライダーと同じ）
	DefaultMinResolution = 5
	DefaultMaxResolution = 10
	DefaultResolution    = 8
)

// ColumnConstants はアップロードされるCSVの列名
const (
	// ライドCSV
	ColumnPickupLat        = "Pickup Lat"
	ColumnPickupLng        = "Pickup Lng"
	ColumnPickupLatRenamed = "Pickup_Lat"
	ColumnPickupLngRenamed = "Pickup_Lng"
	ColumnLatitude         = "latitude"
	ColumnLongitude        = "longitude"

	// 検索CSV（"lat,lng" 形式）
	ColumnLocation = "Location"

	// デプロイメントゾーンCSV（WKT）
	ColumnGeometry = "geometry"
)

// PropertyConstants はGeoJSONのプロパティ名
const (
	PropertyName               = "name"
	PropertyDeploymentPriority = "deployment_priority"
	PropertyH3                 = "h3"
	PropertyCount              = "count"
	PropertyCenterLat          = "center_lat"
	PropertyCenterLng          = "center_lng"
	PropertyZone               = "zone"
	PropertyRow                = "_row"
)

// LayerIDConstants はレスポンスに含まれるレイヤーID
const (
	LayerRides       = "rides"
	LayerSearches    = "searches"
	LayerSearchesHex = "searches_hex"
	LayerZones       = "deployment_zones"
	LayerBoundary    = "boundary"
)
