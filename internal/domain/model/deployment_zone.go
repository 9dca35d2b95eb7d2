package model

import (
	"strings"

	"github.com/paulmach/orb"
)

// DeploymentPriority デプロイメントゾーンの優先度
type DeploymentPriority string

const (
	PriorityHigh   DeploymentPriority = "high"
	PriorityMedium DeploymentPriority = "medium"
	PriorityLow    DeploymentPriority = "low"
	PriorityUnset  DeploymentPriority = ""
)

// ParseDeploymentPriority 文字列から優先度を解析（未知の値はPriorityUnset）
func ParseDeploymentPriority(s string) DeploymentPriority {
	switch DeploymentPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	}
	return PriorityUnset
}

// Rank 優先度の順位（小さいほど高優先）
func (p DeploymentPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// DeploymentZone 車両を配置すべきエリアを示す名前付きポリゴン
// 外部から取り込まれるのみで、集計処理が生成することはない
type DeploymentZone struct {
	Name       string                 `json:"name"`
	Priority   DeploymentPriority     `json:"deployment_priority,omitempty"`
	Geometry   orb.Geometry           `json:"-"` // orb.Polygon または orb.MultiPolygon
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Bound ゾーンの境界ボックス
func (z DeploymentZone) Bound() orb.Bound {
	if z.Geometry == nil {
		return orb.Bound{}
	}
	return z.Geometry.Bound()
}
