package helper

import (
	"math"

	"github.com/paulmach/orb"

	"RideHexmap-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// HaversineDistance は2地点間の距離を計算する (km)
func HaversineDistance(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// MeanEdgeLengthKm は閉じたリングの辺の平均長を計算する (km)
func MeanEdgeLengthKm(ring model.Ring) float64 {
	if len(ring) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(ring); i++ {
		total += HaversineDistance(ring[i-1], ring[i])
	}
	return total / float64(len(ring)-1)
}

// LatLngToPoint model.LatLng を orb.Point（経度, 緯度）に変換
func LatLngToPoint(l model.LatLng) orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// PointToLatLng orb.Point を model.LatLng に変換
func PointToLatLng(p orb.Point) model.LatLng {
	return model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// RingToPolygon 閉じたリングを orb.Polygon に変換
func RingToPolygon(ring model.Ring) orb.Polygon {
	r := make(orb.Ring, len(ring))
	for i, v := range ring {
		r[i] = LatLngToPoint(v)
	}
	if !r.Closed() && len(r) > 0 {
		r = append(r, r[0])
	}
	return orb.Polygon{r}
}
