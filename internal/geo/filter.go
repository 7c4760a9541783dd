// Package geo filters reports by proximity to a point.
//
// The filter is an equirectangular bounding box, not a geodesic circle: a
// degree of latitude is taken as 111 km and a degree of longitude as
// 111·cos(lat) km at the center latitude. Points near the corners of the box
// can be up to √2·radius from the center and are still included. The box does
// not wrap across the antimeridian.
package geo

import (
	"math"
	"sort"

	"rumorwatch/internal/models"
)

// KmPerDegree is the length of one degree of latitude used by the filter.
const KmPerDegree = 111.0

// cosEpsilon is the smallest |cos(lat)| the longitude offset is divided by.
// Closer to the poles every longitude is in range.
const cosEpsilon = 1e-9

// MaxLonOffset is the longitude offset used when the center is at a pole.
const MaxLonOffset = 180.0

// Box is an axis-aligned latitude/longitude rectangle around a center point.
type Box struct {
	CenterLat float64
	CenterLon float64
	LatOffset float64
	LonOffset float64
}

// NewBox builds the bounding box for a radius in kilometres. A negative
// radius yields an empty box that contains nothing.
func NewBox(centerLat, centerLon, radiusKm float64) Box {
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return Box{CenterLat: centerLat, CenterLon: centerLon, LatOffset: -1, LonOffset: -1}
	}

	b := Box{
		CenterLat: centerLat,
		CenterLon: centerLon,
		LatOffset: radiusKm / KmPerDegree,
	}

	cos := math.Cos(centerLat * math.Pi / 180)
	if math.Abs(cos) < cosEpsilon {
		b.LonOffset = MaxLonOffset
	} else {
		b.LonOffset = math.Min(radiusKm/(KmPerDegree*math.Abs(cos)), MaxLonOffset)
	}
	return b
}

// Contains reports whether a point lies inside the box, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return math.Abs(lat-b.CenterLat) <= b.LatOffset &&
		math.Abs(lon-b.CenterLon) <= b.LonOffset
}

// Bounds returns the min/max latitude and longitude of the box, for
// storage adapters that can prefilter with a range query.
func (b Box) Bounds() (minLat, maxLat, minLon, maxLon float64) {
	return b.CenterLat - b.LatOffset, b.CenterLat + b.LatOffset,
		b.CenterLon - b.LonOffset, b.CenterLon + b.LonOffset
}

// Within returns the reports inside the box around the center, newest
// first. Reports with equal creation times keep their input order. The input
// slice is not modified.
func Within(centerLat, centerLon, radiusKm float64, reports []models.Report) []models.Report {
	box := NewBox(centerLat, centerLon, radiusKm)

	out := make([]models.Report, 0)
	for i := range reports {
		if box.Contains(reports[i].Latitude, reports[i].Longitude) {
			out = append(out, reports[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
