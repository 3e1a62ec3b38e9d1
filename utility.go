package blockade

import (
	"fmt"
	"math"
)

const (
	utmNorthBase = 32600
	utmSouthBase = 32700
)

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

// UtmZone maps a longitude to its UTM zone number (1..60).
func UtmZone(lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone < 1 {
		zone = 1
	} else if zone > 60 {
		zone = 60
	}
	return zone
}

// UtmEpsg maps a geographic point to the EPSG code of its UTM zone
// (326xx north, 327xx south).
func UtmEpsg(lon, lat float64) int {
	base := utmNorthBase
	if lat < 0 {
		base = utmSouthBase
	}
	return base + UtmZone(lon)
}
