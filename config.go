package blockade

const (
	FILE_EXT_SHP  = ".shp"
	FILE_EXT_GPX  = ".gpx"
	FILE_EXT_KML  = ".kml"
	FILE_EXT_JSON = ".json"
	FILE_EXT_HTML = ".html"

	SHP_DRIVER_NAME     = "ESRI Shapefile"
	GPX_DRIVER_NAME     = "GPX"
	GEOJSON_DRIVER_NAME = "GeoJSON"

	// ETRS89 geographic, the delivery CRS of the survey dataset.
	SOURCE_SRID = 4258
	// UTM zone 33N covers most of Bavaria; buffering needs metric units.
	METRIC_SRID = 32633
	// AUTO_SRID selects the UTM zone from the district envelope center.
	AUTO_SRID = 0

	DISTRICT_FIELD = "BEZ_KRS"
	ADM_FIELD      = "ADM"

	ADM_LANDKREIS = "4002"
	ADM_KREISFREI = "4003"

	GPX_TRACK_LAYER = "tracks"

	BufferQuadSegs = 24

	ErrColumnMissingTemplate = `field %q missing from shapefile layer`
	ErrColumnEmptyTemplate   = `field %q is empty in shapefile feature`

	CreditText = "Datenquelle: Bayerische Vermessungsverwaltung - www.geodaten.bayern.de (License: CC BY)"
)

var (
	admNames = map[string]string{
		ADM_LANDKREIS: "Landkreis",
		ADM_KREISFREI: "Kreisfreie Stadt",
	}
	admShorts = map[string]string{
		ADM_LANDKREIS: "(Lkr)",
		ADM_KREISFREI: "(kfSt)",
	}
)
