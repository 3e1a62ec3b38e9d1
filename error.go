package blockade

import "errors"

var (
	ErrGdalDriverCreate  = errors.New("gdal driver create err")
	ErrGdalDriverOpen    = errors.New("gdal driver open err")
	ErrVoidSrid          = errors.New("gdal shp with void srid")
	ErrGdalWrongGeoType  = errors.New("gdal wrong geo type")
	ErrGdalWrongGeoJSON  = errors.New("gdal wrong GeoJSON")
	ErrInvalidWKT        = errors.New("invalid WKT")
	ErrDistrictNotFound  = errors.New("district not found in dataset")
	ErrDistrictAmbiguous = errors.New("district name matches multiple records")
	ErrEmptyDistrict     = errors.New("district geometry is empty")
	ErrEmptyBoundary     = errors.New("buffered area has no boundary")
	ErrEmptyTrack        = errors.New("no track written to gpx")
)
