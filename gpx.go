package blockade

import (
	"github.com/lkrtools/blockade/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// boundaryParts splits the boundary geometry into its line strings. The
// returned sub-geometries stay owned by geo.
func boundaryParts(geo gdal.Geometry) (parts []gdal.Geometry, err error) {
	switch geo.Type() {
	case gdal.GT_LineString:
		parts = []gdal.Geometry{geo}
	case gdal.GT_MultiLineString:
		parts = make([]gdal.Geometry, geo.GeometryCount())
		for i := range parts {
			parts[i] = geo.Geometry(i)
		}
	default:
		err = ErrGdalWrongGeoType
	}
	return
}

// WriteTrack serializes the blockade boundary into a GPX file, one track per
// line part.
func (g *Toolbox) WriteTrack(gpx string, b Blockade) (err error) {
	log.Info(g.logTag+"output gpx file", zap.String("gpx", gpx))
	ref, err := g.getSridRef(SOURCE_SRID)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(b.Boundary, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	parts, err := boundaryParts(geo)
	if err != nil {
		return
	}
	driver := gdal.OGRDriverByName(GPX_DRIVER_NAME)
	ds, ok := driver.Create(gpx, nil)
	if !ok {
		err = ErrGdalDriverCreate
		return
	}
	defer ds.Destroy() // flushes the gpx file
	layer := ds.CreateLayer(GPX_TRACK_LAYER, ref, gdal.GT_MultiLineString, nil)
	var (
		def     = layer.Definition()
		feature gdal.Feature
		track   gdal.Geometry
		valid   int
		e       error
		gc      = make([]destroyable, 0, len(parts)*2)
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for i, part := range parts {
		feature = def.Create()
		gc = append(gc, feature)
		if e = feature.SetFID(int64(i)); e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		// the GPX driver expects one MultiLineString per track
		track = gdal.Create(gdal.GT_MultiLineString)
		gc = append(gc, track)
		if e = track.AddGeometry(part); e != nil {
			log.Error(g.logTag+"err in build track geom", zap.Error(e))
			continue
		}
		if e = feature.SetGeometry(track); e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		valid++
	}
	if valid == 0 {
		err = ErrEmptyTrack
		return
	}
	log.Info(g.logTag+"gpx tracks created", zap.String("gpx", gpx), zap.Int("total", len(parts)), zap.Int("valid", valid))
	return
}

// WriteGeoJSON serializes the buffered area into a standalone GeoJSON file.
func (g *Toolbox) WriteGeoJSON(path string, b Blockade) (err error) {
	log.Info(g.logTag+"output geojson file", zap.String("json", path))
	ref, err := g.getSridRef(SOURCE_SRID)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(b.Area, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	driver := gdal.OGRDriverByName(GEOJSON_DRIVER_NAME)
	ds, ok := driver.Create(path, nil)
	if !ok {
		err = ErrGdalDriverCreate
		return
	}
	defer ds.Destroy() // flushes the json file
	layer := ds.CreateLayer("", ref, gdal.GT_Unknown, nil)
	feature := layer.Definition().Create()
	defer feature.Destroy()
	if err = feature.SetGeometry(geo); err != nil {
		log.Error(g.logTag+"err in set geom of feature", zap.Error(err))
		return
	}
	err = layer.Create(feature)
	return
}
