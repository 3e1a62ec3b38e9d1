package blockade

import (
	"github.com/lkrtools/blockade/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// BufferBoundary dilates a district polygon outward by dist meters and
// extracts the line work of the result. The geometry is reprojected into
// metricSrid for the buffer (AUTO_SRID picks the UTM zone from the envelope
// center) and back into the source CRS afterwards.
//
// A district with disjoint parts and a small radius can legitimately produce
// a multi-part boundary; every part is kept.
func (g *Toolbox) BufferBoundary(d District, dist float64, metricSrid int) (b Blockade, err error) {
	log.Info(g.logTag+"start boundary buffer", zap.String("district", d.Name), zap.Float64("dist", dist))
	srcRef, err := g.getSridRef(SOURCE_SRID)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(d.Geom, srcRef)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if geo.IsEmpty() {
		err = ErrEmptyDistrict
		return
	}
	if metricSrid == AUTO_SRID {
		envelop := geo.Envelope()
		metricSrid = UtmEpsg((envelop.MinX()+envelop.MaxX())/2, (envelop.MinY()+envelop.MaxY())/2)
		log.Info(g.logTag+"auto-selected metric srid", zap.Int("srid", metricSrid))
	}
	mRef, err := g.getSridRef(metricSrid)
	if err != nil {
		return
	}
	if err = geo.TransformTo(mRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	buffed := geo.Buffer(dist, BufferQuadSegs)
	defer buffed.Destroy()
	switch buffed.Type() {
	case gdal.GT_Polygon, gdal.GT_MultiPolygon:
	default:
		err = ErrGdalWrongGeoType
		return
	}
	bound := buffed.Boundary()
	defer bound.Destroy()
	if bound.IsEmpty() {
		err = ErrEmptyBoundary
		return
	}
	if err = buffed.TransformTo(srcRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	if err = bound.TransformTo(srcRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	b = Blockade{
		District:    d,
		RangeMeters: dist,
	}
	if b.Area, err = buffed.ToWKB(); err != nil {
		return
	}
	b.Boundary, err = bound.ToWKB()
	log.Info(g.logTag+"boundary buffer done", zap.String("district", d.Name),
		zap.Int("srid", metricSrid), zap.Bool("multipart", bound.Type() == gdal.GT_MultiLineString))
	return
}
