package blockade

import (
	"github.com/lkrtools/blockade/log"

	"github.com/pebbe/proj/v5"
	"go.uber.org/zap"
)

// TrackLength sums the ellipsoidal length of the blockade boundary in meters,
// for the run summary. ETRS89 uses the GRS80 ellipsoid.
func (g *Toolbox) TrackLength(b Blockade) (meters float64, err error) {
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
	ctx := proj.NewContext()
	defer ctx.Close()
	ll, err := ctx.Create("+proj=latlong +ellps=GRS80")
	if err != nil {
		return
	}
	defer ll.Close()
	var (
		np             int
		x0, y0, x1, y1 float64
		d              float64
		e              error
	)
	for _, part := range parts {
		np = part.PointCount()
		for i := 1; i < np; i++ {
			x0, y0, _ = part.Point(i - 1)
			x1, y1, _ = part.Point(i)
			d, e = ll.Dist(proj.DegToRad(x0), proj.DegToRad(y0), proj.DegToRad(x1), proj.DegToRad(y1))
			if e != nil {
				err = e
				return
			}
			meters += d
		}
	}
	log.Info(g.logTag+"computed track length", zap.Float64("km", meters/1000), zap.Int("parts", len(parts)))
	return
}
