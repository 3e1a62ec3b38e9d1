package blockade

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lkrtools/blockade/log"

	"github.com/twpayne/go-kml"
	"go.uber.org/zap"
)

// WriteKml serializes the blockade boundary into a KML file, one placemark
// with a line string per boundary part.
func (g *Toolbox) WriteKml(path string, b Blockade) (err error) {
	log.Info(g.logTag+"output kml file", zap.String("kml", path))
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
	marks := make([]kml.Element, 0, len(parts)+2)
	marks = append(marks,
		kml.Name(fmt.Sprintf("%s %gkm", b.Name, b.RangeMeters/1000)),
		kml.SharedStyle("boundary",
			kml.LineStyle(
				kml.Color(color.RGBA{R: 0xff, A: 0xff}),
				kml.Width(2),
			),
		),
	)
	var (
		np   int
		x, y float64
	)
	for i, part := range parts {
		np = part.PointCount()
		coords := make([]kml.Coordinate, np)
		for j := 0; j < np; j++ {
			x, y, _ = part.Point(j)
			coords[j] = kml.Coordinate{Lon: x, Lat: y}
		}
		marks = append(marks, kml.Placemark(
			kml.Name(fmt.Sprintf("part %d", i+1)),
			kml.StyleURL("#boundary"),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coords...),
			),
		))
	}
	doc := kml.KML(kml.Document(marks...))
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	if err = doc.WriteIndent(f, "", "  "); err != nil {
		return
	}
	log.Info(g.logTag+"kml file created", zap.String("kml", path), zap.Int("parts", len(parts)))
	return
}
