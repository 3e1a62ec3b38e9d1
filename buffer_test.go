package blockade

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// a small rectangle around Munich, in the source CRS
func testDistrict(t *testing.T, g *Toolbox) District {
	t.Helper()
	wkb, err := g.WktToWkb(PointsToWkt(11.4, 11.7, 48.0, 48.25), SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	return District{Name: "München", Adm: ADM_KREISFREI, Geom: wkb}
}

func TestBufferBoundary(t *testing.T) {
	g := NewToolbox()
	d := testDistrict(t, g)
	b, err := g.BufferBoundary(d, 15000, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Area) == 0 || len(b.Boundary) == 0 {
		t.Fatal("empty buffer result")
	}
	srcWkt, err := g.WkbToWkt(d.Geom, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	areaWkt, err := g.WkbToWkt(b.Area, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	srcSpan, err := g.GetWktSpan(srcWkt, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	areaSpan, err := g.GetWktSpan(areaWkt, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	// a 15 km dilation must stick out of the original envelope on every side
	if areaSpan[0] >= srcSpan[0] || areaSpan[1] <= srcSpan[1] ||
		areaSpan[2] >= srcSpan[2] || areaSpan[3] <= srcSpan[3] {
		t.Errorf("buffered span %v not outside source span %v", areaSpan, srcSpan)
	}
}

func TestBufferBoundaryEmptyDistrict(t *testing.T) {
	g := NewToolbox()
	wkb, err := g.WktToWkb("POLYGON EMPTY", SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	d := District{Name: "Leere", Geom: wkb}
	if _, err = g.BufferBoundary(d, 15000, METRIC_SRID); err != ErrEmptyDistrict {
		t.Fatalf("want ErrEmptyDistrict, got %v", err)
	}
}

func TestBufferBoundaryDisjointParts(t *testing.T) {
	g := NewToolbox()
	// two boxes roughly 11 km apart; a 1 km dilation cannot bridge the gap
	wkt := "MULTIPOLYGON(((11.40 48.00,11.45 48.00,11.45 48.05,11.40 48.05,11.40 48.00))," +
		"((11.60 48.00,11.65 48.00,11.65 48.05,11.60 48.05,11.60 48.00)))"
	wkb, err := g.WktToWkb(wkt, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.BufferBoundary(District{Name: "Inseln", Geom: wkb}, 1000, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	boundWkt, err := g.WkbToWkt(b.Boundary, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(boundWkt, "MULTILINESTRING") {
		t.Fatalf("want multi-part boundary, got: %.60s", boundWkt)
	}

	gpx := filepath.Join(t.TempDir(), "inseln_1km"+FILE_EXT_GPX)
	if err = g.WriteTrack(gpx, b); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(gpx)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(raw), "<trk>"); n != 2 {
		t.Errorf("want one track per part, got %d tracks", n)
	}
}

func TestWriteTrackRejectsTracklessBoundary(t *testing.T) {
	g := NewToolbox()
	wkb, err := g.WktToWkb("POINT(11.5 48.1)", SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	b := Blockade{District: District{Name: "Punkt"}, Boundary: wkb}
	gpx := filepath.Join(t.TempDir(), "punkt"+FILE_EXT_GPX)
	if err = g.WriteTrack(gpx, b); err == nil {
		t.Fatal("want error for non-line boundary")
	}
}

func TestBufferBoundaryAutoSrid(t *testing.T) {
	g := NewToolbox()
	d := testDistrict(t, g)
	b, err := g.BufferBoundary(d, 1000, AUTO_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Boundary) == 0 {
		t.Fatal("empty boundary")
	}
}

func TestTrackLength(t *testing.T) {
	g := NewToolbox()
	d := testDistrict(t, g)
	b, err := g.BufferBoundary(d, 15000, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	meters, err := g.TrackLength(b)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("track length: %.1f km", meters/1000)
	// the rectangle is ~22x28 km; with a 15 km buffer the ring circumference
	// lands somewhere between the source perimeter and a generous upper bound
	if meters < 100e3 || meters > 400e3 {
		t.Errorf("implausible track length: %f", meters)
	}
}

func TestWriteTrackAndExports(t *testing.T) {
	g := NewToolbox()
	d := testDistrict(t, g)
	b, err := g.BufferBoundary(d, 5000, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	gpx := filepath.Join(dir, "muenchen_5km"+FILE_EXT_GPX)
	if err = g.WriteTrack(gpx, b); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(gpx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "<trk>") {
		t.Errorf("gpx without track: %s", raw[:min(len(raw), 200)])
	}

	kmlFile := filepath.Join(dir, "muenchen_5km"+FILE_EXT_KML)
	if err = g.WriteKml(kmlFile, b); err != nil {
		t.Fatal(err)
	}
	if raw, err = os.ReadFile(kmlFile); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "<LineString>") {
		t.Errorf("kml without line string")
	}

	jsonFile := filepath.Join(dir, "muenchen_5km"+FILE_EXT_JSON)
	if err = g.WriteGeoJSON(jsonFile, b); err != nil {
		t.Fatal(err)
	}
	if raw, err = os.ReadFile(jsonFile); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "FeatureCollection") {
		t.Errorf("geojson without feature collection")
	}
}
