package blockade

import (
	"strings"
	"testing"
)

func TestTransformWkt(t *testing.T) {
	g := NewToolbox()
	if g == nil {
		t.Fatal()
	}
	// rough span of Bavaria in ETRS89
	span := [4]float64{8.97, 13.84, 47.27, 50.56}
	wkt := SpanToWkt(span)
	ret, err := g.TransformWkt(wkt, SOURCE_SRID, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	mSpan, err := g.GetWktSpan(ret, METRIC_SRID)
	if err != nil {
		t.Fatal(err)
	}
	t.Log(mSpan)
	// UTM 33N eastings sit in the hundreds of kilometers, northings around 5200-5600 km
	if mSpan[0] >= mSpan[1] || mSpan[1] > 1e6 {
		t.Errorf("implausible eastings: %v", mSpan)
	}
	if mSpan[2] < 5e6 || mSpan[3] > 6e6 {
		t.Errorf("implausible northings: %v", mSpan)
	}
}

func TestTransformWktSameSrid(t *testing.T) {
	g := NewToolbox()
	wkt := PointsToWkt(11.0, 12.0, 48.0, 49.0)
	ret, err := g.TransformWkt(wkt, SOURCE_SRID, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if ret != wkt {
		t.Errorf("same-srid transform changed geometry: %s", ret)
	}
}

func TestWktWkbRoundTrip(t *testing.T) {
	g := NewToolbox()
	wkt := PointsToWkt(11.0, 11.1, 48.0, 48.1)
	wkb, err := g.WktToWkb(wkt, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	back, err := g.WkbToWkt(wkb, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(back, "POLYGON") {
		t.Errorf("unexpected wkt: %s", back)
	}
}

func TestWkbToGeoJSON(t *testing.T) {
	g := NewToolbox()
	wkb, err := g.WktToWkb(PointsToWkt(11.0, 11.1, 48.0, 48.1), SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	ret, err := g.WkbToGeoJSON(wkb, SOURCE_SRID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ret), "Polygon") {
		t.Errorf("unexpected geojson: %s", ret)
	}
}
