package blockade

import (
	"os"
	"path/filepath"
	"testing"
)

// These tests run against a real dataset drop. Download the
// Verwaltungsgebiete shapefiles from opendata.bayern.de and place lkr_ex.*
// under testdata/ to enable them.
func testDataset(t *testing.T) string {
	t.Helper()
	shp := filepath.Join("testdata", "lkr_ex"+FILE_EXT_SHP)
	if _, err := os.Stat(shp); err != nil {
		t.Skip("boundary dataset not present under testdata/")
	}
	return shp
}

func TestDistricts(t *testing.T) {
	g := NewToolbox()
	shp := testDataset(t)
	srid, err := g.GetSridOfShapefile(shp)
	if err != nil {
		t.Fatal(err)
	}
	if srid != SOURCE_SRID {
		t.Logf("dataset delivered in srid %d", srid)
	}
	names, err := g.Districts(shp, DISTRICT_FIELD)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("no district names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %q %q", i, names[i-1], names[i])
		}
	}
}

func TestSelectDistrict(t *testing.T) {
	g := NewToolbox()
	shp := testDataset(t)
	matches, err := g.SelectDistrict(shp, DISTRICT_FIELD, "Nürnberg")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if len(m.Geom) == 0 {
			t.Fatal("match without geometry")
		}
	}
	// Fürth exists both as Landkreis and as kreisfreie Stadt
	matches, err = g.SelectDistrict(shp, DISTRICT_FIELD, "Fürth")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 2 && matches[0].Adm == matches[1].Adm {
		t.Error("ambiguous matches share the same ADM code")
	}
}

func TestSelectDistrictNotFound(t *testing.T) {
	g := NewToolbox()
	_, err := g.SelectDistrict(testDataset(t), DISTRICT_FIELD, "Atlantis")
	if err != ErrDistrictNotFound {
		t.Fatalf("want ErrDistrictNotFound, got %v", err)
	}
}

func TestResolveDatasetMissing(t *testing.T) {
	g := NewToolbox()
	if _, err := g.ResolveDataset(filepath.Join(t.TempDir(), "nope.shp")); err == nil {
		t.Fatal("want error for missing dataset")
	}
}
