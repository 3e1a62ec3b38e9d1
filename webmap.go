package blockade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/lkrtools/blockade/log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// MapLayer is one named GeoJSON overlay of the web map.
type MapLayer struct {
	Name    string
	Color   string
	GeoJSON AnyJson // GeoJSON geometry document
}

type mapPayload struct {
	Title      string
	Lat, Lon   float64
	LayersJSON template.JS
}

type mapFeatureLayer struct {
	Name     string                     `json:"name"`
	Color    string                     `json:"color"`
	Features *geojson.FeatureCollection `json:"features"`
}

// RenderMap writes a self-contained Leaflet page with an OSM tile layer, the
// given overlays, a layer control and a scale bar. The map is centered on the
// bound of the last layer, which by convention is the buffered area.
func (g *Toolbox) RenderMap(path, title string, layers []MapLayer) (err error) {
	log.Info(g.logTag+"output web map", zap.String("html", path), zap.Int("layers", len(layers)))
	if len(layers) == 0 {
		err = ErrGdalWrongGeoJSON
		return
	}
	var (
		fls    = make([]mapFeatureLayer, len(layers))
		geom   *geojson.Geometry
		center orb.Point
	)
	for i, l := range layers {
		if geom, err = geojson.UnmarshalGeometry(l.GeoJSON); err != nil {
			log.Error(g.logTag+"bad layer geometry", zap.String("layer", l.Name), zap.Error(err))
			err = ErrGdalWrongGeoJSON
			return
		}
		f := geojson.NewFeature(geom.Geometry())
		f.Properties["name"] = l.Name
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		fls[i] = mapFeatureLayer{Name: l.Name, Color: l.Color, Features: fc}
		center = geom.Geometry().Bound().Center()
	}
	raw, err := json.Marshal(fls)
	if err != nil {
		return
	}
	var buf bytes.Buffer
	err = webMapTmpl.Execute(&buf, mapPayload{
		Title:      title,
		Lat:        center.Lat(),
		Lon:        center.Lon(),
		LayersJSON: template.JS(raw),
	})
	if err != nil {
		return
	}
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return
	}
	log.Info(g.logTag+"web map written", zap.String("html", path),
		zap.String("center", fmt.Sprintf("%.5f,%.5f", center.Lat(), center.Lon())))
	return
}

var webMapTmpl = template.Must(template.New("webmap").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Lat}}, {{.Lon}}], 9);
var osm = L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	maxZoom: 19,
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
var layers = {{.LayersJSON}};
var overlays = {};
var last = null;
layers.forEach(function (l) {
	var gj = L.geoJSON(l.features, {
		style: function () { return { color: l.color, weight: 2, fillOpacity: 0.15 }; }
	}).addTo(map);
	overlays[l.name] = gj;
	last = gj;
});
if (last !== null) {
	map.fitBounds(last.getBounds());
}
L.control.layers({ 'OpenStreetMap': osm }, overlays).addTo(map);
L.control.scale().addTo(map);
</script>
</body>
</html>
`))
