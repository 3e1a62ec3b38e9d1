package blockade

import "encoding/json"

type AnyJson = json.RawMessage

type GdalGeo = []byte

// District is one matching record of the administrative boundary dataset.
type District struct {
	Name string
	Adm  string  // administrative type code, e.g. "4002"
	Geom GdalGeo // polygon WKB in the source CRS
}

// Kind is the long form of the administrative type ("Landkreis" etc).
func (d District) Kind() string {
	if n, ok := admNames[d.Adm]; ok {
		return n
	}
	return d.Adm
}

// Short is the file-name suffix of the administrative type ("(Lkr)" etc).
func (d District) Short() string {
	return admShorts[d.Adm]
}

// Blockade is the buffered result of one district.
type Blockade struct {
	District
	RangeMeters float64
	Area        GdalGeo // buffered polygon WKB in the source CRS
	Boundary    GdalGeo // line work of the buffered polygon, source CRS
}
