package blockade

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lkrtools/blockade/log"
	"github.com/lkrtools/blockade/utils"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// ResolveDataset turns the configured dataset path into a readable shapefile
// path. A .zip archive is extracted into a unique scratch subdirectory and the
// contained .shp is used.
func (g *Toolbox) ResolveDataset(path string) (shp string, err error) {
	if _, err = os.Stat(path); err != nil {
		return
	}
	if !strings.EqualFold(filepath.Ext(path), utils.FILE_EXT_ZIP) {
		shp = path
		return
	}
	dir, err := utils.GetUniqSubDir(g.tmpDir)
	if err != nil {
		return
	}
	shp, utf8, err := utils.GetShpInZip(path, dir)
	if err != nil {
		return
	}
	log.Info(g.logTag+"extracted dataset", zap.String("shp", shp), zap.Bool("utf8", utf8))
	return
}

func (g *Toolbox) openDistrictLayer(shp string) (ds gdal.DataSource, layer gdal.Layer, srid int, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	layer = ds.LayerByIndex(0)
	if srid, err = g.getSrid(layer.SpatialReference()); err != nil {
		ds.Destroy()
	}
	return
}

// Districts lists the distinct district names found in the given field,
// sorted. The dataset credit line is logged on every load.
func (g *Toolbox) Districts(shp, field string) (names []string, err error) {
	ds, layer, _, err := g.openDistrictLayer(shp)
	if err != nil {
		return
	}
	defer ds.Destroy()
	log.Info(g.logTag+"loaded boundary dataset", zap.String("shp", shp), zap.String("credit", CreditText))
	nameIdx := layer.Definition().FieldIndex(field)
	if nameIdx < 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, field)
		return
	}
	var (
		nameSet = map[string]struct{}{}
		feature *gdal.Feature
		name    string
		cnt     int
		gc      []destroyable
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature != nil {
			gc = append(gc, *feature)
			name = utils.DecodeFieldValue(feature.FieldAsString(nameIdx))
			if name == "" {
				err = fmt.Errorf(ErrColumnEmptyTemplate, field)
				return
			}
			nameSet[name] = struct{}{}
			cnt++
		} else {
			break
		}
	}
	names = make([]string, 0, len(nameSet))
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)
	log.Info(g.logTag+"got district names from shp", zap.String("shp", shp), zap.Int("cnt", cnt), zap.Int("distinct", len(nameSet)))
	return
}

// SelectDistrict returns every record whose name field matches target. The
// same name can show up twice, once as Landkreis and once as kreisfreie
// Stadt, told apart by the ADM field; resolving that is the caller's job.
// Geometries are reprojected to the source CRS when the layer differs.
func (g *Toolbox) SelectDistrict(shp, field, target string) (ret []District, err error) {
	ds, layer, srid, err := g.openDistrictLayer(shp)
	if err != nil {
		return
	}
	defer ds.Destroy()
	log.Info(g.logTag+"loaded boundary dataset", zap.String("shp", shp), zap.String("credit", CreditText))
	def := layer.Definition()
	nameIdx := def.FieldIndex(field)
	if nameIdx < 0 {
		err = fmt.Errorf(ErrColumnMissingTemplate, field)
		return
	}
	admIdx := def.FieldIndex(ADM_FIELD)
	var (
		srcRef  gdal.SpatialReference
		feature *gdal.Feature
		geo     gdal.Geometry
		wkb     []byte
		e       error
		gc      []destroyable
	)
	if srid != SOURCE_SRID {
		if srcRef, err = g.getSridRef(SOURCE_SRID); err != nil {
			return
		}
	}
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		if utils.DecodeFieldValue(feature.FieldAsString(nameIdx)) != target {
			continue
		}
		geo = feature.Geometry()
		switch geo.Type() {
		case gdal.GT_Polygon, gdal.GT_MultiPolygon:
		default:
			log.Warn(g.logTag+"skipping non-polygonal feature", zap.Uint("type", uint(geo.Type())))
			continue
		}
		if srid != SOURCE_SRID {
			if e = geo.TransformTo(srcRef); e != nil {
				log.Error(g.logTag+"geo transform failed", zap.Error(e))
				continue
			}
		}
		if wkb, e = geo.ToWKB(); e != nil {
			log.Error(g.logTag+"err in wkb convert", zap.Error(e))
			continue
		}
		d := District{
			Name: target,
			Geom: wkb,
		}
		if admIdx >= 0 {
			d.Adm = feature.FieldAsString(admIdx)
		}
		ret = append(ret, d)
	}
	if len(ret) == 0 {
		err = ErrDistrictNotFound
		return
	}
	log.Info(g.logTag+"selected district records", zap.String("target", target), zap.Int("matches", len(ret)))
	return
}
