package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/lkrtools/blockade"
	"github.com/lkrtools/blockade/log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultData = "data/Verwaltungsgebiete_shp_epsg4258/lkr_ex.shp"

var (
	district   string
	rangeKm    float64
	dataPath   string
	nameField  string
	metricSrid int
	outDir     string
	tmpDir     string
	doMap      bool
	openMap    bool
	doKml      bool
	doGeoJSON  bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blockade",
	Short: "Export a buffered district boundary as a GPX track",
	Long: `blockade loads the polygon of a Bavarian district (Landkreis or
kreisfreie Stadt) from the official boundary dataset, dilates it outward by a
fixed range and writes the resulting boundary as a GPX track, optionally with
KML/GeoJSON copies and an interactive Leaflet map.

The results are informative only and carry no legal value.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		if !verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		} else {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.SetLogger(logger)
		applyEnv(cmd)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&district, "district", "d", "Nürnberg", `target "Landkreis" or "Kreisfreie Stadt"`)
	f.Float64VarP(&rangeKm, "range-km", "r", 15, "range from the district border in km")
	f.StringVar(&dataPath, "data", defaultData, "boundary shapefile, or a zip containing one")
	f.StringVar(&nameField, "field", blockade.DISTRICT_FIELD, "attribute field holding the district name")
	f.IntVar(&metricSrid, "metric-srid", blockade.METRIC_SRID, "EPSG code of the metric CRS used for buffering (0 = auto UTM zone)")
	f.StringVar(&outDir, "out-dir", ".", "directory for the generated files")
	f.StringVar(&tmpDir, "tmp-dir", "", "scratch directory for zip extraction")
	f.BoolVar(&doMap, "map", false, "create an interactive map")
	f.BoolVar(&openMap, "open-map", false, "open the created map in a browser (implies --map)")
	f.BoolVar(&doKml, "kml", false, "also export the boundary as KML")
	f.BoolVar(&doGeoJSON, "geojson", false, "also export the buffered area as GeoJSON")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// applyEnv lets a .env file or the environment override flags the user left
// at their defaults.
func applyEnv(cmd *cobra.Command) {
	_ = godotenv.Load()
	for env, flag := range map[string]string{
		"BLOCKADE_DATA":    "data",
		"BLOCKADE_OUT_DIR": "out-dir",
		"BLOCKADE_TMP_DIR": "tmp-dir",
	} {
		if v := os.Getenv(env); v != "" && !cmd.Flags().Changed(flag) {
			_ = cmd.Flags().Set(flag, v)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	g := blockade.NewToolbox(tmpDir)
	shp, err := g.ResolveDataset(dataPath)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", dataPath, err)
	}
	matches, err := g.SelectDistrict(shp, nameField, district)
	if errors.Is(err, blockade.ErrDistrictNotFound) {
		names, e := g.Districts(shp, nameField)
		if e != nil {
			return e
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Could not find %q in the data. Available alternatives:\n%s\n",
			district, strings.Join(names, ", "))
		return err
	} else if err != nil {
		return err
	}

	target := matches[0]
	outName := district
	if len(matches) > 1 {
		var picked int
		if picked, err = pickDistrict(cmd, matches); err != nil {
			return err
		}
		target = matches[picked]
		outName += target.Short()
	}

	b, err := g.BufferBoundary(target, rangeKm*1000, metricSrid)
	if err != nil {
		return err
	}

	base := filepath.Join(outDir, fmt.Sprintf("%s_%gkm", outName, rangeKm))
	gpxFile := base + blockade.FILE_EXT_GPX
	if err = g.WriteTrack(gpxFile, b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported boundary into %q\n", gpxFile)

	if doKml {
		if err = g.WriteKml(base+blockade.FILE_EXT_KML, b); err != nil {
			return err
		}
	}
	if doGeoJSON {
		if err = g.WriteGeoJSON(base+blockade.FILE_EXT_JSON, b); err != nil {
			return err
		}
	}

	if meters, e := g.TrackLength(b); e == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Boundary length: %.1f km\n", meters/1000)
	} else {
		log.Warn("track length unavailable", zap.Error(e))
	}

	if doMap || openMap {
		htmlFile := base + blockade.FILE_EXT_HTML
		if err = renderMap(g, htmlFile, outName, target, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Map written into %q\n", htmlFile)
		if openMap {
			if e := openBrowser(htmlFile); e != nil {
				log.Warn("could not open browser", zap.Error(e))
			}
		}
	}
	return nil
}

// pickDistrict resolves an ambiguous name (Landkreis vs kreisfreie Stadt) by
// asking on the terminal. In a pipe there is nobody to ask.
func pickDistrict(cmd *cobra.Command, matches []blockade.District) (int, error) {
	kinds := make([]string, len(matches))
	for i, m := range matches {
		kinds[i] = fmt.Sprintf("#%d: %s (%s)", i+1, m.Name, m.Kind())
	}
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return 0, fmt.Errorf("%w: %s", blockade.ErrDistrictAmbiguous, strings.Join(kinds, ", "))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Found multiple hits:")
	for _, k := range kinds {
		fmt.Fprintln(out, k)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "Select one of the listed alternatives (number of the selection): ")
		if !scanner.Scan() {
			return 0, blockade.ErrDistrictAmbiguous
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Input was not a valid number.")
			continue
		}
		if n > 0 && n <= len(matches) {
			return n - 1, nil
		}
	}
}

func renderMap(g *blockade.Toolbox, htmlFile, outName string, d blockade.District, b blockade.Blockade) error {
	borderJSON, err := g.WkbToGeoJSON(d.Geom, blockade.SOURCE_SRID)
	if err != nil {
		return err
	}
	areaJSON, err := g.WkbToGeoJSON(b.Area, blockade.SOURCE_SRID)
	if err != nil {
		return err
	}
	return g.RenderMap(htmlFile, outName, []blockade.MapLayer{
		{Name: outName, Color: "#3366cc", GeoJSON: borderJSON},
		{Name: fmt.Sprintf("%gkm radius", rangeKm), Color: "#cc3333", GeoJSON: areaJSON},
	})
}

func openBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	url := "file://" + abs
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
