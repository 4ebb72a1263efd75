// Command beamgen generates an initial electron-beam ray set, maps it onto a
// detector and writes it as CSV, with optional footprint plots and SQLite
// persistence.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/beamrays/internal/beam"
	"github.com/banshee-data/beamrays/internal/beamdb"
	"github.com/banshee-data/beamrays/internal/beamplot"
	"github.com/banshee-data/beamrays/internal/config"
	"github.com/banshee-data/beamrays/internal/coords"
	"github.com/banshee-data/beamrays/internal/monitoring"
	"github.com/banshee-data/beamrays/internal/units"
	"github.com/banshee-data/beamrays/internal/version"
	"gonum.org/v1/plot/vg"
)

type options struct {
	configPath     string
	kind           string
	numRays        int
	radius         float64
	semiangle      float64
	random         bool
	seed           uint64
	voltage        float64
	voltageUnit    string
	wavelengthUnit string
	shape          string
	pixelSize      float64
	flipY          bool
	scanRotation   float64
	outPath        string
	pngPath        string
	htmlPath       string
	dbPath         string
	listRuns       bool
	showVersion    bool

	// set records which flags were given explicitly so they override the config file.
	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("beamgen", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "path to beam config JSON (optional)")
	fs.StringVar(&o.kind, "kind", "circular", "beam kind: circular or point")
	fs.IntVar(&o.numRays, "n", 256, "approximate number of rays")
	fs.Float64Var(&o.radius, "radius", 1e-4, "outer radius of a circular beam (m)")
	fs.Float64Var(&o.semiangle, "semiangle", 1e-3, "semiangle of a point beam (rad)")
	fs.BoolVar(&o.random, "random", false, "sample uniformly at random instead of concentric rings")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 uses a random source)")
	fs.Float64Var(&o.voltage, "voltage", 200, "accelerating voltage")
	fs.StringVar(&o.voltageUnit, "voltage-unit", units.Kilovolt, "voltage unit: v or kv")
	fs.StringVar(&o.wavelengthUnit, "wavelength-unit", units.Picometre, "wavelength report unit: "+units.GetValidLengthUnitsString())
	fs.StringVar(&o.shape, "shape", "128,128", "detector shape as sy,sx")
	fs.Float64Var(&o.pixelSize, "pixel-size", 1e-6, "detector pixel size (m)")
	fs.BoolVar(&o.flipY, "flip-y", false, "flip the y axis before scan rotation")
	fs.Float64Var(&o.scanRotation, "scan-rotation", 0, "scan rotation (degrees)")
	fs.StringVar(&o.outPath, "out", "-", "CSV output path, - for stdout")
	fs.StringVar(&o.pngPath, "png", "", "write a PNG footprint plot to this path")
	fs.StringVar(&o.htmlPath, "html", "", "write an HTML footprint chart to this path")
	fs.StringVar(&o.dbPath, "db", "", "record the run in this SQLite database")
	fs.BoolVar(&o.listRuns, "list", false, "list runs stored in -db and exit")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if !units.IsValidLength(o.wavelengthUnit) {
		return nil, fmt.Errorf("invalid -wavelength-unit %q, must be one of: %s", o.wavelengthUnit, units.GetValidLengthUnitsString())
	}
	if o.listRuns && o.dbPath == "" {
		return nil, errors.New("-list requires -db")
	}
	return o, nil
}

func parseShape(s string) ([2]int, error) {
	var shape [2]int
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return shape, fmt.Errorf("invalid shape %q, want sy,sx", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return shape, fmt.Errorf("invalid shape %q: %w", s, err)
		}
		shape[i] = v
	}
	return shape, nil
}

// resolveConfig merges the optional config file with explicitly set flags.
// Flags that were not given keep the file's values, or the flag defaults when
// there is no file.
func resolveConfig(o *options) (*config.BeamConfig, error) {
	cfg := config.EmptyBeamConfig()
	if o.configPath != "" {
		loaded, err := config.LoadBeamConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	override := func(name string) bool {
		return o.set[name] || o.configPath == ""
	}
	if override("kind") {
		cfg.Kind = &o.kind
	}
	if override("n") {
		cfg.NumRays = &o.numRays
	}
	if override("radius") {
		cfg.OuterRadius = &o.radius
	}
	if override("semiangle") {
		cfg.Semiangle = &o.semiangle
	}
	if override("random") {
		cfg.Random = &o.random
	}
	if override("seed") {
		cfg.Seed = &o.seed
	}
	if override("voltage") {
		cfg.AcceleratingVoltage = &o.voltage
	}
	if override("voltage-unit") {
		cfg.VoltageUnit = &o.voltageUnit
	}
	if override("shape") {
		shape, err := parseShape(o.shape)
		if err != nil {
			return nil, err
		}
		cfg.DetectorShape = &shape
	}
	if override("pixel-size") {
		cfg.PixelSize = &o.pixelSize
	}
	if override("flip-y") {
		cfg.FlipY = &o.flipY
	}
	if override("scan-rotation") {
		cfg.ScanRotation = &o.scanRotation
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func samplerFor(cfg *config.BeamConfig) beam.Sampler {
	s := beam.Sampler{Random: cfg.GetRandom()}
	if seed := cfg.GetSeed(); s.Random && seed != 0 {
		s.Src = rand.NewPCG(seed, seed)
	}
	return s
}

func writeCSV(w io.Writer, rays *beam.Rays, det coords.Detector) error {
	x, tx, y, ty := rays.X(), rays.SlopeX(), rays.Y(), rays.SlopeY()
	py, px, err := det.PixelCoords(y, x)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "theta_x", "y", "theta_y", "pixel_y", "pixel_x"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range x {
		if err := cw.Write([]string{f(x[i]), f(tx[i]), f(y[i]), f(ty[i]), f(py[i]), f(px[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func listRuns(o *options, stdout io.Writer) error {
	db, err := beamdb.Open(o.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.Runs()
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s\t%s\tn≈%d\trays=%d\tsize=%g\trandom=%v\n",
			r.RunID, r.Kind, r.NumRaysApprox, r.NumRays, r.Size, r.Random)
	}
	return nil
}

func run(o *options, stdout io.Writer) error {
	if o.showVersion {
		fmt.Fprintf(stdout, "beamgen %s\n", version.String())
		return nil
	}
	if o.listRuns {
		return listRuns(o, stdout)
	}

	cfg, err := resolveConfig(o)
	if err != nil {
		return err
	}

	kind := cfg.GetKind()
	rays, err := samplerFor(cfg).Build(kind, cfg.GetNumRays(), cfg.GetSize())
	if err != nil {
		return err
	}

	volts := cfg.GetAcceleratingVoltage()
	wavelength := units.CalculateWavelength(volts)
	log.Printf("[beamgen] %s beam: %d rays (requested %d), size %g, λ = %.4g %s at %g V",
		kind, rays.Num(), cfg.GetNumRays(), cfg.GetSize(),
		units.ConvertLength(wavelength, o.wavelengthUnit), o.wavelengthUnit, volts)

	out := stdout
	if o.outPath != "-" && o.outPath != "" {
		f, err := os.Create(o.outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", o.outPath, err)
		}
		defer f.Close()
		out = f
	}
	if err := writeCSV(out, rays, cfg.GetDetector()); err != nil {
		return fmt.Errorf("failed to write rays: %w", err)
	}

	footprint := beamplot.FootprintFromRays(rays, fmt.Sprintf("%s beam (%d rays)", kind, rays.Num()), kind == beam.KindPoint)
	if o.pngPath != "" {
		if err := footprint.SavePNG(o.pngPath, 6*vg.Inch); err != nil {
			return err
		}
		log.Printf("[beamgen] wrote %s", o.pngPath)
	}
	if o.htmlPath != "" {
		f, err := os.Create(o.htmlPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", o.htmlPath, err)
		}
		defer f.Close()
		if err := footprint.WriteHTML(f); err != nil {
			return err
		}
		log.Printf("[beamgen] wrote %s", o.htmlPath)
	}

	if o.dbPath != "" {
		db, err := beamdb.Open(o.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		r := &beamdb.Run{
			Kind:                kind,
			NumRaysApprox:       cfg.GetNumRays(),
			Size:                cfg.GetSize(),
			Random:              cfg.GetRandom(),
			Seed:                cfg.GetSeed(),
			AcceleratingVoltage: volts,
			Wavelength:          wavelength,
		}
		if err := db.RecordRun(r, rays); err != nil {
			return err
		}
		log.Printf("[beamgen] recorded run %s in %s", r.RunID, o.dbPath)
	}
	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("[beamgen] %v", err)
	}
	monitoring.SetLogger(log.Printf)

	if err := run(o, os.Stdout); err != nil {
		log.Fatalf("[beamgen] %v", err)
	}
}
