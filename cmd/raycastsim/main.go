// Command raycastsim is a demo CLI around internal/raycast: it loads a
// sensor config (a named preset, optionally overridden by a JSON file) and
// a required .mesh file, runs one full
// scan from a given pose, and writes the hit buffer plus optional debug
// diagnostics. It does not implement message correlation, buffer
// transfer, or any of the worker/transport contract spec.md §6 assigns
// to the host — those stay out of scope, as they do for the core.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/banshee-data/velocity.report/internal/fsutil"
	"github.com/banshee-data/velocity.report/internal/monitoring"
	"github.com/banshee-data/velocity.report/internal/raycast"
	"github.com/banshee-data/velocity.report/internal/raycast/meshio"
	"github.com/banshee-data/velocity.report/internal/raycastviz"
	"github.com/banshee-data/velocity.report/internal/store"
	"github.com/banshee-data/velocity.report/internal/version"
)

var (
	showVersion = flag.Bool("version", false, "print the build version and exit")
	meshPath    = flag.String("mesh", "", "path to a .mesh file (see internal/raycast/meshio)")
	preset      = flag.String("preset", "VLP16", "sensor preset: VLP16, OS1-32, or OS1-64 (see internal/raycast.Presets)")
	configPath  = flag.String("config", "", "optional JSON file overriding the preset's SensorConfig fields")
	poseX       = flag.Float64("pose-x", 0, "sensor pose position x")
	poseY       = flag.Float64("pose-y", 1, "sensor pose position y")
	poseZ       = flag.Float64("pose-z", 0, "sensor pose position z")
	outPath     = flag.String("out", "scan.json", "path to write the scan's hit buffer as JSON")
	dbPath      = flag.String("db", "", "optional SQLite file to persist the mesh and scan run to (see internal/store)")
	histPath    = flag.String("range-hist", "", "optional PNG path for a range histogram of the scan (see internal/raycastviz)")
	scatterPath = flag.String("scatter", "", "optional HTML path for a top-down scatter of the scan (see internal/raycastviz)")
	listen      = flag.String("listen", "", "optional HTTP listen address for a status page; empty disables it")
)

func loadConfig() (raycast.SensorConfig, error) {
	cfg, ok := raycast.Presets[*preset]
	if !ok {
		return raycast.SensorConfig{}, fmt.Errorf("unknown preset %q (want one of VLP16, OS1-32, OS1-64)", *preset)
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return raycast.SensorConfig{}, fmt.Errorf("failed to read config %s: %w", *configPath, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return raycast.SensorConfig{}, fmt.Errorf("failed to parse config %s: %w", *configPath, err)
		}
	}
	return cfg, nil
}

func loadMesh() (meshio.Mesh, error) {
	if *meshPath == "" {
		return meshio.Mesh{}, fmt.Errorf("-mesh is required")
	}
	return meshio.Load(fsutil.OSFileSystem{}, *meshPath)
}

func serveStatus(sim *raycast.Simulator) {
	if *listen == "" {
		return
	}
	http.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "raycastsim: last_hit_count=%d config=%+v\n", sim.LastHitCount(), sim.Config())
	})
	monitoring.Logf("raycastsim: status page at http://%s/status", *listen)
	go func() {
		if err := http.ListenAndServe(*listen, nil); err != nil {
			monitoring.Logf("raycastsim: status server exited: %v", err)
		}
	}()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mesh, err := loadMesh()
	if err != nil {
		return err
	}

	sim, err := raycast.NewSimulator(cfg, rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	if err := sim.LoadGeometry(mesh.Vertices, mesh.Indices); err != nil {
		return fmt.Errorf("failed to load geometry: %w", err)
	}

	serveStatus(sim)

	pose := raycast.NewPose(raycast.Vec3{X: *poseX, Y: *poseY, Z: *poseZ})
	hits := sim.Scan(pose)
	monitoring.Logf("raycastsim: scan produced %d hits", sim.LastHitCount())

	if err := writeHits(hits); err != nil {
		return err
	}

	if *dbPath != "" {
		if err := persist(sim, mesh, pose, hits); err != nil {
			return err
		}
	}

	if *histPath != "" {
		if err := raycastviz.SaveRangeHistogram(hits, pose.Position, "raycastsim scan", *histPath); err != nil {
			return fmt.Errorf("failed to write range histogram: %w", err)
		}
	}

	if *scatterPath != "" {
		f, err := os.Create(*scatterPath)
		if err != nil {
			return fmt.Errorf("failed to create scatter file: %w", err)
		}
		defer f.Close()
		if err := raycastviz.WriteScanScatter(f, hits, pose.Position, "raycastsim scan"); err != nil {
			return fmt.Errorf("failed to write scatter: %w", err)
		}
	}

	return nil
}

func writeHits(hits []float32) error {
	data, err := json.Marshal(hits)
	if err != nil {
		return fmt.Errorf("failed to marshal hit buffer: %w", err)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outPath, err)
	}
	return nil
}

func persist(sim *raycast.Simulator, mesh meshio.Mesh, pose raycast.Pose, hits []float32) error {
	s, err := store.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	now := time.Now().UnixNano()
	meshID, err := s.SaveMesh(*meshPath, mesh.Vertices, mesh.Indices, now)
	if err != nil {
		return fmt.Errorf("failed to save mesh: %w", err)
	}
	if err := s.SaveScanRun(sim.LastScanID(), meshID, sim.Config(), pose, hits, now); err != nil {
		return fmt.Errorf("failed to save scan run: %w", err)
	}
	return nil
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("raycastsim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if err := run(); err != nil {
		log.Fatalf("raycastsim: %v", err)
	}
}
