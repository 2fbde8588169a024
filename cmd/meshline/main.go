// Command meshline converts STL meshes into wireframes of their surface boundaries.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/meshline/pkg/batch"
	"github.com/dd0wney/meshline/pkg/config"
	"github.com/dd0wney/meshline/pkg/logging"
	"github.com/dd0wney/meshline/pkg/mesh"
	"github.com/dd0wney/meshline/pkg/metrics"
)

const usage = `Usage: meshline [flags] <input.stl|directory>

Writes one JSON wireframe per mesh ({"vertices": [...], "lines": [...]}).
A directory is searched recursively for *.stl files.

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("meshline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		configFile  = fs.String("config", "", "YAML configuration file")
		outDir      = fs.String("out", "", "Output directory (default: next to each input)")
		workers     = fs.Int("workers", 0, "Concurrent conversions")
		digits      = fs.Int("digits", 0, "Decimal digits used to merge vertices")
		threshold   = fs.Float64("threshold", 0, "Coplanarity tolerance: normals merge when dot > 1 - threshold")
		dxfOut      = fs.Bool("dxf", false, "Also write a DXF drawing per mesh")
		compress    = fs.Bool("compress", false, "Snappy-compress JSON output (.json.sz)")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus metrics to this file when done")
		logLevel    = fs.String("log-level", "", "Log level: debug, info, warn, error")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	cfg, err := config.Read(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "meshline: %v\n", err)
		return 2
	}

	// explicitly set flags win over file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutputDir = *outDir
		case "workers":
			cfg.Workers = *workers
		case "digits":
			cfg.QuantizeDigits = *digits
		case "threshold":
			cfg.AngleThreshold = *threshold
		case "dxf":
			cfg.DXF = *dxfOut
		case "compress":
			cfg.Compress = *compress
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "meshline: %v\n", err)
		return 2
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel))
	logging.SetDefaultLogger(logger)

	conv, err := mesh.NewConverter(cfg.MeshOptions(), logger)
	if err != nil {
		logger.Error("invalid converter options", logging.Error(err))
		return 2
	}

	reg := metrics.NewRegistry()
	runner := batch.NewRunner(conv, batch.OptionsFromConfig(cfg), reg, logger)

	report, err := runner.Run(ctx, input)
	if report == nil {
		logger.Error("batch could not start", logging.Path(input), logging.Error(err))
		return 1
	}

	if cfg.MetricsFile != "" {
		if werr := reg.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Error("failed to write metrics", logging.Path(cfg.MetricsFile), logging.Error(werr))
		}
	}

	if err != nil {
		logger.Warn("batch interrupted", logging.Error(err))
	}
	if rerr := report.Err(); rerr != nil {
		logger.Error("conversion failed",
			logging.RunID(report.RunID),
			logging.Int("failed", report.Failed()),
			logging.Error(rerr))
		return 1
	}
	return 0
}
