// Package batch converts many STL files concurrently, isolating failures per file.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dd0wney/meshline/pkg/config"
	"github.com/dd0wney/meshline/pkg/export"
	"github.com/dd0wney/meshline/pkg/logging"
	"github.com/dd0wney/meshline/pkg/mesh"
	"github.com/dd0wney/meshline/pkg/metrics"
	"github.com/dd0wney/meshline/pkg/parallel"
	"github.com/dd0wney/meshline/pkg/stl"
)

// Output extensions
const (
	JSONExtension           = ".json"
	CompressedJSONExtension = ".json.sz"
	DXFExtension            = ".dxf"
)

// Options control where and how results are written.
type Options struct {
	Workers   int
	OutputDir string
	Compress  bool
	DXF       bool
}

// OptionsFromConfig extracts the batch settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Workers:   cfg.Workers,
		OutputDir: cfg.OutputDir,
		Compress:  cfg.Compress,
		DXF:       cfg.DXF,
	}
}

// Runner converts mesh files with a shared converter.
type Runner struct {
	converter *mesh.Converter
	opts      Options
	metrics   *metrics.Registry
	logger    logging.Logger
}

// NewRunner creates a runner. A nil registry gets a private one and a nil logger discards output.
func NewRunner(conv *mesh.Converter, opts Options, reg *metrics.Registry, logger logging.Logger) *Runner {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{
		converter: conv,
		opts:      opts,
		metrics:   reg,
		logger:    logger.With(logging.Component("batch")),
	}
}

// Run converts input, a single STL file or a directory of them.
// A failing file is recorded in the report and does not stop the others.
// When ctx is cancelled no new files are started; the report is still returned
// together with the context error.
func (r *Runner) Run(ctx context.Context, input string) (*Report, error) {
	started := time.Now()
	report := &Report{RunID: uuid.New().String(), Input: input}
	log := r.logger.With(logging.RunID(report.RunID))

	files, base, err := Discover(input)
	if err != nil {
		return nil, err
	}
	report.Files = make([]FileResult, len(files))

	pool, err := parallel.NewWorkerPool(r.opts.Workers, log)
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(log, "batch finished", logging.Path(input), logging.Count(len(files)))
	opts := r.converter.Options()
	log.Info("batch started", logging.Path(input), logging.Count(len(files)),
		logging.Int("workers", pool.Workers()),
		logging.Int("quantize_digits", opts.QuantizeDigits),
		logging.Float64("angle_threshold", opts.AngleThreshold))

	submitted := 0
	for i, file := range files {
		i, file := i, file // per-iteration copies for the task closure (go 1.21 loop semantics)
		if err := pool.SubmitContext(ctx, func() {
			report.Files[i] = r.convertFile(ctx, log, base, file)
		}); err != nil {
			break
		}
		submitted++
	}
	pool.Close()

	for i := submitted; i < len(files); i++ {
		report.Files[i] = FileResult{Input: files[i], Skipped: true, Err: ctx.Err()}
	}

	report.Duration = timer.Elapsed()
	r.metrics.RecordBatch(report.Succeeded(), report.Failed(), report.Skipped(), report.Duration)
	r.metrics.UpdateSystemMetrics(started)

	summary := []logging.Field{
		logging.Int("succeeded", report.Succeeded()),
		logging.Int("failed", report.Failed()),
		logging.Int("skipped", report.Skipped()),
	}
	if report.Failed() > 0 || report.Skipped() > 0 {
		timer.EndWithLevel(logging.WarnLevel, "batch finished with failures", summary...)
	} else {
		timer.End(summary...)
	}

	return report, ctx.Err()
}

// convertFile runs one file through load, convert and export. It never panics.
func (r *Runner) convertFile(ctx context.Context, log logging.Logger, base, path string) (fr FileResult) {
	fr = FileResult{Input: path}
	if err := ctx.Err(); err != nil {
		fr.Skipped = true
		fr.Err = err
		return fr
	}

	r.metrics.BatchFilesInFlight.Inc()
	defer r.metrics.BatchFilesInFlight.Dec()

	log = log.With(logging.Mesh(path))
	timer := logging.StartTimer(log, "convert mesh")

	defer func() {
		if p := recover(); p != nil {
			fr.Err = fmt.Errorf("panic converting %s: %v", path, p)
		}
		if fr.Err != nil {
			fr.Duration = timer.EndError(fr.Err)
			r.metrics.RecordFailure(fr.Duration)
		}
	}()

	in, err := stl.ReadFile(path)
	if err != nil {
		fr.Err = err
		return fr
	}

	res, err := r.converter.Convert(in)
	if err != nil {
		fr.Err = err
		return fr
	}

	fr.JSONOutput, fr.DXFOutput, err = r.writeOutputs(base, path, res)
	if err != nil {
		fr.Err = err
		return fr
	}

	fr.Vertices = len(res.Vertices)
	fr.Lines = len(res.Lines)
	fr.Groups = len(res.Groups)
	fr.Diagnostics = res.Diagnostics
	fr.Duration = timer.End(
		logging.Triangles(len(res.Triangles)),
		logging.Vertices(fr.Vertices),
		logging.Groups(fr.Groups),
		logging.Lines(fr.Lines),
		logging.Int("degenerate_normals", len(res.Diagnostics.DegenerateNormals)),
		logging.Int("non_manifold_edges", len(res.Diagnostics.NonManifoldEdges)),
	)
	r.metrics.RecordConversion(res, fr.Duration)
	return fr
}

func (r *Runner) writeOutputs(base, path string, res *mesh.Result) (string, string, error) {
	ext := JSONExtension
	if r.opts.Compress {
		ext = CompressedJSONExtension
	}
	jsonPath, err := OutputPath(base, r.opts.OutputDir, path, ext)
	if err != nil {
		return "", "", err
	}
	if err := writeJSONFile(jsonPath, res, r.opts.Compress); err != nil {
		return "", "", err
	}

	if !r.opts.DXF {
		return jsonPath, "", nil
	}
	dxfPath, err := OutputPath(base, r.opts.OutputDir, path, DXFExtension)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(filepath.Dir(dxfPath), 0o755); err != nil {
		return "", "", errors.Wrap(err, "create output directory")
	}
	if err := export.WriteDXF(dxfPath, res); err != nil {
		return "", "", err
	}
	return jsonPath, dxfPath, nil
}

func writeJSONFile(path string, res *mesh.Result, compress bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	return export.WriteJSON(f, res, compress)
}
