// Package report implements the report generation engine: it turns a
// ReportRequest into a paginated PDF through a derive → embed → inject →
// render pipeline.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verdanta/verdanta/internal/config"
	"github.com/verdanta/verdanta/internal/model"
	"github.com/verdanta/verdanta/internal/report/embedder"
	"github.com/verdanta/verdanta/internal/report/gas"
	"github.com/verdanta/verdanta/internal/report/metrics"
	"github.com/verdanta/verdanta/internal/report/renderer"
	"github.com/verdanta/verdanta/internal/report/template"
	"github.com/verdanta/verdanta/internal/storage"
	"github.com/verdanta/verdanta/pkg/errors"
	"github.com/verdanta/verdanta/pkg/idgen"
	"github.com/verdanta/verdanta/pkg/logger"
	"github.com/verdanta/verdanta/pkg/telemetry"
)

// DocumentRenderer converts an injected document string into PDF bytes.
// Satisfied by renderer.Renderer; tests substitute a stub.
type DocumentRenderer interface {
	Render(ctx context.Context, html string, reportID string) ([]byte, error)
}

// Engine orchestrates one report generation call end to end. Engines are
// safe for concurrent use; all per-call state lives on the stack.
type Engine struct {
	cfg      config.ReportConfig
	selector *template.Selector
	injector *template.Injector
	embedder *embedder.Embedder
	deriver  *metrics.Deriver
	analyzer *gas.Analyzer
	renderer DocumentRenderer
	metrics  *telemetry.Metrics

	// now is the clock used for report-date tokens; fixed in tests.
	now func() time.Time
}

// New creates an engine from an explicit configuration struct. The object
// store may be nil, in which case every image resolves to the placeholder.
func New(cfg config.ReportConfig, store storage.ObjectStore) *Engine {
	return &Engine{
		cfg:      cfg,
		selector: template.NewSelector(cfg.TemplateDir),
		injector: template.NewInjector(cfg.StrictTokens),
		embedder: embedder.New(store),
		deriver:  metrics.NewDeriver(metrics.DefaultLifecyclePolicy()),
		analyzer: gas.NewAnalyzer(gas.DefaultFactorTable()),
		renderer: renderer.New(cfg.Renderer),
		metrics:  telemetry.GetMetrics(),
		now:      time.Now,
	}
}

// Generate runs the full pipeline and returns the final binary document.
// The caller receives either a valid PDF or a single wrapped error naming
// the fatal stage; image and numeric failures degrade instead of aborting.
func (e *Engine) Generate(ctx context.Context, req *model.ReportRequest, variant string) (*model.RenderedDocument, error) {
	if req == nil {
		return nil, errors.ErrValidation("report request must not be nil")
	}

	reportID := idgen.NewReportID()
	log := logger.WithReport(reportID)
	startTime := time.Now()

	canonical, injected, err := e.buildDocument(ctx, req, variant)
	if err != nil {
		e.metrics.ReportFailures.WithLabelValues(string(errors.CodeOf(err))).Inc()
		return nil, err
	}

	log.Info("Document assembled",
		zap.String("variant", canonical),
		zap.Int("html_size", len(injected)),
	)

	pdf, err := e.renderer.Render(ctx, injected, reportID)
	if err != nil {
		e.metrics.ReportFailures.WithLabelValues(string(errors.CodeOf(err))).Inc()
		return nil, err
	}

	generatedAt := e.now()
	doc := &model.RenderedDocument{
		Data:        pdf,
		Filename:    documentFilename(req.Company.Name, canonical, generatedAt),
		Variant:     canonical,
		GeneratedAt: generatedAt,
	}

	e.metrics.ReportsTotal.WithLabelValues(canonical).Inc()
	log.Info("Report generated",
		zap.String("variant", canonical),
		zap.Int("pdf_size", len(pdf)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return doc, nil
}

// BuildDocument assembles the fully-injected document string without
// rendering it. Two calls with identical input produce byte-identical
// output, apart from the report-date token tied to the engine clock.
func (e *Engine) BuildDocument(ctx context.Context, req *model.ReportRequest, variant string) (string, error) {
	if req == nil {
		return "", errors.ErrValidation("report request must not be nil")
	}
	_, injected, err := e.buildDocument(ctx, req, variant)
	return injected, err
}

// buildDocument runs every pipeline stage up to (but excluding) rendering.
func (e *Engine) buildDocument(ctx context.Context, req *model.ReportRequest, variant string) (canonical, injected string, err error) {
	canonical, err = e.selector.Canonical(variant)
	if err != nil {
		return "", "", err
	}

	derived := e.deriver.Derive(req.LCAResults, req.Products)
	analysis := e.analyzer.Analyze(derived.CarbonPerUnitKg, req.Phase3Analytics)

	body, err := e.selector.Template(canonical)
	if err != nil {
		return "", "", err
	}

	tctx := buildContext(ctx, req, derived, analysis, e.embedder, canonical, e.now())

	injected, err = e.injector.Inject(body, tctx)
	if err != nil {
		return "", "", err
	}
	return canonical, injected, nil
}

// documentFilename builds a sanitized suggested filename for the document.
func documentFilename(companyName, variant string, at time.Time) string {
	base := companyName
	if base == "" {
		base = "report"
	}
	name := fmt.Sprintf("%s-%s-%s", base, variant, at.Format("2006-01-02"))
	return sanitizeFilename(name) + ".pdf"
}

// sanitizeFilename removes unsafe characters from filename
func sanitizeFilename(name string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}
	result := name
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "_")
	}

	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}

	result = strings.Trim(result, "_")

	if len(result) > 100 {
		result = result[:100]
	}

	return result
}
