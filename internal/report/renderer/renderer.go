// Package renderer converts a fully-injected document string into a
// paginated PDF using headless Chrome. Each render owns its own Chrome
// process; a semaphore in front of the launcher caps concurrency.
package renderer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/verdanta/verdanta/internal/config"
	"github.com/verdanta/verdanta/pkg/errors"
	"github.com/verdanta/verdanta/pkg/logger"
	"github.com/verdanta/verdanta/pkg/telemetry"
)

// Options contains page geometry for PDF export.
type Options struct {
	// Paper dimensions in inches (A4: 8.27 x 11.69)
	PaperWidth  float64
	PaperHeight float64

	// Margins in inches
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// Print background colors and images
	PrintBackground bool

	// Scale of the webpage rendering (1.0 = 100%)
	Scale float64
}

// DefaultOptions returns the fixed A4 export geometry: 20mm top and bottom
// margins, 10mm side margins, backgrounds printed.
func DefaultOptions() Options {
	return Options{
		PaperWidth:  8.27,
		PaperHeight: 11.69,

		MarginTop:    0.79, // 20mm
		MarginBottom: 0.79, // 20mm
		MarginLeft:   0.39, // 10mm
		MarginRight:  0.39, // 10mm

		PrintBackground: true,
		Scale:           1.0,
	}
}

// headerTemplate is intentionally empty: the document carries no header
// furniture, only the footer band.
const headerTemplate = `<span></span>`

// footerTemplate is the footer band: a two-tone brand strip with a
// left-aligned label and a right-aligned page counter. Chrome substitutes
// the pageNumber/totalPages classes during export.
const footerTemplate = `
	<div style="width:100%; font-size:9px; font-family:system-ui,-apple-system,sans-serif; color:#4B5563; padding:0 40px;">
		<div style="height:3px; background:linear-gradient(to right, #14532D 50%, #65A30D 50%); margin-bottom:4px;"></div>
		<div style="display:flex; justify-content:space-between; align-items:center;">
			<span style="color:#14532D; font-weight:600;">Verdanta Sustainability Report</span>
			<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span>
		</div>
	</div>
`

// Renderer drives headless Chrome through a resource-scoped lifecycle.
type Renderer struct {
	cfg     config.RendererConfig
	options Options
	sem     *semaphore.Weighted
	metrics *telemetry.Metrics
}

// New creates a renderer with default A4 options and a permit pool sized
// by cfg.MaxConcurrent.
func New(cfg config.RendererConfig) *Renderer {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Renderer{
		cfg:     cfg,
		options: DefaultOptions(),
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		metrics: telemetry.GetMetrics(),
	}
}

// Render loads the injected document into a fresh Chrome instance, waits for
// layout and font settlement, and exports the paginated PDF. The Chrome
// process is torn down exactly once on every path.
func (r *Renderer) Render(ctx context.Context, html string, reportID string) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererLaunch, "renderer pool acquisition canceled", err)
	}
	defer r.sem.Release(1)

	r.metrics.ActiveRenders.Inc()
	defer r.metrics.ActiveRenders.Dec()

	startTime := time.Now()
	log := logger.WithReport(reportID)
	log.Info("Starting PDF render",
		zap.Int("html_size", len(html)),
		zap.Duration("load_timeout", r.cfg.LoadTimeout),
		zap.Duration("export_timeout", r.cfg.ExportTimeout),
	)

	// Write document to a temporary file (avoids data URL size limits)
	tmpFile, err := os.CreateTemp("", "verdanta-pdf-*.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererLaunch, "failed to create temp file", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(html); err != nil {
		tmpFile.Close()
		return nil, errors.Wrap(errors.ErrCodeRendererLaunch, "failed to write temp file", err)
	}
	tmpFile.Close()

	// Sandboxing is disabled deliberately for container compatibility.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	chromePath := r.cfg.ChromePath
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	opts = append(opts, chromedp.WSURLReadTimeout(60*time.Second))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Debug(fmt.Sprintf("chromedp: "+format, args...))
		}),
	)
	defer browserCancel()

	// Load phase: navigate, wait for DOM readiness and font settlement.
	// Export with unsettled web fonts produces incorrect line wrapping.
	loadCtx, loadCancel := context.WithTimeout(browserCtx, r.cfg.LoadTimeout)
	defer loadCancel()

	fileURL := "file://" + tmpPath
	var fontsSettled bool
	err = chromedp.Run(loadCtx,
		chromedp.Navigate(fileURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsSettled,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
	)
	if err != nil {
		code := errors.ErrCodeRendererLoad
		if loadCtx.Err() == context.DeadlineExceeded {
			code = errors.ErrCodeRendererTimeout
		}
		log.Error("Document load failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, errors.Wrap(code, "failed to load document", err)
	}

	// Export phase: bounded independently of the load phase.
	exportCtx, exportCancel := context.WithTimeout(browserCtx, r.cfg.ExportTimeout)
	defer exportCancel()

	var pdfData []byte
	err = chromedp.Run(exportCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPaperWidth(r.options.PaperWidth).
				WithPaperHeight(r.options.PaperHeight).
				WithMarginTop(r.options.MarginTop).
				WithMarginBottom(r.options.MarginBottom).
				WithMarginLeft(r.options.MarginLeft).
				WithMarginRight(r.options.MarginRight).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(headerTemplate).
				WithFooterTemplate(footerTemplate).
				WithPrintBackground(r.options.PrintBackground).
				WithScale(r.options.Scale).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		code := errors.ErrCodeRendererExport
		if exportCtx.Err() == context.DeadlineExceeded {
			code = errors.ErrCodeRendererTimeout
		}
		log.Error("PDF export failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, errors.Wrap(code, "failed to export PDF", err)
	}

	r.metrics.RenderDuration.Observe(time.Since(startTime).Seconds())
	r.metrics.PDFSizeBytes.Observe(float64(len(pdfData)))

	log.Info("PDF render completed",
		zap.Int("pdf_size_bytes", len(pdfData)),
		zap.String("pdf_size_human", formatBytes(len(pdfData))),
		zap.Duration("duration", time.Since(startTime)),
	)

	return pdfData, nil
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := int64(bytes) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
