package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/podplatform/backend/internal/domain/production"
	"go.uber.org/zap"
)

const defaultRenderTimeout = 30 * time.Second

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// RemoteURL is the DevTools websocket of a running Chrome. When empty
	// a headless Chrome is launched on first use.
	RemoteURL string
	// NoSandbox is required when Chrome runs as root inside a container
	NoSandbox bool
	// Timeout bounds one render
	Timeout time.Duration
	Logger  *zap.Logger
}

// ChromedpSheetRenderer prints production sheets with headless Chrome
type ChromedpSheetRenderer struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpSheetRenderer creates the renderer. The browser itself starts
// lazily with the first render.
func NewChromedpSheetRenderer(config ChromedpConfig) *ChromedpSheetRenderer {
	if config.Timeout <= 0 {
		config.Timeout = defaultRenderTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpSheetRenderer{config: config, logger: logger}
	if config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), r.allocatorOptions()...)
	}
	return r
}

func (r *ChromedpSheetRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render prints sheet to a single-page PDF sized to the sheet
func (r *ChromedpSheetRenderer) Render(ctx context.Context, sheet production.Sheet) ([]byte, error) {
	html, err := SheetHTML(sheet)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// the browser context outlives ctx, so cancel it when ctx ends
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	params := printParams(sheet)
	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("render timed out after %v: %w", r.config.Timeout, err)
		}
		return nil, fmt.Errorf("chromedp: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("chromedp returned an empty PDF")
	}

	r.logger.Info("Production sheet rendered",
		zap.String("reference", sheet.Reference),
		zap.String("sku", sheet.SKU),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}

// printParams sizes the paper to the sheet. Chrome takes inches.
func printParams(sheet production.Sheet) *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(cmToInches(sheet.PageWidth)).
		WithPaperHeight(cmToInches(sheet.PageHeight)).
		WithMarginTop(0).
		WithMarginRight(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithPageRanges("1")
}

// Close shuts the browser down
func (r *ChromedpSheetRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

var _ production.SheetRenderer = (*ChromedpSheetRenderer)(nil)
