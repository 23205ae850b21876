package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/kestrel7/stockpile/internal/catalog"
	"github.com/kestrel7/stockpile/internal/config"
	"github.com/kestrel7/stockpile/internal/session"
	"github.com/kestrel7/stockpile/internal/sheet"
	"github.com/kestrel7/stockpile/internal/spiritx"
	"github.com/kestrel7/stockpile/internal/trace"
	"github.com/kestrel7/stockpile/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath  string
	SessionPath string // empty uses default ~/.config/stockpile/session.toml
	APIBase     string // overrides the configured API base URL
}

type runtime struct {
	cfg     config.Config
	client  *spiritx.Client
	store   *catalog.Store
	sess    session.Session
	hasSess bool
}

func buildRuntime(opts Options) (runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return runtime{}, fmt.Errorf("load config: %w", err)
	}

	base := cfg.APIBaseURL
	if opts.APIBase != "" {
		base = opts.APIBase
	}
	client, err := spiritx.NewClient(base)
	if err != nil {
		return runtime{}, fmt.Errorf("init catalog client: %w", err)
	}

	sess, ok := session.Load(opts.SessionPath, time.Now())
	if ok {
		client.SetToken(sess.Token)
	}

	return runtime{
		cfg:     cfg,
		client:  client,
		store:   catalog.NewStore(),
		sess:    sess,
		hasSess: ok,
	}, nil
}

// Run boots the TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := buildRuntime(opts)
	if err != nil {
		return err
	}

	logger, debugPath, err := trace.Open()
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}

	return ui.Run(ui.Options{
		Context:     ctx,
		Gateway:     rt.client,
		Store:       rt.store,
		Config:      rt.cfg,
		Session:     rt.sess,
		HasSession:  rt.hasSess,
		SessionPath: opts.SessionPath,
		Logger:      logger,
		DebugPath:   debugPath,
	})
}

// RunExport fetches the catalog and writes it to a spreadsheet without
// starting the TUI. An empty outPath picks a timestamped name.
func RunExport(ctx context.Context, opts Options, outPath string) error {
	rt, err := buildRuntime(opts)
	if err != nil {
		return err
	}

	products, err := rt.client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}

	if outPath == "" {
		outPath = sheet.ExportFileName(time.Now())
	}
	if err := sheet.Export(products, outPath); err != nil {
		return err
	}

	color.Green("Exported %d products to %s", len(products), outPath)
	return nil
}

// RunImport creates a product per valid spreadsheet row without starting the
// TUI. It needs a stored session from a previous sign-in.
func RunImport(ctx context.Context, opts Options, path string) error {
	rt, err := buildRuntime(opts)
	if err != nil {
		return err
	}
	if !rt.hasSess {
		return fmt.Errorf("no session: sign in from the TUI first")
	}

	summary, err := sheet.Import(ctx, rt.client, rt.store, path, rt.cfg.CategoryID)
	for _, skipped := range summary.Skipped {
		color.Yellow("row %d skipped: %s", skipped.Row, skipped.Reason)
	}
	if err != nil {
		color.Red("import stopped: %v", err)
		return err
	}

	color.Green("Imported %d products", summary.Created)
	return nil
}
