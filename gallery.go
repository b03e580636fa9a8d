package csvgallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/deer-in-haze/go-csvgallery/internal/assets"
	"github.com/deer-in-haze/go-csvgallery/internal/dataset"
	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
	"github.com/deer-in-haze/go-csvgallery/internal/hints"
	"github.com/deer-in-haze/go-csvgallery/internal/inline"
	"github.com/deer-in-haze/go-csvgallery/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ datasetLoader            = csvLoader{}
	_ pipeline.TableProjector  = (*pipeline.Projector)(nil)
	_ pipeline.HTMLRenderer    = (*pipeline.TableRenderer)(nil)
	_ pipeline.CaptionRenderer = (*pipeline.CaptionConverter)(nil)
	_ pipeline.PageRenderer    = (*pipeline.PageBuilder)(nil)
	_ Display                  = (*PDFDisplay)(nil)
	_ pdfRenderer              = (*rodRenderer)(nil)
)

// datasetLoader abstracts dataset loading so tests can observe whether a
// load was attempted.
type datasetLoader interface {
	Load(ctx context.Context, path string, opts dataset.LoadOptions) (*dataset.Dataset, error)
}

// csvLoader loads datasets from CSV files.
type csvLoader struct{}

func (csvLoader) Load(ctx context.Context, path string, opts dataset.LoadOptions) (*dataset.Dataset, error) {
	return dataset.Load(ctx, path, opts)
}

// Gallery renders image-annotated CSV datasets as HTML tables.
// Create with NewGallery and call Render or Show. A Gallery holds no
// per-render state and is safe for concurrent use.
type Gallery struct {
	cfg       galleryConfig
	logger    *zap.Logger
	loader    datasetLoader
	projector pipeline.TableProjector
	renderer  pipeline.HTMLRenderer
	caption   pipeline.CaptionRenderer
	page      pipeline.PageRenderer
	css       string
}

// NewGallery creates a Gallery. Options are applied in order.
// Returns an error for invalid option values or when assets cannot be loaded.
func NewGallery(opts ...Option) (*Gallery, error) {
	g := &Gallery{
		cfg:    defaultGalleryConfig(),
		loader: csvLoader{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	if err := g.loadStyle(loader); err != nil {
		return nil, err
	}

	setName := g.cfg.templateSet
	if setName == "" {
		setName = assets.DefaultTemplateSetName
	}
	ts, err := loader.LoadTemplateSet(setName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", setName, err)
	}

	inl, err := inline.New(ts, g.cfg.imageWidth)
	if err != nil {
		return nil, fmt.Errorf("initializing image inliner: %w", err)
	}

	// Stages already set (e.g. by tests) are kept.
	if g.projector == nil {
		g.projector = pipeline.NewProjector(inl, g.cfg.workers, g.logger)
	}
	if g.renderer == nil {
		g.renderer = &pipeline.TableRenderer{CSSClass: g.cfg.cssClass}
	}
	if g.caption == nil {
		g.caption = pipeline.NewCaptionConverter()
	}
	if g.page == nil {
		g.page, err = pipeline.NewPageBuilder(ts.Page)
		if err != nil {
			return nil, fmt.Errorf("initializing page builder: %w", err)
		}
	}

	return g, nil
}

// validate checks option values once all options are applied.
func (g *Gallery) validate() error {
	if g.cfg.fileConfig != nil {
		if err := g.cfg.fileConfig.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if g.cfg.imageWidth < 1 || g.cfg.imageWidth > MaxImageWidth {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidImageWidth, g.cfg.imageWidth, MaxImageWidth)
	}
	if g.cfg.workers < 0 || g.cfg.workers > MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkers, g.cfg.workers, MaxWorkers)
	}
	if strings.TrimSpace(g.cfg.dataDir) == "" {
		return fmt.Errorf("%w: data directory cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// loadStyle resolves the configured style name to CSS content.
func (g *Gallery) loadStyle(loader assets.AssetLoader) error {
	name := g.cfg.style
	if name == "" {
		name = assets.DefaultStyleName
	}

	css, err := loader.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("loading style %q: %w%s", name, err, hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames()))
		}
		return fmt.Errorf("loading style %q: %w", name, err)
	}
	g.css = css
	return nil
}

// DataDir returns the directory dataset filenames are resolved under.
func (g *Gallery) DataDir() string {
	return g.cfg.dataDir
}

// Render loads the named dataset and returns its gallery as HTML.
// A missing dataset or a missing required column is fatal; missing image
// files (blank cells and directories included) are reported in
// Result.Missing and rendered as placeholders. Result.Missing is always
// filled; the matching warning is only visible with WithLogger, since the
// default logger discards everything.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Gallery) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Filename) == "" {
		return nil, ErrEmptyFilename
	}

	if g.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.timeout)
		defer cancel()
	}

	// Resolve before loading so a missing dataset fails without reading rows.
	path, err := fileutil.ResolveExisting(g.cfg.dataDir, input.Filename)
	if err != nil {
		if errors.Is(err, fileutil.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s in %s%s", ErrDatasetNotFound, input.Filename, g.cfg.dataDir, hints.ForDatasetNotFound(g.cfg.dataDir))
		}
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}

	g.logger.Info("loading dataset", zap.String("dataset", path), zap.String("data_dir", g.cfg.dataDir))

	ds, err := g.loader.Load(ctx, path, dataset.LoadOptions{Comma: g.cfg.delimiter})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("loading %s: %w", input.Filename, err)
	}

	if err := dataset.RequireColumns(ds.Columns, g.cfg.columns.Required()...); err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, fmt.Errorf("%w%s", err, hints.ForMissingColumns(schemaErr.Missing, schemaErr.Present))
		}
		return nil, err
	}

	baseDir := input.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	missing, err := pipeline.MissingImages(ds, baseDir, g.cfg.columns.Image)
	if err != nil {
		return nil, fmt.Errorf("checking images: %w", err)
	}
	if len(missing) > 0 {
		g.logger.Warn("missing image files",
			zap.String("dataset", path),
			zap.Strings("missing", missing),
		)
	}

	view, err := g.projector.Project(ctx, ds, baseDir, g.cfg.columns, g.cfg.headers)
	if err != nil {
		return nil, fmt.Errorf("building table: %w", err)
	}

	fragment := g.renderer.RenderHTML(view)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	captionHTML, err := g.caption.ToHTML(ctx, input.Caption, baseDir)
	if err != nil {
		return nil, fmt.Errorf("rendering caption: %w", err)
	}
	if captionHTML != "" {
		fragment = captionHTML + "\n" + fragment
	}

	title := input.Title
	if title == "" {
		title = g.cfg.title
	}
	if title == "" {
		title = pipeline.DefaultTitle
	}

	page, err := g.page.Build(ctx, title, fragment, g.css)
	if err != nil {
		return nil, fmt.Errorf("building page: %w", err)
	}

	g.logger.Debug("rendered dataset",
		zap.String("dataset", path),
		zap.Int("rows", ds.Len()),
		zap.Int("missing", len(missing)),
	)

	return &Result{
		HTML:        fragment,
		Page:        page,
		Missing:     missing,
		Rows:        ds.Len(),
		DatasetPath: path,
	}, nil
}

// Show renders the named dataset and hands the result to d.
// The result is returned even when d fails, so callers keep the HTML.
// Use Render directly for captions or titles.
func (g *Gallery) Show(ctx context.Context, filename string, d Display) (*Result, error) {
	res, err := g.Render(ctx, Input{Filename: filename})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return res, nil
	}
	if err := d.Display(ctx, res); err != nil {
		return res, fmt.Errorf("displaying %s: %w", filename, err)
	}
	return res, nil
}
