package csvgallery

import (
	"time"

	"go.uber.org/zap"

	"github.com/deer-in-haze/go-csvgallery/internal/config"
	"github.com/deer-in-haze/go-csvgallery/internal/pipeline"
)

// Default column names and headers.
const (
	DefaultImageColumn = "IMAGE_PATH"
	DefaultNameColumn  = "LATIN_NAME"
	DefaultImageHeader = "Image"
	DefaultNameHeader  = "Latin name"
	DefaultDataDir     = config.DefaultDataDir
	DefaultImageWidth  = 120
)

// Bounds for numeric options.
const (
	MaxImageWidth = config.MaxImageWidth
	MaxWorkers    = config.MaxWorkers
)

// Input contains per-render parameters.
type Input struct {
	Filename string // Dataset file name relative to the data directory (required)
	Caption  string // Markdown shown above the table (optional)
	Title    string // Page title (optional)
	BaseDir  string // Directory image paths resolve under (optional, default: dataset's directory)
}

// Result holds the output of a render.
type Result struct {
	HTML        string   // Caption plus table fragment
	Page        string   // Complete HTML document wrapping HTML
	Missing     []string // Image references whose file does not exist, in row order
	Rows        int      // Number of dataset rows rendered
	DatasetPath string   // Absolute path of the loaded dataset
}

// Option configures a Gallery.
type Option func(*Gallery)

// galleryConfig holds internal configuration for Gallery.
type galleryConfig struct {
	dataDir     string
	imageWidth  int
	columns     pipeline.Columns
	headers     pipeline.Headers
	workers     int
	delimiter   rune
	cssClass    string
	style       string
	assetPath   string
	templateSet string
	timeout     time.Duration
	title       string
	fileConfig  *config.Config
}

func defaultGalleryConfig() galleryConfig {
	return galleryConfig{
		dataDir:    DefaultDataDir,
		imageWidth: DefaultImageWidth,
		columns:    pipeline.Columns{Image: DefaultImageColumn, Name: DefaultNameColumn},
		headers:    pipeline.Headers{Image: DefaultImageHeader, Name: DefaultNameHeader},
		delimiter:  ',',
	}
}

// WithDataDir sets the directory dataset filenames are resolved under.
// Defaults to "data" relative to the working directory.
func WithDataDir(dir string) Option {
	return func(g *Gallery) {
		g.cfg.dataDir = dir
	}
}

// WithImageWidth sets the display width of inlined images in pixels.
func WithImageWidth(px int) Option {
	return func(g *Gallery) {
		g.cfg.imageWidth = px
	}
}

// WithColumns sets the dataset columns holding image paths and display names.
// Empty values keep the defaults.
func WithColumns(image, name string) Option {
	return func(g *Gallery) {
		if image != "" {
			g.cfg.columns.Image = image
		}
		if name != "" {
			g.cfg.columns.Name = name
		}
	}
}

// WithHeaders sets the table headers. Empty values keep the defaults.
func WithHeaders(image, name string) Option {
	return func(g *Gallery) {
		if image != "" {
			g.cfg.headers.Image = image
		}
		if name != "" {
			g.cfg.headers.Name = name
		}
	}
}

// WithWorkers sets how many images are read concurrently.
// 0 and 1 render sequentially.
func WithWorkers(n int) Option {
	return func(g *Gallery) {
		g.cfg.workers = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gallery) {
		g.logger = logger
	}
}

// WithStyle selects a CSS style by name for the page output.
func WithStyle(name string) Option {
	return func(g *Gallery) {
		g.cfg.style = name
	}
}

// WithTemplateSet selects the template set used for image, placeholder and page markup.
func WithTemplateSet(name string) Option {
	return func(g *Gallery) {
		g.cfg.templateSet = name
	}
}

// WithAssetPath sets a directory of custom styles and templates.
// Assets missing there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(g *Gallery) {
		g.cfg.assetPath = path
	}
}

// WithTimeout bounds each Render call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("csvgallery: WithTimeout duration must be positive")
	}
	return func(g *Gallery) {
		g.cfg.timeout = d
	}
}

// WithConfig applies a loaded configuration. Options after it override its values.
// The configuration is validated by NewGallery.
func WithConfig(cfg *Config) Option {
	return func(g *Gallery) {
		if cfg == nil {
			return
		}
		g.cfg.fileConfig = cfg
		if cfg.Data.Dir != "" {
			g.cfg.dataDir = cfg.Data.Dir
		}
		g.cfg.delimiter = cfg.DelimiterRune()
		if cfg.Table.ImageWidth != 0 {
			g.cfg.imageWidth = cfg.Table.ImageWidth
		}
		WithColumns(cfg.Columns.Image, cfg.Columns.Name)(g)
		WithHeaders(cfg.Table.ImageHeader, cfg.Table.NameHeader)(g)
		g.cfg.cssClass = cfg.Table.CSSClass
		g.cfg.assetPath = cfg.Assets.BasePath
		g.cfg.style = cfg.Assets.Style
		g.cfg.templateSet = cfg.Assets.TemplateSet
		g.cfg.workers = cfg.Render.Workers
		g.cfg.title = cfg.Render.Title
		// Invalid timeouts are reported by NewGallery through Validate.
		if d, err := cfg.TimeoutDuration(); err == nil {
			g.cfg.timeout = d
		}
	}
}
