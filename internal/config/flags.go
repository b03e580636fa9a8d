package config

import (
	flag "github.com/spf13/pflag"
)

// RegisterFlags binds cfg fields to fs so an embedding program can override
// loaded values from its command line. Flag defaults are the current cfg values.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Data.Dir, "data-dir", cfg.Data.Dir, "directory dataset names are resolved under")
	fs.StringVar(&cfg.Data.Delimiter, "delimiter", cfg.Data.Delimiter, "CSV field delimiter (single character)")

	fs.StringVar(&cfg.Columns.Image, "image-column", cfg.Columns.Image, "column holding image paths")
	fs.StringVar(&cfg.Columns.Name, "name-column", cfg.Columns.Name, "column holding display names")

	fs.IntVarP(&cfg.Table.ImageWidth, "width", "w", cfg.Table.ImageWidth, "image width in pixels")
	fs.StringVar(&cfg.Table.ImageHeader, "image-header", cfg.Table.ImageHeader, "header of the image column")
	fs.StringVar(&cfg.Table.NameHeader, "name-header", cfg.Table.NameHeader, "header of the name column")
	fs.StringVar(&cfg.Table.CSSClass, "css-class", cfg.Table.CSSClass, "CSS class of the rendered table")

	fs.StringVar(&cfg.Assets.BasePath, "asset-path", cfg.Assets.BasePath, "directory with custom styles and templates")
	fs.StringVar(&cfg.Assets.Style, "style", cfg.Assets.Style, "style name")
	fs.StringVar(&cfg.Assets.TemplateSet, "template", cfg.Assets.TemplateSet, "template set name")

	fs.IntVar(&cfg.Render.Workers, "workers", cfg.Render.Workers, "parallel image readers (0 or 1 = sequential)")
	fs.StringVar(&cfg.Render.Timeout, "timeout", cfg.Render.Timeout, "render timeout (e.g. 30s)")
	fs.StringVarP(&cfg.Render.Title, "title", "t", cfg.Render.Title, "page title")
}
