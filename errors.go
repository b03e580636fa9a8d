package csvgallery

import (
	"errors"
	"fmt"

	"github.com/deer-in-haze/go-csvgallery/internal/assets"
	"github.com/deer-in-haze/go-csvgallery/internal/config"
	"github.com/deer-in-haze/go-csvgallery/internal/dataset"
	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
	"github.com/deer-in-haze/go-csvgallery/internal/inline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyFilename     = errors.New("dataset filename cannot be empty")
	ErrInvalidImageWidth = errors.New("invalid image width")
	ErrInvalidWorkers    = errors.New("invalid worker count")

	// ErrDatasetNotFound also matches fileutil.ErrNotFound.
	ErrDatasetNotFound = fmt.Errorf("dataset %w", fileutil.ErrNotFound)
	ErrDatasetLoad     = dataset.ErrLoad
	ErrMissingColumns  = dataset.ErrMissingColumns
	ErrImageRead       = inline.ErrImageRead

	// PDF display errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateSetNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Configuration errors.
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// SchemaError reports required columns absent from a dataset.
type SchemaError = dataset.SchemaError
