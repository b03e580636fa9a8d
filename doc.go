// Package csvgallery renders image-annotated CSV datasets as self-contained
// HTML tables.
//
// # Quick Start
//
// Point a gallery at a data directory and render a dataset by file name:
//
//	g, err := csvgallery.NewGallery(csvgallery.WithDataDir("data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := g.Render(ctx, csvgallery.Input{Filename: "birds.csv"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.HTML)
//
// The dataset must have an IMAGE_PATH and a LATIN_NAME column. Image paths
// are resolved against the dataset's directory; one leading "/" is ignored,
// so "/birds/a.jpg" and "birds/a.jpg" name the same file. Each image is
// embedded as a base64 data URI, so the output needs no file access to view.
//
// # Pipeline
//
//  1. Resolve the file name under the data directory (ErrDatasetNotFound if absent)
//  2. Load the CSV (dataframe-go) and require the configured columns (*SchemaError)
//  3. List rows whose image file is missing and log a warning
//  4. Inline each image, or a placeholder when the file is missing
//  5. Render the two-column table (go-pretty), an optional Markdown caption
//     (goldmark) and a full HTML page
//
// Missing dataset and missing columns are fatal. Missing images are not:
// they appear in Result.Missing and render as a red "Missing: <name>" label.
// A blank image cell or one naming a directory counts as missing. The
// "missing image files" warning goes to the logger set with WithLogger:
//
//	g, err := csvgallery.NewGallery(csvgallery.WithLogger(zap.NewExample()))
//
// The default logger discards it; Result.Missing is always filled.
//
// # Display
//
// Render is pure: it returns HTML. Show hands the result to a Display:
//
//	_, err = g.Show(ctx, "birds.csv", &csvgallery.WriterDisplay{W: os.Stdout})
//
// Built-in displays write to an io.Writer (WriterDisplay), a file
// (FileDisplay) or a PDF via headless Chrome (PDFDisplay). Wrap any
// function with DisplayFunc.
//
// # Configuration
//
// Options configure the gallery directly; a YAML file can supply the same
// values through LoadConfig and WithConfig:
//
//	cfg, err := csvgallery.LoadConfig("gallery")
//	g, err := csvgallery.NewGallery(
//	    csvgallery.WithConfig(cfg),
//	    csvgallery.WithLogger(logger),
//	    csvgallery.WithWorkers(4),
//	)
//
// # Custom Assets
//
// Styles and templates can be overridden with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── image.html
//	        ├── placeholder.html
//	        └── page.html
//
// # Browser Requirements
//
// Only PDFDisplay needs Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first use. In containers set ROD_NO_SANDBOX=1; use
// ROD_BROWSER_BIN to point at a custom binary.
package csvgallery
