// Package assets provides the CSS styles and HTML fragment templates used to
// render gallery tables.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in defaults)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}/
//	        ├── image.html         # inline <img> for an existing image
//	        ├── placeholder.html   # marker for a missing image
//	        └── page.html          # standalone HTML5 page shell
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
