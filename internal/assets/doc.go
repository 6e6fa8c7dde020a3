// Package assets provides the stylesheet and script assets embedded in every
// assembled document.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css    # page content typography (default: page)
//	└── scripts/
//	    └── {name}.js     # preview scale controller (default: scale)
//
// Asset names are validated to prevent path traversal, and FilesystemLoader
// verifies that resolved paths stay within basePath.
package assets
