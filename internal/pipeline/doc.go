// Package pipeline implements the dataset-to-HTML stages of the gallery:
//   - projection of dataset rows into an (image markup, display name) view
//   - HTML table rendering via go-pretty
//   - Markdown caption conversion via Goldmark
//   - page assembly with CSS injection
//
// Loading, schema validation and display are handled by the root csvgallery
// package, which composes these stages behind small interfaces so each one
// can be replaced in tests.
package pipeline
