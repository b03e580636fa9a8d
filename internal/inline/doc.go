// Package inline turns image files into self-contained markup: base64 data
// URIs wrapped in <img> tags, or a placeholder when the file is absent.
//
// MIME types come from a static extension table so results do not depend on
// the host's MIME database. Unknown extensions are tagged DefaultMIMEType.
package inline
