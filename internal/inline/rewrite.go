package inline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/deer-in-haze/go-csvgallery/internal/fileutil"
)

// RewriteImages replaces relative img[src] references in an HTML fragment
// with data URIs of the files they point to under baseDir.
//
// Left untouched:
//   - URLs (http, https, file, data, protocol-relative) and anchors
//   - absolute paths
//   - paths escaping baseDir
//   - references to files that do not exist
func RewriteImages(fragment, baseDir string) (string, error) {
	if fragment == "" || baseDir == "" {
		return fragment, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var firstErr error
	for _, n := range nodes {
		walk(n, func(el *html.Node) {
			if firstErr != nil || el.DataAtom != atom.Img {
				return
			}
			firstErr = inlineSrc(el, absBase)
		})
	}
	if firstErr != nil {
		return "", firstErr
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func inlineSrc(n *html.Node, baseDir string) error {
	for i, attr := range n.Attr {
		if attr.Key != "src" || !isRelativeRef(attr.Val) {
			continue
		}

		path := filepath.Join(baseDir, filepath.FromSlash(attr.Val))
		if !fileutil.IsUnderDir(path, baseDir) {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		uri, err := DataURI(path)
		if err != nil {
			return err
		}
		n.Attr[i].Val = uri
	}
	return nil
}

// isRelativeRef reports whether ref names a local file relative to the document.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	lower := strings.ToLower(ref)
	for _, scheme := range []string{"http:", "https:", "file:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}
