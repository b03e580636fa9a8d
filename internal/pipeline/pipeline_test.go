package pipeline

// Notes:
// - Projector tests use real files in t.TempDir(); the inliner has no I/O seam
//   and the files are tiny.
// - Parallel projection is checked for order preservation, not speed.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/deer-in-haze/go-csvgallery/internal/assets"
	"github.com/deer-in-haze/go-csvgallery/internal/dataset"
	"github.com/deer-in-haze/go-csvgallery/internal/inline"
)

func testInliner(t *testing.T) *inline.Inliner {
	t.Helper()

	inl, err := inline.NewDefault(inline.DefaultWidth)
	if err != nil {
		t.Fatalf("NewDefault() error = %v", err)
	}
	return inl
}

func touch(t *testing.T, dir, rel string, data string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func birdsDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Columns: []string{"IMAGE_PATH", "LATIN_NAME"},
		Rows: []dataset.Row{
			{"IMAGE_PATH": "birds/a.jpg", "LATIN_NAME": "Corvus corax"},
			{"IMAGE_PATH": "birds/missing.jpg", "LATIN_NAME": "Passer domesticus"},
		},
	}
}

// ---------------------------------------------------------------------------
// Projector
// ---------------------------------------------------------------------------

func TestProjector_Project(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, base, "birds/a.jpg", "jpeg")

	p := NewProjector(testInliner(t), 1, nil)
	view, err := p.Project(context.Background(), birdsDataset(), base, DefaultColumns, DefaultHeaders)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if len(view.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(view.Rows))
	}

	first, second := view.Rows[0], view.Rows[1]
	if first.Name != "Corvus corax" || !strings.Contains(string(first.Image), "data:image/jpeg;base64,") {
		t.Errorf("row 1 = %+v, want embedded image for Corvus corax", first)
	}
	if first.Missing {
		t.Error("row 1 marked missing")
	}
	if second.Name != "Passer domesticus" || !strings.Contains(string(second.Image), "Missing: missing.jpg") {
		t.Errorf("row 2 = %+v, want placeholder for Passer domesticus", second)
	}
	if !reflect.DeepEqual(view.Missing(), []string{"birds/missing.jpg"}) {
		t.Errorf("Missing() = %v", view.Missing())
	}
	if view.Headers != DefaultHeaders {
		t.Errorf("Headers = %+v", view.Headers)
	}
}

func TestProjector_LeadingSlash(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, base, "birds/a.jpg", "jpeg")

	ds := &dataset.Dataset{
		Columns: []string{"IMAGE_PATH", "LATIN_NAME"},
		Rows: []dataset.Row{
			{"IMAGE_PATH": "/birds/a.jpg", "LATIN_NAME": "x"},
			{"IMAGE_PATH": "birds/a.jpg", "LATIN_NAME": "x"},
		},
	}

	view, err := NewProjector(testInliner(t), 1, nil).Project(context.Background(), ds, base, DefaultColumns, DefaultHeaders)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if view.Rows[0].Resolved != view.Rows[1].Resolved {
		t.Errorf("resolved %q != %q", view.Rows[0].Resolved, view.Rows[1].Resolved)
	}
	if view.Rows[0].Image != view.Rows[1].Image {
		t.Error("slashed and plain references rendered differently")
	}
}

func TestProjector_ParallelPreservesOrder(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	ds := &dataset.Dataset{Columns: []string{"IMAGE_PATH", "LATIN_NAME"}}
	for i := 0; i < 40; i++ {
		ref := fmt.Sprintf("img/%02d.png", i)
		if i%3 != 0 {
			touch(t, base, ref, fmt.Sprintf("payload-%d", i))
		}
		ds.Rows = append(ds.Rows, dataset.Row{"IMAGE_PATH": ref, "LATIN_NAME": fmt.Sprintf("name-%02d", i)})
	}

	seq, err := NewProjector(testInliner(t), 1, nil).Project(context.Background(), ds, base, DefaultColumns, DefaultHeaders)
	if err != nil {
		t.Fatalf("sequential Project() error = %v", err)
	}
	par, err := NewProjector(testInliner(t), 8, nil).Project(context.Background(), ds, base, DefaultColumns, DefaultHeaders)
	if err != nil {
		t.Fatalf("parallel Project() error = %v", err)
	}

	if !reflect.DeepEqual(seq, par) {
		t.Error("parallel view differs from sequential view")
	}
	for i, r := range par.Rows {
		if want := fmt.Sprintf("name-%02d", i); r.Name != want {
			t.Fatalf("row %d name = %q, want %q", i, r.Name, want)
		}
	}
}

func TestProjector_SchemaError(t *testing.T) {
	t.Parallel()

	ds := &dataset.Dataset{Columns: []string{"PATH"}}

	_, err := NewProjector(testInliner(t), 1, nil).Project(context.Background(), ds, t.TempDir(), DefaultColumns, DefaultHeaders)
	if !errors.Is(err, dataset.ErrMissingColumns) {
		t.Errorf("Project() error = %v, want ErrMissingColumns", err)
	}
}

func TestProjector_ReadErrorPropagates(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}

	base := t.TempDir()
	touch(t, base, "locked.png", "png")
	if err := os.Chmod(filepath.Join(base, "locked.png"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	ds := &dataset.Dataset{
		Columns: []string{"IMAGE_PATH", "LATIN_NAME"},
		Rows:    []dataset.Row{{"IMAGE_PATH": "locked.png", "LATIN_NAME": "x"}},
	}

	for _, workers := range []int{1, 4} {
		_, err := NewProjector(testInliner(t), workers, nil).Project(context.Background(), ds, base, DefaultColumns, DefaultHeaders)
		if !errors.Is(err, inline.ErrImageRead) {
			t.Errorf("workers=%d: Project() error = %v, want ErrImageRead", workers, err)
		}
	}
}

func TestProjector_DegenerateReferences(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, base, "birds/a.jpg", "jpeg")

	tests := []struct {
		name            string
		ref             string
		wantPlaceholder string
	}{
		{name: "empty cell", ref: "", wantPlaceholder: "Missing: </span>"},
		{name: "whitespace cell", ref: "   ", wantPlaceholder: "Missing:    </span>"},
		{name: "directory", ref: "birds", wantPlaceholder: "Missing: birds</span>"},
		{name: "directory with slash", ref: "/birds/", wantPlaceholder: "Missing: birds</span>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ds := &dataset.Dataset{
				Columns: []string{"IMAGE_PATH", "LATIN_NAME"},
				Rows: []dataset.Row{
					{"IMAGE_PATH": "birds/a.jpg", "LATIN_NAME": "Corvus corax"},
					{"IMAGE_PATH": tt.ref, "LATIN_NAME": "Passer domesticus"},
				},
			}

			for _, workers := range []int{1, 4} {
				view, err := NewProjector(testInliner(t), workers, nil).Project(context.Background(), ds, base, DefaultColumns, DefaultHeaders)
				if err != nil {
					t.Fatalf("workers=%d: Project() error = %v", workers, err)
				}
				row := view.Rows[1]
				if !row.Missing {
					t.Errorf("workers=%d: Missing = false for %q", workers, tt.ref)
				}
				if !strings.Contains(string(row.Image), tt.wantPlaceholder) {
					t.Errorf("workers=%d: Image = %q, want %q", workers, row.Image, tt.wantPlaceholder)
				}
				if !reflect.DeepEqual(view.Missing(), []string{tt.ref}) {
					t.Errorf("workers=%d: View.Missing() = %q, want [%q]", workers, view.Missing(), tt.ref)
				}
			}

			missing, err := MissingImages(ds, base, "IMAGE_PATH")
			if err != nil {
				t.Fatalf("MissingImages() error = %v", err)
			}
			if !reflect.DeepEqual(missing, []string{tt.ref}) {
				t.Errorf("MissingImages() = %q, want [%q]", missing, tt.ref)
			}
		})
	}
}

func TestProjector_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProjector(testInliner(t), 1, nil).Project(ctx, birdsDataset(), t.TempDir(), DefaultColumns, DefaultHeaders)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Project() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// MissingImages
// ---------------------------------------------------------------------------

func TestMissingImages(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, base, "birds/a.jpg", "jpeg")

	got, err := MissingImages(birdsDataset(), base, "IMAGE_PATH")
	if err != nil {
		t.Fatalf("MissingImages() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"birds/missing.jpg"}) {
		t.Errorf("MissingImages() = %v", got)
	}

	if _, err := MissingImages(birdsDataset(), base, "NOPE"); !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Errorf("MissingImages(unknown col) error = %v, want ErrUnknownColumn", err)
	}
}

// ---------------------------------------------------------------------------
// TableRenderer
// ---------------------------------------------------------------------------

func TestTableRenderer_RenderHTML(t *testing.T) {
	t.Parallel()

	view := &View{
		Headers: DefaultHeaders,
		Rows: []ViewRow{
			{Image: `<img src="data:image/png;base64,AA==" width="120">`, Name: "Corvus corax"},
			{Image: `<span style="color:#b00;">Missing: b.jpg</span>`, Name: "Passer <domesticus>"},
		},
	}

	got := (&TableRenderer{}).RenderHTML(view)

	for _, want := range []string{
		`<table class="csvgallery">`,
		`<th align="left">Image</th>`,
		`<th align="left">Latin name</th>`,
		`<td align="left"><img src="data:image/png;base64,AA==" width="120"></td>`,
		`<td align="left">Corvus corax</td>`,
		`<td align="left"><span style="color:#b00;">Missing: b.jpg</span></td>`,
		`<td align="left">Passer &lt;domesticus&gt;</td>`,
		`</table>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderHTML() missing %q in:\n%s", want, got)
		}
	}

	if strings.Index(got, "Corvus") > strings.Index(got, "Passer") {
		t.Error("row order not preserved")
	}
}

func TestTableRenderer_HeaderOnly(t *testing.T) {
	t.Parallel()

	got := (&TableRenderer{}).RenderHTML(&View{Headers: DefaultHeaders})

	if strings.Contains(got, `align="right"`) {
		t.Errorf("RenderHTML() right-aligns an empty table:\n%s", got)
	}
	for _, want := range []string{`<th align="left">Image</th>`, `<th align="left">Latin name</th>`} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderHTML() missing %q in:\n%s", want, got)
		}
	}
}

func TestTableRenderer_CustomClass(t *testing.T) {
	t.Parallel()

	got := (&TableRenderer{CSSClass: "birds"}).RenderHTML(&View{Headers: DefaultHeaders})
	if !strings.Contains(got, `<table class="birds">`) {
		t.Errorf("RenderHTML() = %q, want custom class", got)
	}
}

// ---------------------------------------------------------------------------
// CaptionConverter
// ---------------------------------------------------------------------------

func TestCaptionConverter_ToHTML(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, base, "logo.png", "png")
	c := NewCaptionConverter()

	t.Run("empty caption", func(t *testing.T) {
		t.Parallel()

		got, err := c.ToHTML(context.Background(), "  \n", base)
		if err != nil || got != "" {
			t.Errorf("ToHTML(empty) = %q, %v", got, err)
		}
	})

	t.Run("markdown rendered and wrapped", func(t *testing.T) {
		t.Parallel()

		got, err := c.ToHTML(context.Background(), "# Birds\n\nSeen in **2024**.", base)
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		for _, want := range []string{`<div class="csvgallery-caption">`, "<h1>Birds</h1>", "<strong>2024</strong>"} {
			if !strings.Contains(got, want) {
				t.Errorf("ToHTML() = %q, missing %q", got, want)
			}
		}
	})

	t.Run("relative image inlined", func(t *testing.T) {
		t.Parallel()

		got, err := c.ToHTML(context.Background(), "![logo](logo.png)", base)
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if !strings.Contains(got, "data:image/png;base64,") {
			t.Errorf("ToHTML() = %q, want inlined logo", got)
		}
	})

	t.Run("raw html dropped", func(t *testing.T) {
		t.Parallel()

		got, err := c.ToHTML(context.Background(), "<script>alert(1)</script>", base)
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if strings.Contains(got, "<script>") {
			t.Errorf("ToHTML() = %q, raw HTML passed through", got)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := c.ToHTML(ctx, "text", base); !errors.Is(err, context.Canceled) {
			t.Errorf("ToHTML() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// PageBuilder
// ---------------------------------------------------------------------------

func TestPageBuilder_Build(t *testing.T) {
	t.Parallel()

	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	b, err := NewPageBuilder(ts.Page)
	if err != nil {
		t.Fatalf("NewPageBuilder() error = %v", err)
	}

	got, err := b.Build(context.Background(), "Birds <2024>", "<table></table>", "td{color:red}</style><script>")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Birds &lt;2024&gt;</title>",
		"<table></table>",
		`td{color:red}<\/style><script>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() missing %q in:\n%s", want, got)
		}
	}
	if strings.Count(got, "</style>") != 1 {
		t.Errorf("Build() style block not neutralized:\n%s", got)
	}

	plain, err := b.Build(context.Background(), "", "x", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(plain, "<title>"+DefaultTitle+"</title>") {
		t.Errorf("Build() without title = %q", plain)
	}
	if strings.Contains(plain, "<style>") {
		t.Errorf("Build() without CSS should omit <style>")
	}
}

func TestNewPageBuilder_InvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewPageBuilder("{{.Body"); err == nil {
		t.Error("NewPageBuilder() error = nil, want parse error")
	}
}
