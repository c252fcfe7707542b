package pipeline

import (
	"fmt"

	"github.com/matzehuels/treeviz/pkg/bst"
	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/render"
)

// Render produces the requested artifact formats from a layout and its tree.
// The tree is needed for the DOT path, which works from structure rather
// than coordinates.
func Render(l layout.Layout, t *bst.Tree, formats []string, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(l, t, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l layout.Layout, t *bst.Tree, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		if opts.Nodelink {
			return render.RenderDOTSVG(render.ToDOT(t, dotOptions(opts)))
		}
		return renderSVG(l, opts), nil
	case FormatPNG:
		if opts.Nodelink {
			return render.RenderDOTPNG(render.ToDOT(t, dotOptions(opts)), opts.Scale)
		}
		return render.ToPNG(renderSVG(l, opts), opts.Scale)
	case FormatPDF:
		if opts.Nodelink {
			svg, err := render.RenderDOTSVG(render.ToDOT(t, dotOptions(opts)))
			if err != nil {
				return nil, err
			}
			return render.ToPDF(svg)
		}
		return render.ToPDF(renderSVG(l, opts))
	case FormatJSON:
		return layout.MarshalLayout(l)
	case FormatDOT:
		return []byte(render.ToDOT(t, dotOptions(opts))), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

func renderSVG(l layout.Layout, opts Options) []byte {
	style, err := render.StyleByName(opts.Style)
	if err != nil {
		style = render.StyleLight
	}
	svgOpts := []render.SVGOption{render.WithStyle(style)}
	if !opts.NoConflicts && len(l.Conflicts) > 0 {
		svgOpts = append(svgOpts, render.WithConflicts(l.Conflicts))
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	return render.SVG(l, svgOpts...)
}

func dotOptions(opts Options) render.DOTOptions {
	return render.DOTOptions{Detailed: opts.Detailed}
}
