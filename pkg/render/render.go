package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/opts"
)

// Renderer is anything that renders itself as an HTML document.
type Renderer interface {
	Render(w io.Writer) error
}

// Chart is a renderer with the file name it is written to.
type Chart struct {
	Name string
	Renderer
}

// Option configures chart construction.
type Option func(*settings)

type settings struct {
	width      string
	height     string
	assetsHost string
	background string
}

func defaults(opts []Option) settings {
	s := settings{width: "1200px", height: "600px", background: "transparent"}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithSize sets the chart width and height as CSS lengths.
func WithSize(width, height string) Option {
	return func(s *settings) { s.width, s.height = width, height }
}

// WithAssetsHost loads echarts from host instead of the public CDN.
func WithAssetsHost(host string) Option { return func(s *settings) { s.assetsHost = host } }

// WithBackground sets the page background color.
func WithBackground(color string) Option { return func(s *settings) { s.background = color } }

func (s settings) init(title string) opts.Initialization {
	return opts.Initialization{
		PageTitle:       title,
		Width:           s.width,
		Height:          s.height,
		BackgroundColor: s.background,
		AssetsHost:      s.assetsHost,
	}
}

// WriteHTML renders r into dir/name, creating dir if needed.
func WriteHTML(dir, name string, r Renderer) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes every chart into dir and returns the file paths.
func WriteAll(dir string, charts []Chart) ([]string, error) {
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		p, err := WriteHTML(dir, c.Name, c.Renderer)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
