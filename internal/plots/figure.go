package plots

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
	"go.uber.org/zap"

	"github.com/KaramelBytes/edaloom-cli/internal/utils"
)

// Panel is anything that can draw itself into a region of a figure.
type Panel interface {
	Draw(c draw.Canvas, dpi float64) error
}

// PlotPanel adapts a gonum plot into a Panel.
type PlotPanel struct {
	Plot *plot.Plot
}

// Draw implements Panel.
func (p PlotPanel) Draw(c draw.Canvas, _ float64) error {
	p.Plot.Draw(c)
	return nil
}

// Cell places a panel on the figure grid.
type Cell struct {
	Row, Col         int
	RowSpan, ColSpan int
	Panel            Panel
}

// Figure is a grid of panels rendered onto one canvas.
type Figure struct {
	Title  string
	Width  vg.Length
	Height vg.Length
	Rows   int
	Cols   int
	Cells  []Cell
	Style  Style
}

// NewFigure creates a figure of the given total size and grid shape.
func NewFigure(width, height vg.Length, rows, cols int, st Style) *Figure {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Figure{Width: width, Height: height, Rows: rows, Cols: cols, Style: st.withDefaults()}
}

// Place puts a panel at row, col spanning the given cells.
func (f *Figure) Place(row, col, rowSpan, colSpan int, p Panel) error {
	if rowSpan < 1 {
		rowSpan = 1
	}
	if colSpan < 1 {
		colSpan = 1
	}
	if row < 0 || col < 0 || row+rowSpan > f.Rows || col+colSpan > f.Cols {
		return fmt.Errorf("panel at (%d,%d) span %dx%d does not fit a %dx%d grid", row, col, rowSpan, colSpan, f.Rows, f.Cols)
	}
	f.Cells = append(f.Cells, Cell{Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan, Panel: p})
	return nil
}

// At returns the panel whose cell starts at row, col.
func (f *Figure) At(row, col int) (Panel, bool) {
	for _, c := range f.Cells {
		if c.Row == row && c.Col == col {
			return c.Panel, true
		}
	}
	return nil, false
}

// Plot returns the gonum plot at row, col when that panel is one.
func (f *Figure) Plot(row, col int) (*plot.Plot, bool) {
	p, ok := f.At(row, col)
	if !ok {
		return nil, false
	}
	pp, ok := p.(PlotPanel)
	if !ok {
		return nil, false
	}
	return pp.Plot, true
}

const cellPadding = vg.Length(6)

// Draw renders every panel into c.
func (f *Figure) Draw(c draw.Canvas) error {
	dpi := float64(f.Style.DPI)
	area := c
	if f.Title != "" {
		ts := draw.TextStyle{
			Color:   color.Black,
			Font:    plot.DefaultFont,
			Handler: plot.DefaultTextHandler,
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
		}
		ts.Font.Size = vg.Points(f.Style.FontSize * 1.1)
		ts.Font.Variant = "Sans"
		top := c.Max.Y - cellPadding
		c.FillText(ts, vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: top}, f.Title)
		area.Max.Y = top - ts.Height(f.Title) - cellPadding
	}
	cw := (area.Max.X - area.Min.X) / vg.Length(f.Cols)
	ch := (area.Max.Y - area.Min.Y) / vg.Length(f.Rows)
	for _, cell := range f.Cells {
		sub := draw.Canvas{
			Canvas: area.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{
					X: area.Min.X + vg.Length(cell.Col)*cw + cellPadding,
					Y: area.Max.Y - vg.Length(cell.Row+cell.RowSpan)*ch + cellPadding,
				},
				Max: vg.Point{
					X: area.Min.X + vg.Length(cell.Col+cell.ColSpan)*cw - cellPadding,
					Y: area.Max.Y - vg.Length(cell.Row)*ch - cellPadding,
				},
			},
		}
		if err := cell.Panel.Draw(sub, dpi); err != nil {
			return fmt.Errorf("draw panel (%d,%d): %w", cell.Row, cell.Col, err)
		}
	}
	return nil
}

// WriteTo encodes the figure as png or svg.
func (f *Figure) WriteTo(w io.Writer, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png", "":
		img := vgimg.NewWith(
			vgimg.UseWH(f.Width, f.Height),
			vgimg.UseDPI(f.Style.DPI),
			vgimg.UseBackgroundColor(color.White),
		)
		if err := f.Draw(draw.New(img)); err != nil {
			return err
		}
		_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
		return err
	case "svg":
		img := vgsvg.New(f.Width, f.Height)
		dc := draw.New(img)
		dc.SetColor(color.White)
		dc.Fill(dc.Rectangle.Path())
		if err := f.Draw(dc); err != nil {
			return err
		}
		_, err := img.WriteTo(w)
		return err
	default:
		return fmt.Errorf("unsupported figure format %q (use png|svg)", format)
	}
}

// PNG returns the figure encoded as PNG.
func (f *Figure) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.WriteTo(&buf, "png"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the figure to path, choosing the encoding from its extension.
func (f *Figure) Save(path string) error {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
		path += ext
	}
	var buf bytes.Buffer
	if err := f.WriteTo(&buf, ext); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	zap.L().Debug("figure saved", zap.String("path", path), zap.Int("bytes", buf.Len()))
	return nil
}

// TempPNG writes the figure to a new temporary PNG file and returns its path.
func (f *Figure) TempPNG(prefix string) (string, error) {
	tmp, err := os.CreateTemp("", utils.SafeFileName(prefix)+"-*.png")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if err := f.WriteTo(tmp, "png"); err != nil {
		return "", err
	}
	return tmp.Name(), nil
}
