package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/edaloom-cli/internal/config"
	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/eda"
)

// loadFlags select how a dataset file is read.
type loadFlags struct {
	delimiter  string
	maxRows    int
	sheetName  string
	sheetIndex int
	table      string
	query      string
}

func addLoadFlags(c *cobra.Command, l *loadFlags) {
	c.Flags().StringVar(&l.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (default from extension)")
	c.Flags().IntVar(&l.maxRows, "max-rows", 0, "maximum rows to load (0 = config or unlimited)")
	c.Flags().StringVar(&l.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&l.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().StringVar(&l.table, "table", "", "SQLite: table to load")
	c.Flags().StringVar(&l.query, "query", "", "SQLite: SELECT statement to load (wins over --table)")
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func (l loadFlags) options(c *cfgpkg.Global) (dataset.LoadOptions, error) {
	opt := dataset.LoadOptions{
		MaxRows:    l.maxRows,
		SheetName:  l.sheetName,
		SheetIndex: l.sheetIndex,
		Table:      l.table,
		Query:      l.query,
	}
	delim := l.delimiter
	if c != nil {
		if delim == "" {
			delim = c.Delimiter
		}
		if opt.MaxRows == 0 {
			opt.MaxRows = c.MaxRows
		}
	}
	d, err := parseDelimiter(delim)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	return opt, nil
}

func (l loadFlags) load(path string) (dataframe.DataFrame, error) {
	c, _ := currentConfig()
	opt, err := l.options(c)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataset.Load(path, opt)
}

// edaFlags mirror the per-kind summary options.
type edaFlags struct {
	kind      string
	figWidth  float64
	figHeight float64

	// discrete
	order          string
	levels         []string
	maxLevels      int
	flip           string
	labelRotation  float64
	labelFontSize  float64
	noPercent      bool
	noCounts       bool
	includeMissing bool
	seed           int64

	// continuous
	bins      int
	transform string
	kde       bool
	decimal   string
	thousands string

	// continuous and datetime
	lowerTrim int
	upperTrim int

	// datetime
	tsFreq     string
	deltaUnits string
	tsType     string
	trend      string
	dateLabels string
	dateBreaks string
	minBuckets int
	maxBuckets int

	// text
	topNgrams int
	ngrams    bool
	keepPunct bool
	keepStop  bool
	keepCase  bool

	// list
	topEntries int
}

func addEDAFlags(c *cobra.Command, e *edaFlags) {
	f := c.Flags()
	f.StringVarP(&e.kind, "type", "t", "auto", "column type: auto|discrete|continuous|datetime|text|list")
	f.Float64Var(&e.figWidth, "fig-width", 0, "figure width in inches (0 = per-type default)")
	f.Float64Var(&e.figHeight, "fig-height", 0, "figure height in inches per row of panels (0 = per-type default)")

	f.StringVar(&e.order, "order", "auto", "discrete: level order auto|descending|ascending|sorted|random")
	f.StringSliceVar(&e.levels, "levels", nil, "discrete: fixed level domain and order (comma-separated)")
	f.IntVar(&e.maxLevels, "max-levels", 0, "discrete: levels plotted before folding into Other (0 = config)")
	f.StringVar(&e.flip, "flip", "auto", "discrete: horizontal bars auto|true|false")
	f.Float64Var(&e.labelRotation, "label-rotation", 0, "discrete: tick label rotation in degrees")
	f.Float64Var(&e.labelFontSize, "label-font-size", 0, "discrete: bar label font size (0 = inferred)")
	f.BoolVar(&e.noPercent, "no-percent", false, "discrete: plain count axis without percentages")
	f.BoolVar(&e.noCounts, "no-counts", false, "discrete: do not annotate bars with counts")
	f.BoolVar(&e.includeMissing, "include-missing", false, "discrete: plot missing values as their own level")
	f.Int64Var(&e.seed, "seed", 0, "discrete: seed for --order random")

	f.IntVar(&e.bins, "bins", 0, "continuous: histogram bins (0 = automatic)")
	f.StringVar(&e.transform, "transform", "identity", "continuous: identity|log|log_exclude0|sqrt")
	f.BoolVar(&e.kde, "kde", false, "continuous: overlay a kernel density estimate")
	f.StringVar(&e.decimal, "decimal", "", "continuous: decimal separator '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&e.thousands, "thousands", "", "continuous: thousands separator ','|'.'|'space' (auto-detect if omitted)")

	f.IntVar(&e.lowerTrim, "lower-trim", 0, "continuous/datetime: drop this many lowest observations")
	f.IntVar(&e.upperTrim, "upper-trim", 0, "continuous/datetime: drop this many highest observations")

	f.StringVar(&e.tsFreq, "ts-freq", "auto", "datetime: bucket frequency such as 1D, 2W or \"4 months\"")
	f.StringVar(&e.deltaUnits, "delta-units", "auto", "datetime: unit for time deltas")
	f.StringVar(&e.tsType, "ts-type", "line", "datetime: line|point")
	f.StringVar(&e.trend, "trend", "auto", "datetime: trend line auto|none|sma|linear")
	f.StringVar(&e.dateLabels, "date-labels", "", "datetime: strftime pattern for time axis labels")
	f.StringVar(&e.dateBreaks, "date-breaks", "", "datetime: tick interval such as \"1 month\"")
	f.IntVar(&e.minBuckets, "min-buckets", 0, "datetime: fewest buckets auto --ts-freq aims for (0 = config)")
	f.IntVar(&e.maxBuckets, "max-buckets", 0, "datetime: most buckets auto --ts-freq aims for (0 = config)")

	f.IntVar(&e.topNgrams, "top-ngrams", 0, "text: n-grams shown per panel (0 = config)")
	f.BoolVar(&e.ngrams, "ngrams", false, "text: add unigram, bigram and trigram panels")
	f.BoolVar(&e.keepPunct, "keep-punct", false, "text: keep punctuation tokens")
	f.BoolVar(&e.keepStop, "keep-stop", false, "text: keep stop words")
	f.BoolVar(&e.keepCase, "keep-case", false, "text: do not lowercase tokens")

	f.IntVar(&e.topEntries, "top-entries", 0, "list: entries and pairs shown (0 = config)")
}

func parseNumberFormat(decimal, thousands string) (dataset.NumberFormat, error) {
	var nf dataset.NumberFormat
	switch strings.ToLower(strings.TrimSpace(decimal)) {
	case ",", "comma":
		nf.DecimalSeparator = ','
	case ".", "dot":
		nf.DecimalSeparator = '.'
	case "":
	default:
		return nf, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", decimal)
	}
	switch strings.ToLower(strings.TrimSpace(thousands)) {
	case ",":
		nf.ThousandsSeparator = ','
	case ".":
		nf.ThousandsSeparator = '.'
	case "space", " ":
		nf.ThousandsSeparator = ' '
	case "":
	default:
		return nf, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thousands)
	}
	return nf, nil
}

// options builds summary options from config defaults and flags.
func (e edaFlags) options(c *cfgpkg.Global) (eda.Options, error) {
	opt := eda.DefaultOptions()
	kind, err := dataset.ParseKind(e.kind)
	if err != nil {
		return opt, err
	}
	opt.Kind = kind
	if c != nil {
		opt.ApplyFigure(c.FontSize, c.Palette, c.DPI)
		if c.MaxLevels > 0 {
			opt.Discrete.MaxLevels = c.MaxLevels
		}
		if c.TopNgrams > 0 {
			opt.Text.TopNgrams = c.TopNgrams
		}
		if c.TopEntries > 0 {
			opt.List.TopEntries = c.TopEntries
		}
		if c.AutoFreqMinBuckets > 0 {
			opt.Datetime.MinBuckets = c.AutoFreqMinBuckets
		}
		if c.AutoFreqMaxBuckets > 0 {
			opt.Datetime.MaxBuckets = c.AutoFreqMaxBuckets
		}
	}
	width, height := e.figWidth, e.figHeight
	if c != nil {
		if width <= 0 {
			width = c.FigWidth
		}
		if height <= 0 {
			height = c.FigHeight
		}
	}
	for _, f := range []*eda.FigureOptions{
		&opt.Discrete.FigureOptions, &opt.Continuous.FigureOptions, &opt.Datetime.FigureOptions,
		&opt.Text.FigureOptions, &opt.List.FigureOptions,
	} {
		if width > 0 {
			f.FigWidth = width
		}
		if height > 0 {
			f.FigHeight = height
		}
	}

	d := &opt.Discrete
	d.Order = e.order
	d.Levels = e.levels
	if e.maxLevels > 0 {
		d.MaxLevels = e.maxLevels
	}
	switch strings.ToLower(e.flip) {
	case "", "auto":
	default:
		b, err := strconv.ParseBool(e.flip)
		if err != nil {
			return opt, fmt.Errorf("invalid --flip: %s (use auto|true|false)", e.flip)
		}
		d.FlipAxis = &b
	}
	d.LabelRotation = e.labelRotation
	d.LabelFontSize = e.labelFontSize
	d.PercentAxis = !e.noPercent
	d.LabelCounts = !e.noCounts
	d.IncludeMissing = e.includeMissing
	d.Seed = e.seed

	ct := &opt.Continuous
	ct.Bins = e.bins
	ct.Transform = e.transform
	ct.KDE = e.kde
	ct.LowerTrim, ct.UpperTrim = e.lowerTrim, e.upperTrim
	nf, err := parseNumberFormat(e.decimal, e.thousands)
	if err != nil {
		return opt, err
	}
	ct.NumberFormat = nf

	dt := &opt.Datetime
	dt.TSFreq = e.tsFreq
	dt.DeltaUnits = e.deltaUnits
	dt.TSType = e.tsType
	dt.TrendLine = e.trend
	dt.DateLabels = e.dateLabels
	dt.DateBreaks = e.dateBreaks
	dt.LowerTrim, dt.UpperTrim = e.lowerTrim, e.upperTrim
	if e.minBuckets > 0 {
		dt.MinBuckets = e.minBuckets
	}
	if e.maxBuckets > 0 {
		dt.MaxBuckets = e.maxBuckets
	}

	tx := &opt.Text
	if e.topNgrams > 0 {
		tx.TopNgrams = e.topNgrams
	}
	tx.ComputeNgrams = e.ngrams
	tx.RemovePunct = !e.keepPunct
	tx.RemoveStop = !e.keepStop
	tx.LowerCase = !e.keepCase

	if e.topEntries > 0 {
		opt.List.TopEntries = e.topEntries
	}
	return opt, nil
}
