package dataset

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseNumber_Locales(t *testing.T) {
	cases := []struct {
		in   string
		nf   NumberFormat
		want float64
	}{
		{"3.5", NumberFormat{}, 3.5},
		{"1.234,5", NumberFormat{}, 1234.5},
		{"1,234.5", NumberFormat{}, 1234.5},
		{"1 000", NumberFormat{}, 1000},
		{"12%", NumberFormat{}, 12},
		{"2,5", NumberFormat{DecimalSeparator: ','}, 2.5},
		{"1.000", NumberFormat{DecimalSeparator: ',', ThousandsSeparator: '.'}, 1000},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in, c.nf)
		if !ok || got != c.want {
			t.Fatalf("ParseNumber(%q) = %v, %v; want %v", c.in, got, ok, c.want)
		}
	}
	for _, bad := range []string{"abc", "inf", "+Inf", "-Infinity", "NaN"} {
		if _, ok := ParseNumber(bad, NumberFormat{}); ok {
			t.Fatalf("expected %q to fail", bad)
		}
	}
	if _, ok := ParseNumber("inf", NumberFormat{DecimalSeparator: ','}); ok {
		t.Fatalf("expected inf to fail with an explicit format")
	}
}

func TestParseList(t *testing.T) {
	cases := map[string][]string{
		`["x", "y"]`: {"x", "y"},
		"a|b;c":      {"a", "b;c"},
		"(a, b)":     {"a", "b"},
		"[]":         {},
		"solo":       {"solo"},
	}
	for in, want := range cases {
		got := ParseList(in)
		if strings.Join(got, "/") != strings.Join(want, "/") || len(got) != len(want) {
			t.Fatalf("ParseList(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTime(t *testing.T) {
	ts, ok := ParseTime("2024-03-01 10:30")
	if !ok || ts.Hour() != 10 || ts.Minute() != 30 {
		t.Fatalf("unexpected parse: %v %v", ts, ok)
	}
	if _, ok := ParseTime("yesterday"); ok {
		t.Fatalf("expected failure")
	}
}

func TestReadCSVAndColumnOf(t *testing.T) {
	in := "a;b\n1;x\nNA;y\n3;\n"
	df, err := ReadCSV(strings.NewReader(in), ';', 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if df.Nrow() != 3 || df.Ncol() != 2 {
		t.Fatalf("unexpected shape %dx%d", df.Nrow(), df.Ncol())
	}
	a, err := ColumnOf(df, "a")
	if err != nil {
		t.Fatalf("column a: %v", err)
	}
	if a.Len() != 3 || a.Missing() != 1 || !a.IsMissing(1) {
		t.Fatalf("unexpected missing tally: len=%d missing=%d", a.Len(), a.Missing())
	}
	nums, err := a.Numbers(NumberFormat{})
	if err != nil || len(nums) != 2 || nums[1] != 3 {
		t.Fatalf("numbers = %v, %v", nums, err)
	}
	b, _ := ColumnOf(df, "b")
	if _, err := b.Numbers(NumberFormat{}); err == nil {
		t.Fatalf("expected coercion error")
	} else {
		var ce *CoercionError
		if !errors.As(err, &ce) || ce.Column != "b" {
			t.Fatalf("unexpected error type: %v", err)
		}
	}

	_, err = ColumnOf(df, "zzz")
	var nf *ColumnNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestFromRecords_MaxRowsAndPadding(t *testing.T) {
	df, err := FromRecords([]string{"a", "b"}, [][]string{{"1"}, {"2", "y"}, {"3", "z"}}, 2)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if df.Nrow() != 2 {
		t.Fatalf("rows = %d, want 2", df.Nrow())
	}
	b, _ := ColumnOf(df, "b")
	if b.Missing() != 1 {
		t.Fatalf("short row should be padded as missing")
	}
	if _, err := FromRecords(nil, nil, 0); err == nil {
		t.Fatalf("expected error for empty header")
	}
}

func TestInfer(t *testing.T) {
	many := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, strings.Repeat("1", i+1))
	}
	cases := []struct {
		cells []string
		want  Kind
	}{
		{[]string{"a", "b", "a", ""}, Discrete},
		{[]string{"1", "2", "1"}, Discrete},
		{many, Continuous},
		{[]string{"2024-01-01", "2024-02-01", "NA"}, Datetime},
		{[]string{`["a","b"]`, `["c"]`}, List},
		{[]string{"the quick brown fox jumps over", "a lazy dog sleeps in the sun all day"}, Text},
		{[]string{"", "NA"}, Discrete},
	}
	for i, c := range cases {
		p := Infer(NewColumn("c", c.cells))
		if p.Kind != c.want {
			t.Fatalf("case %d: kind = %s, want %s", i, p.Kind, c.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Categorical"); err != nil || k != Discrete {
		t.Fatalf("ParseKind = %v, %v", k, err)
	}
	if _, err := ParseKind("matrix"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestQueryFrame_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	stmts := []string{
		`CREATE TABLE obs (id INTEGER, label TEXT, score REAL)`,
		`INSERT INTO obs VALUES (1, 'a', 1.5), (2, NULL, 2.5), (3, 'b', NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	df, err := QueryFrame(db, "SELECT * FROM obs ORDER BY id", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if df.Nrow() != 3 || strings.Join(df.Names(), ",") != "id,label,score" {
		t.Fatalf("unexpected frame: %v", df.Names())
	}
	label, _ := ColumnOf(df, "label")
	if label.Missing() != 1 {
		t.Fatalf("NULL should be missing, got %d", label.Missing())
	}
	score, _ := ColumnOf(df, "score")
	nums, err := score.Numbers(NumberFormat{})
	if err != nil || len(nums) != 2 || nums[1] != 2.5 {
		t.Fatalf("score numbers = %v, %v", nums, err)
	}
}

func TestLoad_XLSXAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	f := excelize.NewFile()
	rows := [][]any{{"name", "score"}, {"ann", 1.5}, {"bob", 3}}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	df, err := Load(path, LoadOptions{SheetName: "sheet1"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if df.Nrow() != 2 || strings.Join(df.Names(), ",") != "name,score" {
		t.Fatalf("unexpected frame: %d rows %v", df.Nrow(), df.Names())
	}
	if _, err := Load(path, LoadOptions{SheetName: "nope"}); err == nil {
		t.Fatalf("expected missing sheet error")
	}

	_, err = Load(filepath.Join(dir, "data.parquet"), LoadOptions{})
	var ue *UnsupportedFormatError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}
