package dataset

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	_ "modernc.org/sqlite"
)

type sqliteLoader struct{}

func (sqliteLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".db") || strings.HasSuffix(name, ".sqlite") || strings.HasSuffix(name, ".sqlite3")
}

func (sqliteLoader) Load(path string, opt LoadOptions) (dataframe.DataFrame, error) {
	query := strings.TrimSpace(opt.Query)
	if query == "" {
		if opt.Table == "" {
			return dataframe.DataFrame{}, fmt.Errorf("sqlite source needs a table or a query")
		}
		query = fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(opt.Table, `"`, `""`))
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	return QueryFrame(db, query, opt.MaxRows)
}

// QueryFrame runs query and converts the result set into a string-typed dataframe.
// NULL values become missing cells.
func QueryFrame(db *sql.DB, query string, maxRows int) (dataframe.DataFrame, error) {
	rows, err := db.Query(query)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	header, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("columns: %w", err)
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("scan row %d: %w", len(out)+1, err)
		}
		rec := make([]string, len(header))
		for i, v := range vals {
			rec[i] = sqlCell(v)
		}
		out = append(out, rec)
		if maxRows > 0 && len(out) >= maxRows {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("iterate rows: %w", err)
	}
	return FromRecords(header, out, maxRows)
}

func sqlCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
