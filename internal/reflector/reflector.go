// Package reflector implements the Table Reflector (component C5): reads
// the embedded engine's sqlite_master-style catalog, parses each table's
// creation SQL via the Classifier, and produces a column-typed Table
// Descriptor.
//
// Table identities are assigned fresh on every Reflect call, in sorted
// table-name order; callers must not assume an identity is stable across
// calls.
package reflector

import (
	"context"
	"sort"
	"strings"

	"github.com/panoplyio/dbsrv/internal/dberr"
	"github.com/panoplyio/dbsrv/internal/enginesql"
	"github.com/panoplyio/dbsrv/internal/observer"
	"github.com/panoplyio/dbsrv/internal/sqlclass"
	"github.com/panoplyio/dbsrv/internal/value"
)

// tableConstraintKeywords are leading tokens of a column-list entry that
// name a table-level constraint rather than a column definition.
var tableConstraintKeywords = map[string]bool{
	"PRIMARY":    true,
	"FOREIGN":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"CONSTRAINT": true,
}

// Reflect lists every table known to the engine and its column-typed
// descriptor, ordered by table name. Indexes, triggers, and views are not
// exposed.
func Reflect(ctx context.Context, engine *enginesql.Engine) ([]observer.TableDescriptor, error) {
	catalog, err := engine.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]observer.TableDescriptor, 0, len(catalog))
	for i, entry := range catalog {
		cols, err := columnsFromCreateStatement(entry.Name, entry.SQL)
		if err != nil {
			return nil, err
		}
		out = append(out, observer.TableDescriptor{
			Identity: i + 1,
			Name:     entry.Name,
			Columns:  cols,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	// re-number identities after sorting: identity is response-local and
	// starts at 1, independent of catalog order.
	for i := range out {
		out[i].Identity = i + 1
	}
	return out, nil
}

func columnsFromCreateStatement(tableName, sql string) ([]value.ColumnSpec, error) {
	stmts, err := sqlclass.Parse(sql)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 || stmts[0].Class != sqlclass.DDL {
		return nil, dberr.InvalidArgument("table %q: creation SQL is not exactly one CREATE TABLE statement", tableName)
	}

	canonical := stmts[0].SQL
	upper := strings.ToUpper(canonical)
	if !strings.HasPrefix(upper, "CREATE TABLE") {
		return nil, dberr.InvalidArgument("table %q: creation SQL is not a CREATE TABLE statement", tableName)
	}

	open := strings.IndexByte(canonical, '(')
	shut := strings.LastIndexByte(canonical, ')')
	if open < 0 || shut < 0 || shut < open {
		return nil, dberr.InvalidArgument("table %q: creation SQL has no column list", tableName)
	}

	if !strings.Contains(upper[:open], tableNameUpper(tableName)) {
		return nil, dberr.InvalidArgument("table %q: creation SQL names a different table", tableName)
	}

	entries := splitTopLevel(canonical[open+1 : shut])

	var cols []value.ColumnSpec
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tokens := strings.Fields(entry)
		if len(tokens) == 0 {
			continue
		}
		if tableConstraintKeywords[strings.ToUpper(tokens[0])] {
			continue
		}

		name := strings.Trim(tokens[0], `"`+"`"+`[]`)
		typeStr := "TEXT"
		if len(tokens) > 1 {
			typeStr = strings.ToUpper(tokens[1])
			// strip a type modifier like VARCHAR(255) down to its base name
			if idx := strings.IndexByte(typeStr, '('); idx >= 0 {
				typeStr = typeStr[:idx]
			}
		}

		prim, err := value.ParsePrimitive(typeStr)
		if err != nil {
			return nil, dberr.InvalidArgument("table %q column %q: %s", tableName, name, err)
		}

		cols = append(cols, value.ColumnSpec{
			Ordinal:   len(cols),
			Name:      name,
			Primitive: prim,
		})
	}

	return cols, nil
}

func tableNameUpper(name string) string {
	return strings.ToUpper(strings.Trim(name, `"`+"`"+`[]`))
}

// splitTopLevel splits s on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			cur.WriteRune(r)
		case ',':
			if depth == 0 {
				out = append(out, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	out = append(out, cur.String())
	return out
}
