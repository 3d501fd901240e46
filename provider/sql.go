package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/filter"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/sqlfilter"
	"github.com/haystack-go/hscore/value"
	jsoncodec "github.com/haystack-go/hscore/codec/json"
)

// SQLProvider is a reference Provider backed by a *sql.DB, targeting
// the {name}/{name}_meta_datas/{name}_ts table triple: one row per
// versioned entity (entity JSON, customer_id, start_datetime,
// end_datetime), a key/value metadata table, and a time-series table.
type SQLProvider struct {
	Unimplemented
	db      *sql.DB
	name    string
	dialect sqlfilter.Dialect
}

// NewSQLProvider wraps db, targeting the table triple named after name
// ("entities", "entities_meta_datas", "entities_ts" by default).
func NewSQLProvider(db *sql.DB, name string, dialect sqlfilter.Dialect) *SQLProvider {
	return &SQLProvider{db: db, name: name, dialect: dialect}
}

func (p *SQLProvider) entityTable() string { return p.name }
func (p *SQLProvider) metaTable() string   { return p.name + "_meta_datas" }
func (p *SQLProvider) tsTable() string     { return p.name + "_ts" }

func (p *SQLProvider) About(ctx context.Context) (*grid.Grid, error) {
	row := value.NewDict()
	row.Set("whoami", value.Str(p.name))
	row.Set("haystackVersion", value.Str("3.0"))
	b := grid.New("3.0")
	b.AddColumn("whoami", value.NewDict())
	b.AddColumn("haystackVersion", value.NewDict())
	b.AppendRow(row)
	return b.Build(), nil
}

// Read compiles filterExpr through sqlfilter.Translate and runs it
// against the entity table. A non-nil Limitation on the translation is
// accepted as a superset match: rows are re-verified in-process with
// the filter evaluator before being returned.
func (p *SQLProvider) Read(ctx context.Context, filterExpr string, limit int, selectCols []string, version *time.Time) (*grid.Grid, error) {
	ast, err := filter.Parse(filterExpr)
	if err != nil {
		return nil, errors.NewDomainError(errors.CategoryFilter, err, "invalid filter expression")
	}

	where, args, limitation, err := sqlfilter.Translate(ast, p.dialect)
	if err != nil {
		return nil, errors.Wrap(err, "translate filter to SQL")
	}

	query := "SELECT id, entity, customer_id, start_datetime, end_datetime FROM " +
		p.dialect.QuoteIdent(p.entityTable()) + " WHERE " + where
	if version != nil {
		query += " AND start_datetime <= ?"
		args = append(args, version.Format(time.RFC3339))
	}
	if limit > 0 && limitation == nil {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query entities")
	}
	defer rows.Close()

	var dicts []value.Dict
	for rows.Next() {
		var id, entityJSON string
		var customerID, startDT, endDT sql.NullString
		if err := rows.Scan(&id, &entityJSON, &customerID, &startDT, &endDT); err != nil {
			return nil, errors.Wrap(err, "scan entity row")
		}
		row, err := decodeEntityJSON(entityJSON)
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate entity rows")
	}

	if limitation != nil {
		dicts = reverifyInProcess(ast, dicts)
		if limit > 0 && len(dicts) > limit {
			dicts = dicts[:limit]
		}
	}

	return buildGridFromDicts(dicts, selectCols)
}

// reverifyInProcess re-runs the filter evaluator over rows already
// fetched from a superset-matching SQL query, the caller-side
// verification the documented SQLite limitation requires.
func reverifyInProcess(ast *filter.AST, rows []value.Dict) []value.Dict {
	g := &grid.Grid{Meta: value.NewDict(), Rows: rows}
	return filter.Eval(ast, g)
}

func buildGridFromDicts(dicts []value.Dict, selectCols []string) (*grid.Grid, error) {
	colNames := selectCols
	if len(colNames) == 0 {
		seen := make(map[string]bool)
		for _, row := range dicts {
			for _, k := range row.Keys() {
				if !seen[k] {
					seen[k] = true
					colNames = append(colNames, k)
				}
			}
		}
	}

	b := grid.New("3.0")
	for _, name := range colNames {
		b.AddColumn(name, value.NewDict())
	}
	for _, row := range dicts {
		if len(selectCols) == 0 {
			b.AppendRow(row)
			continue
		}
		projected := value.NewDict()
		for _, name := range selectCols {
			if v, ok := row.Get(name); ok {
				projected.Set(name, v)
			}
		}
		b.AppendRow(projected)
	}
	return b.Build(), nil
}

// decodeEntityJSON decodes the sigil-tagged {tag: sigilValue, ...}
// document stored in the entity column back into a Dict, reusing the
// JSON codec's scalar sigil scheme rather than a bespoke one.
func decodeEntityJSON(raw string) (value.Dict, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return value.Dict{}, errors.Wrap(err, "decode entity JSON")
	}
	return jsoncodec.DecodeCellMap(m)
}

func (p *SQLProvider) HisRead(ctx context.Context, ids []value.Ref, start, end time.Time) (*grid.Grid, error) {
	if len(ids) == 0 {
		return grid.New("3.0").AddColumn("id", value.NewDict()).AddColumn("ts", value.NewDict()).AddColumn("val", value.NewDict()).Build(), nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id.Name)
	}
	args = append(args, start.Format(time.RFC3339), end.Format(time.RFC3339))

	query := "SELECT id, ts, value FROM " + p.dialect.QuoteIdent(p.tsTable()) +
		" WHERE id IN (" + joinPlaceholders(placeholders) + ") AND ts >= ? AND ts <= ? ORDER BY ts ASC"
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query time series")
	}
	defer rows.Close()

	b := grid.New("3.0")
	b.AddColumn("id", value.NewDict())
	b.AddColumn("ts", value.NewDict())
	b.AddColumn("val", value.NewDict())
	for rows.Next() {
		var id, ts, val string
		if err := rows.Scan(&id, &ts, &val); err != nil {
			return nil, errors.Wrap(err, "scan time series row")
		}
		row := value.NewDict()
		row.Set("id", value.Ref{Name: id})
		row.Set("ts", value.Str(ts))
		row.Set("val", value.Str(val))
		b.AppendRow(row)
	}
	return b.Build(), nil
}

func joinPlaceholders(ps []string) string {
	out := ""
	for i, p := range ps {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
