package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/mikeschinkel/go-sqlparams"
)

// bindCacheSize bounds the number of rewritten statement shapes kept per
// dialect. Builders only produce a few dozen shapes per table.
const bindCacheSize = 512

// Dialect holds everything that differs between the supported stores:
// placeholder syntax and the insert-or-ignore form.
//
// A Dialect caches the rewritten text of every statement shape it binds, so
// it is shared and safe for concurrent use.
type Dialect struct {
	name        string
	numbered    bool
	placeholder sqlparams.FormatParamFunc
	insertVerb  string
	onConflict  string

	mu    sync.Mutex
	cache *lru.Cache
}

var (
	Postgres = newDialect("postgres", true, func(i int) string { return "$" + strconv.Itoa(i) }, "INSERT INTO", " ON CONFLICT DO NOTHING")
	MySQL    = newDialect("mysql", false, func(int) string { return "?" }, "INSERT IGNORE INTO", "")
	SQLite   = newDialect("sqlite", false, func(int) string { return "?" }, "INSERT OR IGNORE INTO", "")
)

func newDialect(name string, numbered bool, placeholder sqlparams.FormatParamFunc, insertVerb, onConflict string) *Dialect {
	return &Dialect{
		name:        name,
		numbered:    numbered,
		placeholder: placeholder,
		insertVerb:  insertVerb,
		onConflict:  onConflict,
		cache:       lru.New(bindCacheSize),
	}
}

// DialectFor returns the dialect registered under a database driver name.
func DialectFor(driver string) (*Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "pgx", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return nil, fmt.Errorf("no SQL dialect for driver %q", driver)
}

func (d *Dialect) Name() string { return d.name }

func (d *Dialect) String() string { return d.name }

// insertIgnore wraps an insert column/value list in the dialect's
// "do nothing on conflict" form.
func (d *Dialect) insertIgnore(table, columns, values string) string {
	return d.insertVerb + " " + table + " (" + columns + ") VALUES (" + values + ")" + d.onConflict
}

// bound is a cached rewrite: driver text plus, for each driver placeholder,
// the index into Statement.Args it reads.
type bound struct {
	text  string
	order []int
}

// Bind rewrites a statement into driver SQL and the matching argument list.
func (d *Dialect) Bind(s Statement) (string, []any, error) {
	b, err := d.rewrite(s.Text)
	if err != nil {
		return "", nil, err
	}

	args := make([]any, len(b.order))
	for i, idx := range b.order {
		if idx >= len(s.Args) {
			return "", nil, fmt.Errorf("placeholder :p%d has no argument (%d args)", idx+1, len(s.Args))
		}
		args[i] = s.Args[idx].Arg()
	}
	return b.text, args, nil
}

func (d *Dialect) rewrite(text string) (bound, error) {
	d.mu.Lock()
	cached, ok := d.cache.Get(text)
	d.mu.Unlock()
	if ok {
		return cached.(bound), nil
	}

	parsed, err := sqlparams.ParseSQL(sqlparams.SQLQuery(text), d.placeholder)
	if err != nil {
		return bound{}, fmt.Errorf("rewriting placeholders: %w", err)
	}

	var names []sqlparams.Selector
	if d.numbered {
		for _, p := range parsed.Parameters() {
			names = append(names, p.Name)
		}
	} else {
		// Positional placeholders need one argument per occurrence.
		tokens := append(sqlparams.QueryTokens(nil), parsed.Occurrences()...)
		sort.Slice(tokens, func(i, j int) bool { return tokens[i].Start < tokens[j].Start })
		for _, t := range tokens {
			names = append(names, t.Name)
		}
	}

	b := bound{text: string(parsed.SQL), order: make([]int, len(names))}
	for i, name := range names {
		n, err := strconv.Atoi(strings.TrimPrefix(string(name), "p"))
		if err != nil || n < 1 {
			return bound{}, fmt.Errorf("unexpected placeholder :%s", name)
		}
		b.order[i] = n - 1
	}

	d.mu.Lock()
	d.cache.Add(text, b)
	d.mu.Unlock()
	return b, nil
}
