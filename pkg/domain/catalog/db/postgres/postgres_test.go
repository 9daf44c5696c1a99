package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/aiod/metacat/pkg/conn/db/postgres/pool"
	"github.com/aiod/metacat/pkg/domain"
	domerr "github.com/aiod/metacat/pkg/domain/errors"
	kpgerr "github.com/aiod/metacat/pkg/domain/errors/dberrors/postgres"
)

type statement struct {
	sql  string
	args []interface{}
}

// scriptedDB stands in for the pool interfaces. Handlers decide each
// statement's outcome; every Exec and QueryRow is recorded in order.
type scriptedDB struct {
	onQueryRow func(sql string, args []interface{}) func(dest ...interface{}) error
	onExec     func(sql string, args []interface{}) error

	statements []statement
	commits    int
	rollbacks  int
}

func newScript() *scriptedDB {
	return &scriptedDB{
		onExec: func(string, []interface{}) error { return nil },
		onQueryRow: func(sql string, _ []interface{}) func(dest ...interface{}) error {
			return func(...interface{}) error {
				return fmt.Errorf("statement is not scripted: %s", sql)
			}
		},
	}
}

func (db *scriptedDB) record(sql string, args []interface{}) {
	db.statements = append(db.statements, statement{sql: sql, args: args})
}

// recorded lists the statements whose SQL contains the fragment.
func (db *scriptedDB) recorded(fragment string) []statement {
	found := []statement{}
	for _, s := range db.statements {
		if strings.Contains(s.sql, fragment) {
			found = append(found, s)
		}
	}
	return found
}

// scanInto writes the given values through Scan's dest pointers.
func scanInto(values ...interface{}) func(dest ...interface{}) error {
	return func(dest ...interface{}) error {
		if len(dest) != len(values) {
			return fmt.Errorf(
				"scan arity does not match: %d dests for %d values",
				len(dest), len(values),
			)
		}
		for nth := range dest {
			switch d := dest[nth].(type) {
			case *int:
				*d = values[nth].(int)
			case *bool:
				*d = values[nth].(bool)
			case *string:
				*d = values[nth].(string)
			default:
				return fmt.Errorf("unsupported scan dest: %T", dest[nth])
			}
		}
		return nil
	}
}

type fakeRow struct {
	scan func(dest ...interface{}) error
}

func (r fakeRow) Scan(dest ...interface{}) error { return r.scan(dest...) }

type fakePool struct{ db *scriptedDB }

func (p fakePool) Begin(context.Context) (kpool.Tx, error)    { return fakeTx{p.db}, nil }
func (p fakePool) Acquire(context.Context) (kpool.Conn, error) { return fakeConn{p.db}, nil }
func (p fakePool) Ping(context.Context) error                  { return nil }

type fakeConn struct{ db *scriptedDB }

func (c fakeConn) Begin(context.Context) (kpool.Tx, error) { return fakeTx{c.db}, nil }
func (c fakeConn) Release()                                {}
func (c fakeConn) Ping(context.Context) error              { return nil }

func (c fakeConn) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	c.db.record(sql, args)
	return nil, c.db.onExec(sql, args)
}

func (c fakeConn) Query(_ context.Context, sql string, _ ...interface{}) (pgx.Rows, error) {
	return nil, fmt.Errorf("query is not scripted: %s", sql)
}

func (c fakeConn) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	c.db.record(sql, args)
	return fakeRow{scan: c.db.onQueryRow(sql, args)}
}

type fakeTx struct{ db *scriptedDB }

func (tx fakeTx) Begin(context.Context) (kpool.Tx, error) { return tx, nil }

func (tx fakeTx) Commit(context.Context) error {
	tx.db.commits += 1
	return nil
}

func (tx fakeTx) Rollback(context.Context) error {
	tx.db.rollbacks += 1
	return nil
}

func (tx fakeTx) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	tx.db.record(sql, args)
	return nil, tx.db.onExec(sql, args)
}

func (tx fakeTx) Query(_ context.Context, sql string, _ ...interface{}) (pgx.Rows, error) {
	return nil, fmt.Errorf("query is not scripted: %s", sql)
}

func (tx fakeTx) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	tx.db.record(sql, args)
	return fakeRow{scan: tx.db.onQueryRow(sql, args)}
}

func TestDatasets_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("when the insert succeeds, it returns the row with its new id", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			if strings.Contains(sql, `insert into "datasets"`) {
				return scanInto(5)
			}
			return func(...interface{}) error {
				return fmt.Errorf("statement is not scripted: %s", sql)
			}
		}

		testee := newDatasets(fakePool{db})
		actual, err := testee.Register(ctx, domain.Dataset{
			Name: "Higgs", Platform: domain.OpenML, PlatformSpecificIdentifier: "42769",
		})
		if err != nil {
			t.Fatal(err)
		}
		if actual.Id != 5 {
			t.Errorf("unexpected id: %d (expected 5)", actual.Id)
		}
		if db.commits != 1 {
			t.Errorf("commit is called %d times (expected once)", db.commits)
		}
	})

	t.Run("when the unique constraint is violated, it names the existing row's id", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			switch {
			case strings.Contains(sql, `insert into "datasets"`):
				return func(...interface{}) error {
					return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
				}
			case strings.Contains(sql, `select "id" from "datasets"`):
				return scanInto(7)
			default:
				return func(...interface{}) error {
					return fmt.Errorf("statement is not scripted: %s", sql)
				}
			}
		}

		testee := newDatasets(fakePool{db})
		_, err := testee.Register(ctx, domain.Dataset{
			Name: "Higgs", Platform: domain.OpenML, PlatformSpecificIdentifier: "42769",
		})
		if !errors.Is(err, domerr.ErrConflict) {
			t.Fatalf("error does not unwrap to ErrConflict: %v", err)
		}
		conflict := kpgerr.Conflict{}
		if !errors.As(err, &conflict) {
			t.Fatalf("error is not a Conflict: %v", err)
		}
		if conflict.ExistingId != 7 {
			t.Errorf("unexpected existing id: %d (expected 7)", conflict.ExistingId)
		}

		requeries := db.recorded(`select "id" from "datasets"`)
		if len(requeries) != 1 {
			t.Fatalf("the colliding row is looked up %d times (expected once)", len(requeries))
		}
		args := requeries[0].args
		if len(args) != 2 || args[0] != "openml" || args[1] != "42769" {
			t.Errorf("the colliding row is looked up with wrong key: %+v", args)
		}
		if db.commits != 0 {
			t.Errorf("commit is called on conflict")
		}
	})
}

func TestDatasets_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("when no row matches, it reports Missing", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(string, []interface{}) func(dest ...interface{}) error {
			return func(...interface{}) error { return pgx.ErrNoRows }
		}

		testee := newDatasets(fakePool{db})
		_, err := testee.Get(ctx, 9)
		if !errors.Is(err, domerr.ErrMissing) {
			t.Fatalf("error does not unwrap to ErrMissing: %v", err)
		}
		missing := kpgerr.Missing{}
		if !errors.As(err, &missing) || missing.Table != "datasets" {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDatasets_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("it removes the association rows before the dataset, in one transaction", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			if strings.Contains(sql, `delete from "datasets"`) {
				return scanInto(3)
			}
			return func(...interface{}) error {
				return fmt.Errorf("statement is not scripted: %s", sql)
			}
		}

		testee := newDatasets(fakePool{db})
		if err := testee.Delete(ctx, 3); err != nil {
			t.Fatal(err)
		}

		links := db.recorded(`delete from "dataset_publication"`)
		if len(links) != 1 {
			t.Fatalf("association rows are deleted %d times (expected once)", len(links))
		}
		if len(links[0].args) != 1 || links[0].args[0] != 3 {
			t.Errorf("association delete with wrong key: %+v", links[0].args)
		}

		linkDelete, datasetDelete := -1, -1
		for nth, s := range db.statements {
			if strings.Contains(s.sql, `delete from "dataset_publication"`) {
				linkDelete = nth
			}
			if strings.Contains(s.sql, `delete from "datasets"`) {
				datasetDelete = nth
			}
			if strings.Contains(s.sql, `"publications"`) {
				t.Errorf("publication rows are touched: %s", s.sql)
			}
		}
		if datasetDelete < linkDelete {
			t.Error("the dataset row is deleted before its association rows")
		}
		if db.commits != 1 {
			t.Errorf("commit is called %d times (expected once)", db.commits)
		}
	})

	t.Run("when no row matches, it reports Missing and does not commit", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			if strings.Contains(sql, `delete from "datasets"`) {
				return func(...interface{}) error { return pgx.ErrNoRows }
			}
			return func(...interface{}) error {
				return fmt.Errorf("statement is not scripted: %s", sql)
			}
		}

		testee := newDatasets(fakePool{db})
		err := testee.Delete(ctx, 9)
		if !errors.Is(err, domerr.ErrMissing) {
			t.Fatalf("error does not unwrap to ErrMissing: %v", err)
		}
		if db.commits != 0 {
			t.Errorf("commit is called for a missing row")
		}
		if db.rollbacks == 0 {
			t.Errorf("the transaction is not rolled back")
		}
	})
}

func TestPublications_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("when the unique constraint is violated, it names the existing row's id", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			switch {
			case strings.Contains(sql, `insert into "publications"`):
				return func(...interface{}) error {
					return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
				}
			case strings.Contains(sql, `select "id" from "publications"`):
				return scanInto(11)
			default:
				return func(...interface{}) error {
					return fmt.Errorf("statement is not scripted: %s", sql)
				}
			}
		}

		testee := newPublications(fakePool{db})
		_, err := testee.Register(ctx, domain.Publication{
			Title: "AMLB: an AutoML Benchmark",
			URL:   "https://arxiv.org/abs/2207.12560",
		})
		if !errors.Is(err, domerr.ErrConflict) {
			t.Fatalf("error does not unwrap to ErrConflict: %v", err)
		}
		conflict := kpgerr.Conflict{}
		if !errors.As(err, &conflict) {
			t.Fatalf("error is not a Conflict: %v", err)
		}
		if conflict.ExistingId != 11 {
			t.Errorf("unexpected existing id: %d (expected 11)", conflict.ExistingId)
		}
		if db.commits != 0 {
			t.Errorf("commit is called on conflict")
		}
	})
}

func TestSeedExample(t *testing.T) {
	ctx := context.Background()

	t.Run("it seeds the datasets, the publications and the links between them", func(t *testing.T) {
		db := newScript()
		nextId := 0
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			switch {
			case strings.Contains(sql, "select not exists"):
				return scanInto(true)
			case strings.Contains(sql, `insert into "datasets"`),
				strings.Contains(sql, `insert into "publications"`):
				nextId += 1
				return scanInto(nextId)
			default:
				return func(...interface{}) error {
					return fmt.Errorf("statement is not scripted: %s", sql)
				}
			}
		}

		if err := SeedExample(ctx, fakePool{db}); err != nil {
			t.Fatal(err)
		}

		datasets := db.recorded(`insert into "datasets"`)
		if len(datasets) != 2 ||
			datasets[0].args[0] != "Higgs" || datasets[1].args[0] != "porto-seguro" {
			t.Errorf("unexpected datasets: %+v", datasets)
		}
		publications := db.recorded(`insert into "publications"`)
		if len(publications) != 2 ||
			publications[0].args[0] != "AMLB: an AutoML Benchmark" {
			t.Errorf("unexpected publications: %+v", publications)
		}

		// ids in insertion order: Higgs=1, porto-seguro=2, AMLB=3, Nature=4.
		// AMLB links to both datasets; the Nature paper only to Higgs.
		links := db.recorded(`insert into "dataset_publication"`)
		expected := [][]interface{}{{1, 3}, {2, 3}, {1, 4}}
		if len(links) != len(expected) {
			t.Fatalf("%d links are inserted (expected %d)", len(links), len(expected))
		}
		for nth, link := range links {
			if len(link.args) != 2 ||
				link.args[0] != expected[nth][0] || link.args[1] != expected[nth][1] {
				t.Errorf(
					"unexpected link: %+v (expected %+v)", link.args, expected[nth],
				)
			}
		}

		if db.commits != 1 {
			t.Errorf("commit is called %d times (expected once)", db.commits)
		}
	})

	t.Run("when the catalog already holds a row, it inserts nothing", func(t *testing.T) {
		db := newScript()
		db.onQueryRow = func(sql string, _ []interface{}) func(dest ...interface{}) error {
			if strings.Contains(sql, "select not exists") {
				return scanInto(false)
			}
			return func(...interface{}) error {
				return fmt.Errorf("statement is not scripted: %s", sql)
			}
		}

		if err := SeedExample(ctx, fakePool{db}); err != nil {
			t.Fatal(err)
		}
		if inserts := db.recorded("insert into"); len(inserts) != 0 {
			t.Errorf("rows are inserted into a non-empty catalog: %+v", inserts)
		}
		if db.commits != 0 {
			t.Errorf("commit is called without any insert")
		}
	})
}
