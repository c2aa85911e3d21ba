package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(query string) (driver.Stmt, error) { return stubStmt{}, nil }
func (stubConn) Close() error                              { return nil }
func (stubConn) Begin() (driver.Tx, error)                 { return stubTx{}, nil }
func (stubConn) Ping(ctx context.Context) error            { return nil }

type stubStmt struct{}

func (stubStmt) Close() error                                    { return nil }
func (stubStmt) NumInput() int                                   { return -1 }
func (stubStmt) Exec(args []driver.Value) (driver.Result, error) { return stubResult{}, nil }
func (stubStmt) Query(args []driver.Value) (driver.Rows, error)  { return stubRows{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubResult struct{}

func (stubResult) LastInsertId() (int64, error) { return 0, nil }
func (stubResult) RowsAffected() (int64, error) { return 0, nil }

type stubRows struct{}

func (stubRows) Columns() []string              { return []string{} }
func (stubRows) Close() error                   { return nil }
func (stubRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerStubOnce sync.Once

func registerStubDriver() {
	registerStubOnce.Do(func() {
		sql.Register("dbstub", stubDriver{})
	})
}

func useStubDriver(t *testing.T) {
	t.Helper()
	registerStubDriver()
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbstub", dsn)
	}
	t.Cleanup(func() { openDB = prev })
}

func resetSingleton() {
	singletonMu.Lock()
	singletonDB = nil
	singletonInFly = false
	singletonMu.Unlock()
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	useStubDriver(t)

	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}

func TestGetSingletonReturnsSamePointer(t *testing.T) {
	useStubDriver(t)
	resetSingleton()

	first, err := GetSingleton(context.Background(), "ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("GetSingleton first: %v", err)
	}
	second, err := GetSingleton(context.Background(), "ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("GetSingleton second: %v", err)
	}
	if first != second {
		t.Fatal("expected singleton pointers to match")
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	useStubDriver(t)

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxIdleConns != 3 {
		t.Fatalf("MaxIdleConns = %d", opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime != 20*time.Minute {
		t.Fatalf("ConnMaxLifetime = %s", opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime != 45*time.Second {
		t.Fatalf("ConnMaxIdleTime = %s", opts.ConnMaxIdleTime)
	}
	if opts.PingTimeout != time.Second {
		t.Fatalf("PingTimeout = %s", opts.PingTimeout)
	}

	conn, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("MaxOpenConnections = %d", got)
	}
}

func TestGetSingletonRetriesAfterFailure(t *testing.T) {
	registerStubDriver()
	var calls int32
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, driver.ErrBadConn
		}
		return sql.Open("dbstub", dsn)
	}
	t.Cleanup(func() { openDB = prev })

	resetSingleton()

	if _, err := GetSingleton(context.Background(), "ignored", DefaultLambdaOptions()); err == nil {
		t.Fatal("expected first call to fail")
	}
	conn, err := GetSingleton(context.Background(), "ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("expected second call to succeed: %v", err)
	}
	if conn == nil {
		t.Fatal("expected db after retry")
	}
}
