package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/config"
	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/service"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	app     *App
	db      *sql.DB
	cfgPath string
	clock   *clock.FakeClock
	effects *testutil.EffectRecorder
}

type envOption func(*envOptions)

type envOptions struct {
	timer []string
	uow   func(*sql.DB) db.UnitOfWork
}

// withTimer adds lines under the timer: section of the test config.
func withTimer(lines ...string) envOption {
	return func(o *envOptions) { o.timer = append(o.timer, lines...) }
}

func withUoW(fn func(*sql.DB) db.UnitOfWork) envOption {
	return func(o *envOptions) { o.uow = fn }
}

// newTestEnv wires a full App on an in-memory DB, a fake clock at cliNow and
// recording effects. Calendar days are computed in UTC.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	o := envOptions{uow: testutil.NewTestUoW}
	for _, opt := range opts {
		opt(&o)
	}

	database := testutil.NewTestDB(t)
	uow := o.uow(database)
	clk := clock.Fake(cliNow)

	store := service.NewSessionStore(
		repository.NewSQLiteMeasurementRepo(database),
		repository.NewSQLiteBoxRepo(database),
		repository.NewSQLiteCatalogRepo(database),
		uow,
		service.WithColorPicker(testutil.FirstColor),
	)
	require.NoError(t, store.Load(context.Background()))

	body := "timer:\n  timezone: UTC\n"
	for _, l := range o.timer {
		body += "  " + l + "\n"
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	v, err := config.NewViper(path)
	require.NoError(t, err)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	fx := &testutil.EffectRecorder{}
	app := &App{
		Store:    store,
		Tracker:  service.NewTrackerService(store, repository.NewSQLiteActiveMeasurementRepo(database), uow, clk),
		Trash:    service.NewTrashService(store, repository.NewSQLiteTrashRepo(database), clk),
		Exchange: service.NewExchangeService(store, clk),
		View:     aggregate.NewView(store, time.UTC, nil),
		Settings: config.NewLive(v, cfg, nil),
		Effects:  fx,
		Guards:   repository.NewSQLiteGuardRepo(database),
		Clock:    clk,
	}
	return &testEnv{app: app, db: database, cfgPath: path, clock: clk, effects: fx}
}

// run executes the root command with args and returns combined output.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(e.app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// mustRun fails the test when the command errors.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}
