package main

import (
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/weeviz/internal/testutil"
	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/present"
	"github.com/dracory/weeviz/shared/session"
)

const taggedSchema = `
	CREATE TABLE "[red]alerts" (level TEXT, hits INTEGER);
	INSERT INTO "[red]alerts" VALUES ('[yellow]warn', 3), ('[blue]info', 5);
`

func newTestShell(t *testing.T) *shell {
	t.Helper()
	sess := session.New(session.WithRegistry(driver.NewRegistry([]string{constants.DriverSQLite})))
	t.Cleanup(func() { sess.Close() })
	return newShell(sess)
}

func TestLoadDatabase_ShowsSuccessAndEscapesNames(t *testing.T) {
	s := newTestShell(t)
	s.dbPath.SetText(testutil.NewSQLiteFile(t, taggedSchema))

	s.loadDatabase()

	assert.True(t, s.root.HasPage("modal"))
	require.Equal(t, 1, s.tables.GetItemCount())
	main, secondary := s.tables.GetItemText(0)
	assert.Equal(t, tview.Escape("[red]alerts"), main)
	assert.Equal(t, "[red]alerts", secondary)
}

func TestLoadDatabase_FailureShowsError(t *testing.T) {
	s := newTestShell(t)
	s.dbPath.SetText(testutil.NewTextFile(t))

	s.loadDatabase()

	assert.True(t, s.root.HasPage("modal"))
	assert.Equal(t, 0, s.tables.GetItemCount())
}

func TestRenderGrid_EscapesStyleTags(t *testing.T) {
	s := newTestShell(t)
	s.dbPath.SetText(testutil.NewSQLiteFile(t, taggedSchema))
	s.loadDatabase()

	result, err := s.session.Execute(t.Context(), `select level as "[green]lvl", hits from "[red]alerts" order by hits`)
	require.NoError(t, err)
	s.renderGrid(present.Present(result, constants.GridColumnWidthCells))

	assert.Equal(t, tview.Escape("[green]lvl"), s.results.GetCell(0, 0).Text)
	assert.Equal(t, tview.Escape("[yellow]warn"), s.results.GetCell(1, 0).Text)
}

func TestGenerateChart_EscapesSummary(t *testing.T) {
	s := newTestShell(t)
	s.dbPath.SetText(testutil.NewSQLiteFile(t, taggedSchema))
	s.loadDatabase()

	result, err := s.session.Execute(t.Context(), `select level, hits from "[red]alerts"`)
	require.NoError(t, err)
	s.publishAxes(present.PublishColumns(result))

	s.generateChart()

	fig := s.session.Figure()
	require.NotNil(t, fig)
	assert.Equal(t, chart.KindBar, fig.Kind)
	assert.Contains(t, fig.Summary(), "[yellow]warn: 3.00")
	assert.Contains(t, s.figure.GetText(false), tview.Escape("[yellow]warn: 3.00"))
}
