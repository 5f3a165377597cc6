// Command tui is the terminal shell of the explorer. It offers the same
// Database, Query Execution and Charts tabs as the web window. Charts are
// summarised as text and can be saved to png, pdf or svg.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dracory/env"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"

	"github.com/dracory/weeviz/shared/chart"
	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/driver"
	"github.com/dracory/weeviz/shared/export"
	"github.com/dracory/weeviz/shared/present"
	"github.com/dracory/weeviz/shared/session"
)

const (
	tabDatabase = "database"
	tabQuery    = "query"
	tabCharts   = "charts"
)

var tabs = []struct{ id, label string }{
	{tabDatabase, "Database"},
	{tabQuery, "Query Execution"},
	{tabCharts, "Charts"},
}

type shell struct {
	app     *tview.Application
	root    *tview.Pages
	pages   *tview.Pages
	tabBar  *tview.TextView
	status  *tview.TextView
	session *session.Session

	dbPath  *tview.InputField
	tables  *tview.List
	columns *tview.List

	editor  *tview.TextArea
	results *tview.Table

	controls *tview.Form
	figure   *tview.TextView
}

func main() {
	if len(os.Args) == 2 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Println("Usage:")
		fmt.Println("  tui              Start the explorer")
		fmt.Println("  tui FILE.sqlite  Start with a database loaded")
		return
	}

	// tview owns the terminal: logs are discarded unless LOG_LEVEL=debug,
	// which writes them to weeviz-tui.log in the working directory
	env.Load(".env")
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if strings.EqualFold(env.GetStringOrDefault("LOG_LEVEL", "info"), "debug") {
		if f, err := os.OpenFile("weeviz-tui.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	}

	sess := session.New(session.WithRegistry(driver.NewRegistry([]string{constants.DriverSQLite})))
	defer sess.Close()

	s := newShell(sess)
	if len(os.Args) > 1 {
		s.dbPath.SetText(os.Args[1])
		s.loadDatabase()
	}

	if err := s.app.SetRoot(s.root, true).EnableMouse(true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

func newShell(sess *session.Session) *shell {
	s := &shell{
		app:     tview.NewApplication(),
		root:    tview.NewPages(),
		pages:   tview.NewPages(),
		session: sess,
	}

	s.tabBar = tview.NewTextView().SetDynamicColors(true).SetRegions(true).SetWrap(false)
	s.tabBar.SetHighlightedFunc(func(added, removed, remaining []string) {
		if len(added) > 0 {
			s.pages.SwitchToPage(added[0])
		}
	})
	for i, t := range tabs {
		fmt.Fprintf(s.tabBar, `F%d ["%s"][white]%s[""]  `, i+1, t.id, t.label)
	}

	s.status = tview.NewTextView().SetDynamicColors(true)
	s.setStatus("[yellow]No database loaded")

	s.pages.AddPage(tabDatabase, s.databaseTab(), true, true)
	s.pages.AddPage(tabQuery, s.queryTab(), true, false)
	s.pages.AddPage(tabCharts, s.chartsTab(), true, false)
	s.tabBar.Highlight(tabDatabase)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.tabBar, 1, 0, false).
		AddItem(s.pages, 0, 1, true).
		AddItem(s.status, 1, 0, false)
	s.root.AddPage("main", layout, true, true)

	s.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyF1:
			s.tabBar.Highlight(tabDatabase)
		case tcell.KeyF2:
			s.tabBar.Highlight(tabQuery)
			s.app.SetFocus(s.editor)
		case tcell.KeyF3:
			s.tabBar.Highlight(tabCharts)
			s.app.SetFocus(s.controls)
		case tcell.KeyCtrlQ:
			s.app.Stop()
		default:
			return ev
		}
		return nil
	})

	return s
}

func (s *shell) databaseTab() tview.Primitive {
	s.dbPath = tview.NewInputField().SetLabel("Database file: ").SetPlaceholder("path to .db / .sqlite / .sqlite3")
	s.dbPath.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			s.loadDatabase()
		}
	})

	load := tview.NewButton("Load Database").SetSelectedFunc(s.loadDatabase)

	s.tables = tview.NewList().ShowSecondaryText(false)
	s.tables.SetBorder(true).SetTitle("Tables")
	s.tables.SetSelectedFunc(func(_ int, _, name string, _ rune) {
		s.showColumns(name)
	})

	s.columns = tview.NewList().ShowSecondaryText(false)
	s.columns.SetBorder(true).SetTitle("Columns")

	top := tview.NewFlex().
		AddItem(s.dbPath, 0, 1, true).
		AddItem(load, 17, 0, false)

	lists := tview.NewFlex().
		AddItem(s.tables, 0, 1, false).
		AddItem(s.columns, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, true).
		AddItem(lists, 0, 1, false)
}

func (s *shell) queryTab() tview.Primitive {
	s.editor = tview.NewTextArea()
	s.editor.SetText(constants.DefaultQuery, false)
	s.editor.SetBorder(true).SetTitle("Query (Ctrl-R to run)")
	s.editor.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlR {
			s.executeQuery()
			return nil
		}
		return ev
	})

	s.results = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	s.results.SetBorder(true).SetTitle("Results")

	buttons := tview.NewFlex().
		AddItem(tview.NewButton("Execute Query").SetSelectedFunc(s.executeQuery), 17, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(tview.NewButton("Export Results").SetSelectedFunc(s.exportResults), 18, 0, false).
		AddItem(nil, 0, 1, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.editor, 8, 0, true).
		AddItem(buttons, 1, 0, false).
		AddItem(s.results, 0, 1, false)
}

func (s *shell) chartsTab() tview.Primitive {
	kinds := lo.Map(chart.Kinds, func(k chart.Kind, _ int) string { return string(k) })

	s.controls = tview.NewForm().
		AddDropDown("X-Axis:", nil, -1, nil).
		AddDropDown("Y-Axis:", nil, -1, nil).
		AddDropDown("Chart Type:", kinds, 0, nil).
		AddCheckbox("Show Grid", false, nil).
		AddCheckbox("Show Labels", false, nil).
		AddInputField("Marker Size:", strconv.Itoa(constants.DefaultMarkerSize), 4, tview.InputFieldInteger, nil).
		AddInputField("Chart Title:", "", 40, nil, nil).
		AddButton("Generate Chart", s.generateChart).
		AddButton("Export Chart", s.exportChart)
	s.controls.SetBorder(true).SetTitle("Chart")

	s.figure = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	s.figure.SetBorder(true).SetTitle("Figure")

	return tview.NewFlex().
		AddItem(s.controls, 60, 0, true).
		AddItem(s.figure, 0, 1, false)
}

func (s *shell) setStatus(format string, a ...any) {
	s.status.SetText(fmt.Sprintf(format, a...))
}

func (s *shell) showError(err error) {
	s.showModal("Error: " + err.Error())
}

func (s *shell) showModal(text string) {
	modal := tview.NewModal().
		SetText(tview.Escape(text)).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			s.root.RemovePage("modal")
			s.app.SetFocus(s.pages)
		})
	s.root.AddPage("modal", modal, true, true)
	s.app.SetFocus(modal)
}

// askPath shows a save dialog. A blank path is treated as cancelled.
func (s *shell) askPath(title string, formats []string, save func(path string)) {
	hint := strings.Join(lo.Map(formats, func(f string, _ int) string { return "." + f }), " ")
	form := tview.NewForm().AddInputField("Path:", "", 50, nil, nil)
	done := func(cancelled bool) {
		path := form.GetFormItem(0).(*tview.InputField).GetText()
		s.root.RemovePage("dialog")
		s.app.SetFocus(s.pages)
		if cancelled || strings.TrimSpace(path) == "" {
			return
		}
		save(path)
	}
	form.AddButton("Save", func() { done(false) }).
		AddButton("Cancel", func() { done(true) })
	form.SetBorder(true).SetTitle(title + " (" + hint + ")")
	form.SetCancelFunc(func() { done(true) })

	frame := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(form, 7, 0, true).
			AddItem(nil, 0, 1, false), 70, 0, true).
		AddItem(nil, 0, 1, false)
	s.root.AddPage("dialog", frame, true, true)
	s.app.SetFocus(form)
}

func (s *shell) loadDatabase() {
	path := strings.TrimSpace(s.dbPath.GetText())
	if path == "" {
		return
	}
	if _, err := s.session.Open(context.Background(), constants.DriverSQLite, path); err != nil {
		s.showError(err)
		return
	}
	s.setStatus("[green]Database loaded: %s", tview.Escape(path))
	if s.refreshTables() {
		s.showModal("Database Loaded Successfully!")
	}
}

func (s *shell) refreshTables() bool {
	s.tables.Clear()
	s.columns.Clear()
	names, err := s.session.Tables(context.Background())
	if err != nil {
		s.showError(err)
		return false
	}
	for _, name := range names {
		s.tables.AddItem(tview.Escape(name), name, 0, nil)
	}
	return true
}

func (s *shell) showColumns(table string) {
	s.columns.Clear()
	s.columns.SetTitle("Columns: " + tview.Escape(table))
	cols, err := s.session.Columns(context.Background(), table)
	if err != nil {
		s.showError(err)
		return
	}
	for _, c := range cols {
		s.columns.AddItem(tview.Escape(c), "", 0, nil)
	}
}

func (s *shell) executeQuery() {
	statement := s.editor.GetText()
	s.setStatus("[yellow]Running query...")

	go func() {
		result, err := s.session.Execute(context.Background(), statement)
		s.app.QueueUpdateDraw(func() {
			if err != nil {
				s.setStatus("[red]Query failed")
				s.showError(err)
				return
			}
			s.renderGrid(present.Present(result, constants.GridColumnWidthCells))
			s.publishAxes(present.PublishColumns(result))
			s.setStatus("[green]Fetched %d rows", result.NumRows())
			s.showModal("Query Executed Successfully!")
		})
	}()
}

func (s *shell) renderGrid(grid present.Grid) {
	s.results.Clear()
	if grid.Empty() {
		s.results.SetTitle("Results")
		s.results.SetCell(0, 0, tview.NewTableCell(grid.Placeholder).SetTextColor(tcell.ColorYellow))
		return
	}
	for c, name := range grid.Columns {
		s.results.SetCell(0, c, tview.NewTableCell(tview.Escape(name)).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetMaxWidth(grid.ColumnWidth))
	}
	for r, row := range grid.Rows {
		for c, v := range row {
			s.results.SetCell(r+1, c, tview.NewTableCell(tview.Escape(v)).SetMaxWidth(grid.ColumnWidth))
		}
	}
	s.results.SetTitle(fmt.Sprintf("Results (%d rows)", len(grid.Rows)))
	s.results.ScrollToBeginning()
}

func (s *shell) publishAxes(axes present.Axes) {
	x := s.controls.GetFormItemByLabel("X-Axis:").(*tview.DropDown)
	y := s.controls.GetFormItemByLabel("Y-Axis:").(*tview.DropDown)
	x.SetOptions(axes.Candidates, nil)
	y.SetOptions(axes.Candidates, nil)
	if i := lo.IndexOf(axes.Candidates, axes.X); i >= 0 {
		x.SetCurrentOption(i)
	}
	if i := lo.IndexOf(axes.Candidates, axes.Y); i >= 0 {
		y.SetCurrentOption(i)
	}
}

func (s *shell) chartSpec() chart.Spec {
	option := func(label string) string {
		_, v := s.controls.GetFormItemByLabel(label).(*tview.DropDown).GetCurrentOption()
		return v
	}
	checked := func(label string) bool {
		return s.controls.GetFormItemByLabel(label).(*tview.Checkbox).IsChecked()
	}
	text := func(label string) string {
		return s.controls.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	kind, _ := chart.ParseKind(option("Chart Type:"))
	marker, _ := strconv.Atoi(text("Marker Size:"))
	return chart.Spec{
		X:          option("X-Axis:"),
		Y:          option("Y-Axis:"),
		Kind:       kind,
		ShowGrid:   checked("Show Grid"),
		ShowLabels: checked("Show Labels"),
		Title:      text("Chart Title:"),
		MarkerSize: marker,
	}
}

func (s *shell) generateChart() {
	fig, err := s.session.GenerateChart(s.chartSpec())
	if err != nil {
		s.showError(err)
		return
	}
	s.figure.SetText(tview.Escape(strings.Join(fig.Summary(), "\n")))
	s.figure.ScrollToBeginning()
	s.setStatus("[green]%s chart generated", fig.Kind)
}

func (s *shell) exportResults() {
	s.askPath("Export Results", export.TableFormats, func(path string) {
		if err := s.session.ExportResult(path); err != nil {
			s.showError(err)
			return
		}
		s.showModal("Data exported successfully as " + filepath.Base(path))
	})
}

func (s *shell) exportChart() {
	s.askPath("Export Chart", export.FigureFormats, func(path string) {
		if err := s.session.ExportFigure(path); err != nil {
			s.showError(err)
			return
		}
		s.showModal("Chart saved successfully: " + filepath.Base(path))
	})
}
