// Copyright © 2025 The Procwatch Project.

package dashboard

import (
	"context"
	"fmt"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/serve"
	"github.com/zosmac/procwatch/store"
)

// historySize is the number of logged samples shown in a sparkline.
const historySize = 120

// Dashboard displays the snapshots of a Server and the process log.
type Dashboard struct {
	server  *serve.Server
	path    string
	top     int
	address string

	names    []string
	selected string

	live    *widgets.Table
	logged  *widgets.Table
	status  *widgets.Paragraph
	cpu     *widgets.Sparkline
	cpuLine *widgets.SparklineGroup
	mem     *widgets.Sparkline
	memLine *widgets.SparklineGroup
	grid    *ui.Grid
}

// New creates a Dashboard over a Server's snapshots and the process log at path.
func New(server *serve.Server, path string, top int, address string) *Dashboard {
	return &Dashboard{
		server:  server,
		path:    path,
		top:     top,
		address: address,
	}
}

// Run displays the dashboard until the user quits or ctx is cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	if err := ui.Init(); err != nil {
		return gocore.Error("termui Init", err)
	}
	defer ui.Close()

	d.layout()
	d.show(d.server.Latest())

	events := ui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			switch {
			case e.Type == ui.KeyboardEvent && (e.ID == "q" || e.ID == "<C-c>"):
				return nil
			case e.Type == ui.KeyboardEvent && e.ID == "<Down>":
				d.selectName(1)
			case e.Type == ui.KeyboardEvent && e.ID == "<Up>":
				d.selectName(-1)
			case e.Type == ui.ResizeEvent:
				payload := e.Payload.(ui.Resize)
				d.grid.SetRect(0, 0, payload.Width, payload.Height)
				ui.Clear()
			default:
				continue
			}
			d.show(d.server.Latest())
		case snap := <-d.server.Updates():
			d.show(snap)
		}
	}
}

// layout creates the widgets and arranges them on the screen.
func (d *Dashboard) layout() {
	d.live = widgets.NewTable()
	d.live.Title = " Active Processes (by CPU) "
	d.live.TextStyle = ui.NewStyle(ui.ColorWhite)
	d.live.RowSeparator = false
	d.live.BorderStyle.Fg = ui.ColorGreen
	d.live.RowStyles[0] = ui.NewStyle(ui.ColorGreen, ui.ColorClear, ui.ModifierBold)

	d.logged = widgets.NewTable()
	d.logged.Title = fmt.Sprintf(" Top %d Logged CPU Consumers ", d.top)
	d.logged.TextStyle = ui.NewStyle(ui.ColorWhite)
	d.logged.RowSeparator = false
	d.logged.BorderStyle.Fg = ui.ColorYellow
	d.logged.RowStyles[0] = ui.NewStyle(ui.ColorYellow, ui.ColorClear, ui.ModifierBold)

	d.status = widgets.NewParagraph()
	d.status.Title = " ProcWatch "
	d.status.BorderStyle.Fg = ui.ColorCyan

	d.cpu = widgets.NewSparkline()
	d.cpu.LineColor = ui.ColorYellow
	d.cpuLine = widgets.NewSparklineGroup(d.cpu)
	d.cpuLine.BorderStyle.Fg = ui.ColorYellow

	d.mem = widgets.NewSparkline()
	d.mem.LineColor = ui.ColorGreen
	d.memLine = widgets.NewSparklineGroup(d.mem)
	d.memLine.BorderStyle.Fg = ui.ColorGreen

	d.grid = ui.NewGrid()
	width, height := ui.TerminalDimensions()
	d.grid.SetRect(0, 0, width, height)
	d.grid.Set(
		ui.NewRow(0.6,
			ui.NewCol(0.55, d.live),
			ui.NewCol(0.45,
				ui.NewRow(0.75, d.logged),
				ui.NewRow(0.25, d.status),
			),
		),
		ui.NewRow(0.4,
			ui.NewCol(0.5, d.cpuLine),
			ui.NewCol(0.5, d.memLine),
		),
	)
}

// show updates the widgets from a snapshot and the process log, then renders them.
func (d *Dashboard) show(snap serve.Snapshot) {
	d.live.Rows = processRows(snap.Processes, -1)

	es, err := store.Read(d.path)
	if err != nil {
		d.names = nil
		d.logged.Rows = summaryRows(nil)
		d.status.Text = fmt.Sprintf("server: %s\nsampled: %s\nlog: %v\nrun proclog to record history",
			d.address, snap.Time.Format("15:04:05"), err)
	} else {
		sum := analyze.Rank(analyze.Aggregate(es), d.top)
		d.logged.Rows = summaryRows(sum.ByCPU)
		d.names = analyze.Names(es)
		if d.selected == "" && len(sum.ByCPU) > 0 {
			d.selected = sum.ByCPU[0].Name
		}
		d.status.Text = fmt.Sprintf("server: %s\nsampled: %s\nlog: %s (%d entries)\nq quit, Up/Down select history",
			d.address, snap.Time.Format("15:04:05"), d.path, len(es))
	}

	cpu, mem := series(analyze.History(es, d.selected), historySize)
	d.cpu.Data = cpu
	d.mem.Data = mem
	d.cpuLine.Title = fmt.Sprintf(" CPU %% of %s (peak %.1f) ", d.selected, maximum(cpu))
	d.memLine.Title = fmt.Sprintf(" Memory MB of %s (peak %.1f) ", d.selected, maximum(mem))

	ui.Render(d.grid)
}

// selectName moves the history selection through the logged process names.
func (d *Dashboard) selectName(step int) {
	if len(d.names) == 0 {
		return
	}
	i := 0
	for j, name := range d.names {
		if name == d.selected {
			i = j + step
			break
		}
	}
	d.selected = d.names[(i%len(d.names)+len(d.names))%len(d.names)]
}
