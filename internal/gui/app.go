package gui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/gund999/TestMeasurementController/internal/catalog"
	"github.com/gund999/TestMeasurementController/internal/config"
	"github.com/gund999/TestMeasurementController/internal/link"
	"github.com/gund999/TestMeasurementController/internal/logbook"
	"github.com/gund999/TestMeasurementController/internal/logger"
	"github.com/gund999/TestMeasurementController/internal/measure"
	"github.com/gund999/TestMeasurementController/internal/session"
	"github.com/gund999/TestMeasurementController/pkg/serialutil"
)

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	config  *config.Config
	session *session.Session
	version string

	// === connection row ===
	portSelect *widget.Select
	refreshBtn *widget.Button
	baudSelect *widget.Select
	connectBtn *widget.Button
	stateLabel *widget.Label

	// === command area ===
	instrumentSelect *widget.Select
	subcommandSelect *widget.Select
	paramsBox        *fyne.Container
	paramEntries     map[string]*widget.Entry
	sendBtn          *widget.Button
	saveBtn          *widget.Button

	// === raw send bar ===
	rawEntry   *widget.Entry
	rawSendBtn *widget.Button

	// === display area ===
	trafficText   *widget.Label
	trafficScroll *container.Scroll
	trafficJump   *widget.Button
	debugText     *widget.Label
	debugScroll   *container.Scroll
	debugJump     *widget.Button
	chart         *Chart
	clearPlotBtn  *widget.Button
}

func NewApp(cfg *config.Config, version string) *App {
	fyneApp := app.NewWithID("com.gund999.tmcontrol")

	window := fyneApp.NewWindow("Test & Measurement Controller")
	window.Resize(fyne.NewSize(1100, 780))
	window.CenterOnScreen()

	return &App{
		fyneApp:      fyneApp,
		window:       window,
		config:       cfg,
		session:      session.New(),
		version:      version,
		paramEntries: make(map[string]*widget.Entry),
	}
}

// ShowAndRun builds the UI and enters the event loop.
func (a *App) ShowAndRun() {
	a.initUI()
	a.window.ShowAndRun()
}

func (a *App) initUI() {
	a.createUIElements()

	a.connectBtn.OnTapped = a.toggleConnection
	a.refreshBtn.OnTapped = a.populateSerialPorts
	a.sendBtn.OnTapped = a.sendSelected
	a.saveBtn.OnTapped = a.saveSettings
	a.rawSendBtn.OnTapped = a.sendRaw
	a.rawEntry.OnSubmitted = func(string) { a.sendRaw() }
	a.clearPlotBtn.OnTapped = func() {
		a.session.ClearPlot()
		a.chart.Clear()
	}
	a.trafficJump.OnTapped = func() {
		a.session.Traffic.ScrollToBottom()
		a.trafficScroll.ScrollToBottom()
	}
	a.debugJump.OnTapped = func() {
		a.session.Debug.ScrollToBottom()
		a.debugScroll.ScrollToBottom()
	}

	a.instrumentSelect.OnChanged = func(name string) { a.populateSubcommands(name) }
	a.subcommandSelect.OnChanged = func(name string) { a.populateParams(name) }

	// Log and sample events arrive on the reader goroutine; fyne.Do hops
	// them onto the UI loop.
	a.session.Traffic.OnAppend(func(e logbook.Entry, follow bool) {
		fyne.Do(func() {
			a.trafficText.SetText(a.trafficText.Text + formatEntry(e))
			if follow {
				a.trafficScroll.ScrollToBottom()
			}
		})
	})
	a.session.Debug.OnAppend(func(e logbook.Entry, follow bool) {
		fyne.Do(func() {
			a.debugText.SetText(a.debugText.Text + formatEntry(e))
			if follow {
				a.debugScroll.ScrollToBottom()
			}
		})
	})
	a.session.OnSample(func(kind catalog.Kind, _ measure.Sample) {
		samples := a.session.Samples.Series(kind)
		fyne.Do(func() { a.chart.SetSeries(kind, samples) })
	})
	a.session.Link().OnDown(func(err error) {
		a.session.Debug.Append(logbook.Debug, fmt.Sprintf("link dropped: %v", err))
		fyne.Do(a.updateConnectionStateUI)
	})

	a.trafficScroll.OnScrolled = func(fyne.Position) {
		trackScroll(a.trafficScroll, a.trafficText, a.session.Traffic)
	}
	a.debugScroll.OnScrolled = func(fyne.Position) {
		trackScroll(a.debugScroll, a.debugText, a.session.Debug)
	}

	// Closing the window must release the port and join the reader
	// goroutine before the process exits.
	a.window.SetCloseIntercept(func() {
		a.session.Disconnect()
		a.window.Close()
	})

	a.restoreSelection()
	a.window.SetContent(a.createMainLayout())
	a.updateConnectionStateUI()
}

func (a *App) createUIElements() {
	// === connection row ===
	a.portSelect = widget.NewSelect([]string{}, nil)
	a.portSelect.PlaceHolder = "Select Serial Port"

	a.refreshBtn = widget.NewButton("Rescan", nil)

	a.baudSelect = widget.NewSelect([]string{"9600", "19200", "38400", "57600", "115200", "230400"}, nil)
	a.baudSelect.SetSelected(strconv.Itoa(a.config.Serial.Baud))

	a.connectBtn = widget.NewButton("Connect", nil)
	a.stateLabel = widget.NewLabel(link.Disconnected.String())

	// === command area ===
	a.instrumentSelect = widget.NewSelect(catalog.InstrumentNames(), nil)
	a.instrumentSelect.PlaceHolder = "Select Instrument"

	a.subcommandSelect = widget.NewSelect([]string{}, nil)
	a.subcommandSelect.PlaceHolder = "Select Command"

	a.paramsBox = container.NewVBox()

	a.sendBtn = widget.NewButton("Send", nil)
	a.sendBtn.Disable()
	a.saveBtn = widget.NewButton("Save Settings", nil)

	// === raw send bar ===
	a.rawEntry = widget.NewEntry()
	a.rawEntry.PlaceHolder = "Raw command, e.g. *IDN?"
	a.rawSendBtn = widget.NewButton("Send Raw", nil)
	a.rawSendBtn.Disable()

	// === display area ===
	a.trafficText = widget.NewLabel("")
	a.trafficText.TextStyle = fyne.TextStyle{Monospace: true}
	a.trafficScroll = container.NewVScroll(a.trafficText)
	a.trafficJump = widget.NewButton("Jump to Latest", nil)

	a.debugText = widget.NewLabel("")
	a.debugText.TextStyle = fyne.TextStyle{Monospace: true}
	a.debugScroll = container.NewVScroll(a.debugText)
	a.debugJump = widget.NewButton("Jump to Latest", nil)

	a.chart = NewChart()
	a.clearPlotBtn = widget.NewButton("Clear Plot", nil)

	a.populateSerialPorts()
}

func (a *App) createMainLayout() fyne.CanvasObject {
	titleRow := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Test & Measurement Controller", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("v"+a.version),
	)

	connectionRow := container.NewHBox(
		widget.NewLabel("Port:"),
		container.New(&minWidthLayout{width: 280}, a.portSelect),
		a.refreshBtn,
		widget.NewLabel("Baud:"),
		container.New(&minWidthLayout{width: 120}, a.baudSelect),
		layout.NewSpacer(),
		a.stateLabel,
		a.connectBtn,
	)

	commandRow := container.NewHBox(
		widget.NewLabel("Instrument:"),
		container.New(&minWidthLayout{width: 220}, a.instrumentSelect),
		widget.NewLabel("Command:"),
		container.New(&minWidthLayout{width: 220}, a.subcommandSelect),
		layout.NewSpacer(),
		a.saveBtn,
		a.sendBtn,
	)

	commandCard := widget.NewCard("", "", container.NewVBox(commandRow, a.paramsBox))

	trafficHeader := container.NewHBox(
		widget.NewLabel("Serial Traffic:"),
		layout.NewSpacer(),
		a.trafficJump,
	)
	trafficPane := container.NewBorder(trafficHeader, nil, nil, nil, a.trafficScroll)

	debugHeader := container.NewHBox(
		widget.NewLabel("Messages:"),
		layout.NewSpacer(),
		a.debugJump,
	)
	debugPane := container.NewBorder(debugHeader, nil, nil, nil, a.debugScroll)

	logSplitter := container.NewHSplit(trafficPane, debugPane)
	logSplitter.SetOffset(0.55)

	chartHeader := container.NewHBox(
		widget.NewLabel("Measurements:"),
		layout.NewSpacer(),
		a.clearPlotBtn,
	)
	chartPane := container.NewBorder(chartHeader, nil, nil, nil, a.chart)

	displaySplitter := container.NewVSplit(logSplitter, chartPane)
	displaySplitter.SetOffset(0.55)

	rawRow := container.NewBorder(nil, nil, widget.NewLabel("Raw:"), a.rawSendBtn, a.rawEntry)

	return container.NewBorder(
		container.NewVBox(titleRow, widget.NewSeparator(), connectionRow, commandCard, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), rawRow),
		nil, nil,
		displaySplitter,
	)
}

func (a *App) populateSerialPorts() {
	ports, err := serialutil.Ports()
	if err != nil {
		a.session.Debug.Append(logbook.Debug, fmt.Sprintf("port scan failed: %v", err))
		return
	}
	if len(ports) == 0 {
		a.portSelect.SetOptions([]string{"No ports found"})
		a.portSelect.SetSelected("No ports found")
		return
	}

	if details, err := serialutil.DetailedPorts(); err == nil {
		for _, d := range details {
			logger.Info("Port found: " + d.Label())
		}
	}

	a.portSelect.SetOptions(ports)
	selected := serialutil.DefaultPort(ports)
	if a.config.Serial.Port != "" && serialutil.Validate(a.config.Serial.Port) {
		selected = a.config.Serial.Port
	}
	a.portSelect.SetSelected(selected)
}

func (a *App) populateSubcommands(instrument string) {
	inst, err := catalog.Find(instrument)
	if err != nil {
		a.subcommandSelect.SetOptions(nil)
		return
	}
	names := inst.SubcommandNames()
	a.subcommandSelect.SetOptions(names)
	if len(names) > 0 {
		a.subcommandSelect.SetSelected(names[0])
	}
}

// populateParams rebuilds the parameter entry rows for the selected
// subcommand. Saved parameter values are restored by name.
func (a *App) populateParams(subcommand string) {
	a.paramsBox.Objects = nil
	a.paramEntries = make(map[string]*widget.Entry)

	inst, err := catalog.Find(a.instrumentSelect.Selected)
	if err != nil {
		a.paramsBox.Refresh()
		return
	}
	sub, err := inst.Find(subcommand)
	if err != nil {
		a.paramsBox.Refresh()
		return
	}

	for _, p := range sub.Params {
		entry := widget.NewEntry()
		entry.PlaceHolder = paramPlaceholder(p)
		if saved, ok := a.config.Selection.Params[p.Name]; ok {
			entry.SetText(saved)
		}
		a.paramEntries[p.Name] = entry
		row := container.NewBorder(nil, nil,
			container.New(&fixedWidthLayout{width: 180}, widget.NewLabel(p.Name+":")),
			nil, entry)
		a.paramsBox.Add(row)
	}
	a.paramsBox.Refresh()
}

func paramPlaceholder(p catalog.Parameter) string {
	switch p.Kind {
	case catalog.Numeric:
		return "e.g. 12.5"
	case catalog.HexCode:
		return fmt.Sprintf("%d hex digits", p.Width)
	default:
		if p.Width > 0 {
			return fmt.Sprintf("up to %d characters", p.Width)
		}
		return "text"
	}
}

// restoreSelection reapplies the instrument and subcommand saved in the
// config file, when they still exist in the catalog.
func (a *App) restoreSelection() {
	inst, err := catalog.Find(a.config.Selection.Instrument)
	if err != nil {
		return
	}
	a.instrumentSelect.SetSelected(inst.Name)
	if sub, err := inst.Find(a.config.Selection.Subcommand); err == nil {
		a.subcommandSelect.SetSelected(sub.Name)
	}
	a.session.SetSelection(a.config.Selection.Instrument,
		a.config.Selection.Subcommand, a.config.Selection.Params)
}

// === event handlers ===

func (a *App) toggleConnection() {
	if a.session.Link().State() == link.Connected {
		a.disconnect()
	} else {
		a.connect()
	}
}

func (a *App) connect() {
	port := a.portSelect.Selected
	if port == "" || port == "No ports found" {
		a.session.Debug.Append(logbook.Debug, "no serial port selected")
		return
	}
	baud, err := strconv.Atoi(a.baudSelect.Selected)
	if err != nil {
		a.session.Debug.Append(logbook.Debug, fmt.Sprintf("invalid baud rate: %q", a.baudSelect.Selected))
		return
	}

	a.connectBtn.SetText("Connecting...")
	a.connectBtn.Disable()

	if err := a.session.Connect(port, baud); err == nil {
		a.config.Serial.Port = port
		a.config.Serial.Baud = baud
	}
	a.updateConnectionStateUI()
}

func (a *App) disconnect() {
	if err := a.session.Disconnect(); err != nil {
		a.session.Debug.Append(logbook.Debug, fmt.Sprintf("disconnect failed: %v", err))
	}
	a.updateConnectionStateUI()
}

func (a *App) updateConnectionStateUI() {
	state := a.session.Link().State()
	a.stateLabel.SetText(state.String())
	if state == link.Connected {
		a.connectBtn.SetText("Disconnect")
		a.connectBtn.Enable()
		a.sendBtn.Enable()
		a.rawSendBtn.Enable()
	} else {
		a.connectBtn.SetText("Connect")
		a.connectBtn.Enable()
		a.sendBtn.Disable()
		a.rawSendBtn.Disable()
	}
}

func (a *App) sendSelected() {
	instrument := a.instrumentSelect.Selected
	subcommand := a.subcommandSelect.Selected
	if instrument == "" || subcommand == "" {
		a.session.Debug.Append(logbook.Debug, "select an instrument and command first")
		return
	}

	params := make(map[string]string, len(a.paramEntries))
	for name, entry := range a.paramEntries {
		params[name] = entry.Text
	}

	if _, err := a.session.Send(instrument, subcommand, params); err != nil {
		return // already noted in the debug log
	}
	a.session.SetSelection(instrument, subcommand, params)
}

func (a *App) sendRaw() {
	cmd := a.rawEntry.Text
	if cmd == "" {
		return
	}
	if err := a.session.SendRaw(cmd); err != nil {
		return
	}
	a.rawEntry.SetText("")
}

func (a *App) saveSettings() {
	if port := a.portSelect.Selected; port != "" && port != "No ports found" {
		a.config.Serial.Port = port
	}
	if baud, err := strconv.Atoi(a.baudSelect.Selected); err == nil {
		a.config.Serial.Baud = baud
	}
	if instrument, subcommand, params := a.session.Selection(); instrument != "" {
		a.config.Selection.Instrument = instrument
		a.config.Selection.Subcommand = subcommand
		a.config.Selection.Params = params
	}
	if err := a.config.Save(); err != nil {
		a.session.Debug.Append(logbook.Debug, fmt.Sprintf("save settings failed: %v", err))
		logger.Error(fmt.Sprintf("save settings: %v", err))
		return
	}
	a.session.Debug.Append(logbook.Debug, "settings saved")
}

// trackScroll keeps a log's follow flag in step with where the user
// scrolled: away from the bottom stops following, back at the bottom
// resumes.
func trackScroll(scroll *container.Scroll, content *widget.Label, log *logbook.Log) {
	bottom := content.MinSize().Height - scroll.Size().Height
	if bottom <= 0 || scroll.Offset.Y >= bottom-2 {
		log.ScrollToBottom()
	} else {
		log.ScrollUp()
	}
}

func formatEntry(e logbook.Entry) string {
	return fmt.Sprintf("[%s] %-3s %s\n", e.Time.Format("15:04:05.000"), e.Direction, e.Text)
}
