package launcher

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MenuRow is one selectable row of the main menu.
type MenuRow int

const (
	MenuRowGame MenuRow = iota
	MenuRowSetDefault
	MenuRowNetplay
	MenuRowLaunch
	menuRowCount
)

// Menu is the content selection screen. Navigation comes from two
// sources: the keyboard, handled in Update, and the logical controller,
// routed in by the app through the Move/Activate methods.
type Menu struct {
	names        []string
	selectedRow  int
	contentIndex int
	netplay      bool
	defaultName  string

	onLaunch     func(name string, netplay bool)
	onSetDefault func(name string)
	onNetplay    func(enabled bool)

	// Cached images to avoid per-frame allocations
	cache struct {
		screenW, screenH int
		panelW, panelH   int
		rowW, rowH       int
		panelBg          *ebiten.Image
		rowBg            *ebiten.Image
		rowBgSelected    *ebiten.Image
	}

	// Pre-allocated draw options (reset each use)
	drawOpts ebiten.DrawImageOptions
	textOpts text.DrawOptions
}

// NewMenu creates the menu over the catalog's display names.
func NewMenu(names []string, onLaunch func(name string, netplay bool), onSetDefault func(name string), onNetplay func(enabled bool)) *Menu {
	return &Menu{
		names:        names,
		onLaunch:     onLaunch,
		onSetDefault: onSetDefault,
		onNetplay:    onNetplay,
	}
}

// SetNetplay sets the netplay toggle without firing the callback.
func (m *Menu) SetNetplay(enabled bool) {
	m.netplay = enabled
}

// SetDefaultName records which title is marked as the default.
func (m *Menu) SetDefaultName(name string) {
	m.defaultName = name
}

// SelectGame moves the content selector to the named title if present.
func (m *Menu) SelectGame(name string) {
	for i, n := range m.names {
		if n == name {
			m.contentIndex = i
			return
		}
	}
}

// SelectedGame returns the currently highlighted title, or "" when the
// catalog is empty.
func (m *Menu) SelectedGame() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.contentIndex]
}

// SelectedRow returns the focused menu row.
func (m *Menu) SelectedRow() MenuRow {
	return MenuRow(m.selectedRow)
}

// Netplay returns the current netplay toggle state.
func (m *Menu) Netplay() bool {
	return m.netplay
}

// MoveUp moves focus to the previous row, wrapping.
func (m *Menu) MoveUp() {
	m.selectedRow--
	if m.selectedRow < 0 {
		m.selectedRow = int(menuRowCount) - 1
	}
}

// MoveDown moves focus to the next row, wrapping.
func (m *Menu) MoveDown() {
	m.selectedRow++
	if m.selectedRow >= int(menuRowCount) {
		m.selectedRow = 0
	}
}

// MoveLeft cycles the value of the focused row, if it has one.
func (m *Menu) MoveLeft() {
	switch MenuRow(m.selectedRow) {
	case MenuRowGame:
		if len(m.names) > 0 {
			m.contentIndex--
			if m.contentIndex < 0 {
				m.contentIndex = len(m.names) - 1
			}
		}
	case MenuRowNetplay:
		m.toggleNetplay()
	}
}

// MoveRight cycles the value of the focused row, if it has one.
func (m *Menu) MoveRight() {
	switch MenuRow(m.selectedRow) {
	case MenuRowGame:
		if len(m.names) > 0 {
			m.contentIndex = (m.contentIndex + 1) % len(m.names)
		}
	case MenuRowNetplay:
		m.toggleNetplay()
	}
}

// Activate triggers the focused row's action.
func (m *Menu) Activate() {
	switch MenuRow(m.selectedRow) {
	case MenuRowGame, MenuRowLaunch:
		if name := m.SelectedGame(); name != "" && m.onLaunch != nil {
			m.onLaunch(name, m.netplay)
		}
	case MenuRowSetDefault:
		if name := m.SelectedGame(); name != "" && m.onSetDefault != nil {
			m.defaultName = name
			m.onSetDefault(name)
		}
	case MenuRowNetplay:
		m.toggleNetplay()
	}
}

func (m *Menu) toggleNetplay() {
	m.netplay = !m.netplay
	if m.onNetplay != nil {
		m.onNetplay(m.netplay)
	}
}

// Update handles keyboard input
func (m *Menu) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		m.MoveUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		m.MoveDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		m.MoveLeft()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		m.MoveRight()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.Activate()
	}
}

// rebuildCache recreates cached images when screen dimensions change
func (m *Menu) rebuildCache(screenW, screenH int) {
	if m.cache.panelBg != nil {
		m.cache.panelBg.Deallocate()
	}
	if m.cache.rowBg != nil {
		m.cache.rowBg.Deallocate()
	}
	if m.cache.rowBgSelected != nil {
		m.cache.rowBgSelected.Deallocate()
	}

	m.cache.screenW = screenW
	m.cache.screenH = screenH

	panelWidth := screenW * 55 / 100
	rowHeight := screenH * 9 / 100
	rowWidth := panelWidth * 88 / 100
	rowSpacing := rowHeight / 4
	padding := rowHeight / 2

	numRows := int(menuRowCount)
	panelHeight := padding*2 + numRows*rowHeight + (numRows-1)*rowSpacing

	m.cache.panelW = panelWidth
	m.cache.panelH = panelHeight
	m.cache.rowW = rowWidth
	m.cache.rowH = rowHeight

	m.cache.panelBg = ebiten.NewImage(panelWidth, panelHeight)
	m.cache.panelBg.Fill(colorPanel)

	m.cache.rowBg = ebiten.NewImage(rowWidth, rowHeight)
	m.cache.rowBg.Fill(colorPanel)

	m.cache.rowBgSelected = ebiten.NewImage(rowWidth, rowHeight)
	m.cache.rowBgSelected.Fill(colorAccent)
}

// rowLabel builds the display text for a row.
func (m *Menu) rowLabel(row MenuRow) string {
	switch row {
	case MenuRowGame:
		name := m.SelectedGame()
		if name == "" {
			return "< no content >"
		}
		if name == m.defaultName {
			return "< " + name + " > *"
		}
		return "< " + name + " >"
	case MenuRowSetDefault:
		return "Set as default"
	case MenuRowNetplay:
		if m.netplay {
			return "Netplay: On"
		}
		return "Netplay: Off"
	case MenuRowLaunch:
		return "Launch"
	}
	return ""
}

// Draw renders the menu
func (m *Menu) Draw(screen *ebiten.Image) {
	face := FontFace()
	titleF := TitleFace()
	if face == nil || titleF == nil {
		return
	}

	bounds := screen.Bounds()
	screenW := bounds.Dx()
	screenH := bounds.Dy()

	if m.cache.screenW != screenW || m.cache.screenH != screenH {
		m.rebuildCache(screenW, screenH)
	}

	// Title banner
	titleW, _ := text.Measure("XDash", titleF, 0)
	m.textOpts = text.DrawOptions{}
	m.textOpts.GeoM.Translate((float64(screenW)-titleW)/2, float64(screenH)*6/100)
	m.textOpts.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, "XDash", titleF, &m.textOpts)

	panelX := (screenW - m.cache.panelW) / 2
	panelY := (screenH - m.cache.panelH) / 2

	m.drawOpts.GeoM.Reset()
	m.drawOpts.GeoM.Translate(float64(panelX), float64(panelY))
	screen.DrawImage(m.cache.panelBg, &m.drawOpts)

	rowSpacing := m.cache.rowH / 4
	padding := m.cache.rowH / 2
	startY := panelY + padding
	rowX := panelX + (m.cache.panelW-m.cache.rowW)/2

	for i := 0; i < int(menuRowCount); i++ {
		rowY := startY + i*(m.cache.rowH+rowSpacing)

		bg := m.cache.rowBg
		if i == m.selectedRow {
			bg = m.cache.rowBgSelected
		}
		m.drawOpts.GeoM.Reset()
		m.drawOpts.GeoM.Translate(float64(rowX), float64(rowY))
		screen.DrawImage(bg, &m.drawOpts)

		label := m.rowLabel(MenuRow(i))
		textW, textH := text.Measure(label, face, 0)
		m.textOpts = text.DrawOptions{}
		m.textOpts.GeoM.Translate(
			float64(rowX)+(float64(m.cache.rowW)-textW)/2,
			float64(rowY)+(float64(m.cache.rowH)-textH)/2,
		)
		m.textOpts.ColorScale.ScaleWithColor(colorText)
		text.Draw(screen, label, face, &m.textOpts)
	}
}
