package launcher

import "testing"

func newTestMenu(names []string) (*Menu, *menuEvents) {
	ev := &menuEvents{}
	m := NewMenu(names,
		func(name string, netplay bool) {
			ev.launched = append(ev.launched, name)
			ev.netplayAtLaunch = netplay
		},
		func(name string) { ev.defaulted = append(ev.defaulted, name) },
		func(enabled bool) { ev.netplay = enabled },
	)
	return m, ev
}

type menuEvents struct {
	launched        []string
	defaulted       []string
	netplay         bool
	netplayAtLaunch bool
}

func TestMenuRowWrapping(t *testing.T) {
	m, _ := newTestMenu([]string{"Halo 3"})

	m.MoveUp()
	if m.SelectedRow() != MenuRowLaunch {
		t.Errorf("MoveUp from top = %v, want MenuRowLaunch", m.SelectedRow())
	}
	m.MoveDown()
	if m.SelectedRow() != MenuRowGame {
		t.Errorf("MoveDown from bottom = %v, want MenuRowGame", m.SelectedRow())
	}
}

func TestMenuContentCycling(t *testing.T) {
	m, _ := newTestMenu([]string{"Halo 3", "Gears of War", "Fable II"})

	if m.SelectedGame() != "Halo 3" {
		t.Fatalf("initial game = %q", m.SelectedGame())
	}
	m.MoveRight()
	if m.SelectedGame() != "Gears of War" {
		t.Errorf("after MoveRight = %q, want Gears of War", m.SelectedGame())
	}
	m.MoveLeft()
	m.MoveLeft()
	if m.SelectedGame() != "Fable II" {
		t.Errorf("MoveLeft should wrap to last entry, got %q", m.SelectedGame())
	}
}

func TestMenuLaunchFromGameRow(t *testing.T) {
	m, ev := newTestMenu([]string{"Halo 3", "Fable II"})
	m.SetNetplay(true)
	m.MoveRight()
	m.Activate()

	if len(ev.launched) != 1 || ev.launched[0] != "Fable II" {
		t.Errorf("launched = %v, want [Fable II]", ev.launched)
	}
	if !ev.netplayAtLaunch {
		t.Error("launch should carry the netplay toggle")
	}
}

func TestMenuSetDefault(t *testing.T) {
	m, ev := newTestMenu([]string{"Halo 3", "Fable II"})
	m.MoveRight()
	m.MoveDown() // focus "Set as default"
	m.Activate()

	if len(ev.defaulted) != 1 || ev.defaulted[0] != "Fable II" {
		t.Errorf("defaulted = %v, want [Fable II]", ev.defaulted)
	}
	if m.rowLabel(MenuRowGame) != "< Fable II > *" {
		t.Errorf("game row should mark the default, got %q", m.rowLabel(MenuRowGame))
	}
}

func TestMenuNetplayToggle(t *testing.T) {
	m, ev := newTestMenu([]string{"Halo 3"})
	m.MoveDown()
	m.MoveDown() // focus netplay row
	m.Activate()
	if !m.Netplay() || !ev.netplay {
		t.Error("Activate on netplay row should enable it")
	}
	m.MoveLeft()
	if m.Netplay() {
		t.Error("MoveLeft on netplay row should toggle it off")
	}
}

func TestMenuEmptyCatalog(t *testing.T) {
	m, ev := newTestMenu(nil)

	m.MoveRight()
	m.Activate()
	m.MoveUp() // wrap to Launch
	m.Activate()

	if len(ev.launched) != 0 {
		t.Errorf("empty catalog must never launch, got %v", ev.launched)
	}
	if m.SelectedGame() != "" {
		t.Errorf("SelectedGame = %q, want empty", m.SelectedGame())
	}
	if m.rowLabel(MenuRowGame) != "< no content >" {
		t.Errorf("game row label = %q", m.rowLabel(MenuRowGame))
	}
}

func TestMenuSelectGame(t *testing.T) {
	m, _ := newTestMenu([]string{"Halo 3", "Gears of War", "Fable II"})
	m.SelectGame("Gears of War")
	if m.SelectedGame() != "Gears of War" {
		t.Errorf("SelectGame did not move the selector, got %q", m.SelectedGame())
	}
	m.SelectGame("Missing Title")
	if m.SelectedGame() != "Gears of War" {
		t.Error("SelectGame with unknown name should keep current selection")
	}
}
