package tray

import (
	"fmt"
	"log"

	"github.com/getlantern/systray"

	"github.com/streakbadge-io/streakbadge/internal/widget"
)

// scalePresets are the zoom levels offered in the menu.
var scalePresets = [6]int{100, 150, 200, 300, 400, 500}

var (
	controller Controller
	onStart    func()
	onExit     func()

	streakItem  *systray.MenuItem
	updatedItem *systray.MenuItem

	scaleMenu  *systray.MenuItem
	scaleItems [len(scalePresets)]*systray.MenuItem

	altTemplateItem *systray.MenuItem
	alwaysOnTopItem *systray.MenuItem
	loggingItem     *systray.MenuItem
	autostartItem   *systray.MenuItem

	refreshItem *systray.MenuItem
	quitItem    *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready; onExitFn when it exits.
func Run(c Controller, onStartFn, onExitFn func()) {
	controller = c
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip("StreakBadge")

	header := systray.AddMenuItem("StreakBadge", "")
	header.Disable()

	streakItem = systray.AddMenuItem("Streak: —", "")
	streakItem.Disable()
	updatedItem = systray.AddMenuItem("Updated: never", "")
	updatedItem.Disable()

	systray.AddSeparator()

	scaleMenu = systray.AddMenuItem("Scale", "Badge size")
	for i, pct := range scalePresets {
		scaleItems[i] = scaleMenu.AddSubMenuItemCheckbox(fmt.Sprintf("%d%%", pct), "", false)
	}

	altTemplateItem = systray.AddMenuItemCheckbox("Alternative template", "Force the alternate badge look", false)
	alwaysOnTopItem = systray.AddMenuItemCheckbox("Always on top", "Keep the badge above other windows", false)
	loggingItem = systray.AddMenuItemCheckbox("Diagnostic logging", "Write a session log file", false)
	autostartItem = systray.AddMenuItemCheckbox("Start at login", "Launch the badge when you log in", false)

	systray.AddSeparator()

	refreshItem = systray.AddMenuItem("Refresh now", "Poll the streak immediately")
	quitItem = systray.AddMenuItem("Quit", "Close the badge")

	if onStart != nil {
		onStart()
	}
	if controller != nil {
		UpdateStatus(controller.Snapshot())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-scaleItems[0].ClickedCh:
			setScale(0)
		case <-scaleItems[1].ClickedCh:
			setScale(1)
		case <-scaleItems[2].ClickedCh:
			setScale(2)
		case <-scaleItems[3].ClickedCh:
			setScale(3)
		case <-scaleItems[4].ClickedCh:
			setScale(4)
		case <-scaleItems[5].ClickedCh:
			setScale(5)

		case <-altTemplateItem.ClickedCh:
			controller.Post(widget.ToggleTemplateEvent{})
		case <-alwaysOnTopItem.ClickedCh:
			controller.Post(widget.ToggleAlwaysOnTopEvent{})
		case <-loggingItem.ClickedCh:
			controller.Post(widget.ToggleLoggingEvent{})
		case <-autostartItem.ClickedCh:
			controller.Post(widget.ToggleAutostartEvent{})

		case <-refreshItem.ClickedCh:
			controller.Post(widget.RefreshEvent{})

		case <-quitItem.ClickedCh:
			log.Println("tray: quit requested")
			controller.RequestExit()
			systray.Quit()
		}
	}
}

func setScale(slot int) {
	controller.Post(widget.SetScaleEvent{Percent: scalePresets[slot]})
}

// UpdateStatus refreshes the menu from a widget state snapshot. Safe to call
// from any goroutine once the tray is ready.
func UpdateStatus(st widget.State) {
	if streakItem == nil {
		return
	}

	if st.Sample.Available {
		streakItem.SetTitle(fmt.Sprintf("Streak: %d", st.Sample.Streak))
	} else {
		streakItem.SetTitle("Streak: —")
	}
	if st.Sample.SampledAt.IsZero() {
		updatedItem.SetTitle("Updated: never")
	} else {
		updatedItem.SetTitle("Updated: " + st.Sample.SampledAt.Format("15:04:05"))
	}

	for i, pct := range scalePresets {
		if st.Settings.ScalePercent == pct {
			scaleItems[i].Check()
		} else {
			scaleItems[i].Uncheck()
		}
	}

	setChecked(altTemplateItem, st.Settings.UseAlternateTemplate)
	setChecked(alwaysOnTopItem, st.Settings.AlwaysOnTop)
	setChecked(loggingItem, st.Settings.LoggingEnabled)
	setChecked(autostartItem, st.Settings.Autostart)

	if st.Sample.Available {
		systray.SetTooltip(fmt.Sprintf("StreakBadge — %d day streak", st.Sample.Streak))
	} else {
		systray.SetTooltip("StreakBadge — streak unavailable")
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}
