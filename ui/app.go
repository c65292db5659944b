// Package ui provides the Fyne-based GUI for the Smart Campus client.
package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/api"
	"smartcampus/pkg/client"
	"smartcampus/pkg/datastore"
	"smartcampus/pkg/model"
	"smartcampus/pkg/nav"
	"smartcampus/pkg/session"
	"smartcampus/pkg/version"
)

// App is the main GUI application.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	provider *session.Provider
	engine   *client.Engine
	api      *api.Client
	settings *client.Settings

	// currentEntry is the sidebar destination being shown; re-resolved
	// through the guard on every navigation.
	currentEntry string

	// registering switches the unauthenticated screen between the login
	// and the registration form.
	registering bool

	statusLabel *widget.Label
}

// NewApp creates the GUI application.
func NewApp(provider *session.Provider, engine *client.Engine, apiClient *api.Client, settings *client.Settings) *App {
	a := &App{
		fyneApp:      app.NewWithID("io.smartcampus.client"),
		provider:     provider,
		engine:       engine,
		api:          apiClient,
		settings:     settings,
		currentEntry: nav.EntryDashboard,
	}
	a.window = a.fyneApp.NewWindow("Smart Campus")
	a.window.Resize(fyne.NewSize(980, 640))
	a.window.SetMaster()
	return a
}

// Run starts the GUI application (blocks).
func (a *App) Run() {
	a.bindEvents()
	a.render()

	go func() {
		a.engine.LoadCached()
		a.provider.Initialize(context.Background())
	}()

	a.window.ShowAndRun()
}

func (a *App) bindEvents() {
	a.provider.OnChange = func() {
		fyne.Do(func() { a.render() })
	}
	a.provider.OnNotice = func(success bool, message string) {
		fyne.Do(func() { a.showNotice(success, message) })
	}
	a.engine.OnNotice = func(success bool, message string) {
		fyne.Do(func() { a.showNotice(success, message) })
	}
	a.engine.OnRoomsUpdate = func(_ []model.Room) {
		fyne.Do(func() {
			if a.currentEntry == nav.EntryRooms {
				a.render()
			}
		})
	}
	a.engine.OnBookingsUpdate = func(_ string, _ []model.Booking) {
		fyne.Do(func() {
			if a.currentEntry == nav.EntryBookings {
				a.render()
			}
		})
	}
}

func (a *App) showNotice(success bool, message string) {
	if success {
		dialog.ShowInformation("Smart Campus", message, a.window)
	} else {
		dialog.ShowError(fmt.Errorf("%s", message), a.window)
	}
}

// navigate switches the shell to a sidebar entry and re-renders through
// the guard.
func (a *App) navigate(entry string) {
	a.currentEntry = entry
	a.render()
}

// render resolves the guard and swaps the window content accordingly.
func (a *App) render() {
	switch a.provider.Guard() {
	case session.GuardLoading:
		a.window.SetContent(a.loadingScreen())
	case session.GuardUnauthenticated:
		if a.registering {
			a.window.SetContent(a.registerScreen())
		} else {
			a.window.SetContent(a.loginScreen())
		}
	case session.GuardAuthenticated:
		a.window.SetContent(a.shell())
	}
}

func (a *App) loadingScreen() fyne.CanvasObject {
	spinner := widget.NewProgressBarInfinite()
	label := widget.NewLabelWithStyle("Checking session...", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	return container.NewCenter(container.NewVBox(label, spinner))
}

// shell is the authenticated frame: sidebar entries from the user's role,
// the selected view in the middle, account controls on top.
func (a *App) shell() fyne.CanvasObject {
	user := a.provider.CurrentUser()
	entries := nav.EntriesFor(user)

	// The current entry can become invisible after a role change.
	visible := false
	for _, e := range entries {
		if e.ID == a.currentEntry {
			visible = true
			break
		}
	}
	if !visible {
		a.currentEntry = nav.EntryDashboard
	}

	var buttons []fyne.CanvasObject
	for _, e := range entries {
		entry := e
		btn := widget.NewButtonWithIcon(entry.Title, entryIcon(entry.ID), func() {
			a.navigate(entry.ID)
		})
		if entry.ID == a.currentEntry {
			btn.Importance = widget.HighImportance
		}
		buttons = append(buttons, btn)
	}
	sidebar := container.NewVBox(buttons...)

	accountBtn := widget.NewButtonWithIcon(user.FullName, theme.AccountIcon(), a.showAccountMenu)
	logoutBtn := widget.NewButtonWithIcon("Logout", theme.LogoutIcon(), func() {
		a.engine.Clear()
		a.provider.Logout()
	})
	topBar := container.NewHBox(
		widget.NewLabelWithStyle("Smart Campus", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		accountBtn,
		logoutBtn,
	)

	a.statusLabel = widget.NewLabel(user.Email + " (" + user.Role.String() + ")")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}
	versionLabel := widget.NewLabel(version.String())
	versionLabel.Importance = widget.LowImportance
	statusBar := container.NewHBox(a.statusLabel, layout.NewSpacer(), versionLabel)

	var view fyne.CanvasObject
	switch a.currentEntry {
	case nav.EntryRooms:
		view = a.roomsView(user)
	case nav.EntryBookings:
		view = a.bookingsView(user)
	default:
		view = a.dashboardView(user)
	}

	split := container.NewHSplit(sidebar, view)
	split.SetOffset(0.18)

	return container.NewBorder(topBar, statusBar, nil, nil, split)
}

func entryIcon(id string) fyne.Resource {
	switch id {
	case nav.EntryRooms:
		return theme.HomeIcon()
	case nav.EntryBookings:
		return theme.ListIcon()
	default:
		return theme.ComputerIcon()
	}
}

// scopeFor picks which booking list the bookings view shows.
func scopeFor(user *model.User) string {
	if nav.HasPermission(user.Role, nav.PermViewAllBookings) {
		return datastore.ScopeAll
	}
	return datastore.ScopeMine
}
