package ui

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/model"
	"smartcampus/pkg/nav"
)

// dashboardView renders the stats cards. Admins see campus-wide aggregates,
// everyone else their own booking summary. The numbers arrive async; the
// view shows placeholders until the fetch lands.
func (a *App) dashboardView(user *model.User) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("Welcome back, "+user.FullName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	body := container.NewVBox(widget.NewProgressBarInfinite())
	content := container.NewVBox(heading, body)

	if nav.HasPermission(user.Role, nav.PermViewAllBookings) {
		go func() {
			stats, err := a.engine.AdminDashboard(context.Background())
			fyne.Do(func() {
				body.Objects = nil
				if err != nil {
					body.Add(widget.NewLabel("Dashboard unavailable: " + err.Error()))
				} else {
					body.Add(adminStatsCards(stats))
				}
				body.Refresh()
			})
		}()
	} else {
		go func() {
			stats, err := a.engine.MyStats(context.Background())
			fyne.Do(func() {
				body.Objects = nil
				if err != nil {
					body.Add(widget.NewLabel("Stats unavailable: " + err.Error()))
				} else {
					body.Add(userStatsCards(stats))
				}
				body.Refresh()
			})
		}()
	}

	return container.NewVScroll(content)
}

func statCard(title string, value int) fyne.CanvasObject {
	num := widget.NewLabelWithStyle(strconv.Itoa(value), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return widget.NewCard(title, "", num)
}

func adminStatsCards(stats *model.AdminStats) fyne.CanvasObject {
	overview := container.NewGridWithColumns(2,
		statCard("Total bookings", stats.Overview.Total),
		statCard("Today", stats.Overview.Today),
	)
	summary := container.NewGridWithColumns(4,
		statCard("Pending", stats.StatusSummary.Pending),
		statCard("Approved", stats.StatusSummary.Approved),
		statCard("Rejected", stats.StatusSummary.Rejected),
		statCard("Cancelled", stats.StatusSummary.Cancelled),
	)

	sections := container.NewVBox(overview, summary)

	if len(stats.TopRooms) > 0 {
		rows := container.NewVBox()
		for i, room := range stats.TopRooms {
			rows.Add(widget.NewLabel(fmt.Sprintf("%d. %s (%s): %d bookings",
				i+1, room.RoomName, room.Location, room.TotalBookings)))
		}
		sections.Add(widget.NewCard("Most booked rooms", "", rows))
	}
	return sections
}

func userStatsCards(stats *model.UserStats) fyne.CanvasObject {
	return container.NewGridWithColumns(4,
		statCard("Total", stats.Total),
		statCard("Approved", stats.Approved),
		statCard("Pending", stats.Pending),
		statCard("Declined", stats.Declined()),
	)
}
