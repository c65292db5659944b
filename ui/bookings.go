package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/api"
	"smartcampus/pkg/datastore"
	"smartcampus/pkg/model"
	"smartcampus/pkg/nav"
)

const bookingTimeLayout = "2006-01-02 15:04"

// bookingsView shows the personal list with cancel actions, or the admin
// list with approve/reject actions, depending on the role.
func (a *App) bookingsView(user *model.User) fyne.CanvasObject {
	scope := scopeFor(user)
	go a.engine.RefreshBookings(context.Background(), scope)

	bookings := a.engine.Bookings(scope)

	rows := container.NewVBox()
	for _, b := range bookings {
		rows.Add(a.bookingRow(user, b))
	}
	if len(bookings) == 0 {
		rows.Add(container.NewCenter(widget.NewLabel("No bookings yet")))
	}

	title := "My Bookings"
	if scope == datastore.ScopeAll {
		title = "All Bookings"
	}
	header := container.NewHBox(
		widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
	)
	if nav.HasPermission(user.Role, nav.PermCancelOwnBooking) {
		header.Add(widget.NewButtonWithIcon("New Booking", theme.ContentAddIcon(), a.showCreateBookingDialog))
	}

	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(rows))
}

func (a *App) bookingRow(user *model.User, b model.Booking) fyne.CanvasObject {
	name := widget.NewLabel(b.RoomName())
	name.TextStyle = fyne.TextStyle{Bold: true}

	window := fmt.Sprintf("%s to %s",
		b.StartTime.Local().Format(bookingTimeLayout),
		b.EndTime.Local().Format("15:04"))
	detail := widget.NewLabel(window)
	detail.Importance = widget.LowImportance

	status := widget.NewLabel(strings.ToUpper(string(b.Status)))
	switch b.Status {
	case model.BookingApproved:
		status.Importance = widget.SuccessImportance
	case model.BookingRejected, model.BookingCancelled:
		status.Importance = widget.DangerImportance
	default:
		status.Importance = widget.WarningImportance
	}

	row := container.NewHBox(name, detail, status, layout.NewSpacer())

	if b.Purpose != "" {
		purpose := widget.NewLabel(b.Purpose)
		purpose.Importance = widget.LowImportance
		row.Add(purpose)
	}

	id := b.ID
	if nav.CanDecide(user, &b) {
		approve := widget.NewButtonWithIcon("Approve", theme.ConfirmIcon(), func() {
			go a.engine.DecideBooking(context.Background(), id, model.BookingApproved)
		})
		approve.Importance = widget.HighImportance
		reject := widget.NewButtonWithIcon("Reject", theme.CancelIcon(), func() {
			go a.engine.DecideBooking(context.Background(), id, model.BookingRejected)
		})
		row.Add(approve)
		row.Add(reject)
	}
	if nav.CanCancel(user, &b) {
		cancel := widget.NewButtonWithIcon("Cancel", theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Cancel booking",
				"Cancel the booking for "+b.RoomName()+"?", func(ok bool) {
					if ok {
						go a.engine.CancelBooking(context.Background(), id)
					}
				}, a.window)
		})
		row.Add(cancel)
	}

	return row
}

func (a *App) showCreateBookingDialog() {
	rooms := a.engine.Rooms()
	if len(rooms) == 0 {
		// The rooms snapshot may not be loaded yet on first use.
		go func() {
			if a.engine.RefreshRooms(context.Background()) {
				fyne.Do(a.showCreateBookingDialog)
			}
		}()
		return
	}

	names := make([]string, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
	}
	roomSelect := widget.NewSelect(names, nil)
	roomSelect.SetSelected(names[0])

	startEntry := widget.NewEntry()
	startEntry.SetPlaceHolder("2026-09-01 09:00")
	startEntry.SetText(time.Now().Add(time.Hour).Truncate(time.Hour).Format(bookingTimeLayout))
	endEntry := widget.NewEntry()
	endEntry.SetPlaceHolder("2026-09-01 11:00")
	endEntry.SetText(time.Now().Add(2 * time.Hour).Truncate(time.Hour).Format(bookingTimeLayout))
	purposeEntry := widget.NewEntry()
	purposeEntry.SetPlaceHolder("Study group")

	items := []*widget.FormItem{
		widget.NewFormItem("Room", roomSelect),
		widget.NewFormItem("Start", startEntry),
		widget.NewFormItem("End", endEntry),
		widget.NewFormItem("Purpose", purposeEntry),
	}

	d := dialog.NewForm("New Booking", "Request", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		var roomID string
		for _, r := range rooms {
			if r.Name == roomSelect.Selected {
				roomID = r.ID
				break
			}
		}
		start, err := time.ParseInLocation(bookingTimeLayout, strings.TrimSpace(startEntry.Text), time.Local)
		if err != nil {
			a.showNotice(false, "Start must look like 2026-09-01 09:00")
			return
		}
		end, err := time.ParseInLocation(bookingTimeLayout, strings.TrimSpace(endEntry.Text), time.Local)
		if err != nil {
			a.showNotice(false, "End must look like 2026-09-01 11:00")
			return
		}
		if !end.After(start) {
			a.showNotice(false, "End must be after start")
			return
		}

		req := api.CreateBookingRequest{
			RoomID:       roomID,
			ResourceType: "Room",
			StartTime:    start.UTC(),
			EndTime:      end.UTC(),
			Purpose:      strings.TrimSpace(purposeEntry.Text),
		}
		go a.engine.CreateBooking(context.Background(), req)
	}, a.window)
	d.Resize(fyne.NewSize(420, 300))
	d.Show()
}
