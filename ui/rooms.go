package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/model"
	"smartcampus/pkg/nav"
)

// roomsView lists rooms from the current snapshot and kicks off a refresh.
// Admins get the create button.
func (a *App) roomsView(user *model.User) fyne.CanvasObject {
	go a.engine.RefreshRooms(context.Background())

	rooms := a.engine.Rooms()

	list := widget.NewList(
		func() int { return len(rooms) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("Room placeholder")
			name.TextStyle = fyne.TextStyle{Bold: true}
			detail := widget.NewLabel("detail")
			detail.Importance = widget.LowImportance
			return container.NewHBox(name, detail, layout.NewSpacer())
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(rooms) {
				return
			}
			r := rooms[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(r.Name)
			detail := fmt.Sprintf("%s, %s, seats %d", r.Type, r.Location, r.Capacity)
			if len(r.Features) > 0 {
				detail += ", " + strings.Join(r.Features, ", ")
			}
			row.Objects[1].(*widget.Label).SetText(detail)
		},
	)

	header := container.NewHBox(
		widget.NewLabelWithStyle("Rooms", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
	)
	if nav.HasPermission(user.Role, nav.PermManageRooms) {
		header.Add(widget.NewButtonWithIcon("New Room", theme.ContentAddIcon(), a.showCreateRoomDialog))
	}

	var placeholder fyne.CanvasObject
	if len(rooms) == 0 {
		placeholder = container.NewCenter(widget.NewLabel("No rooms yet"))
		return container.NewBorder(header, nil, nil, nil, placeholder)
	}
	return container.NewBorder(header, nil, nil, nil, list)
}

func (a *App) showCreateRoomDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Room 101")
	typeSelect := widget.NewSelect(model.RoomTypes(), nil)
	typeSelect.SetSelected(model.RoomTypeClassroom)
	capacityEntry := widget.NewEntry()
	capacityEntry.SetPlaceHolder("30")
	locationEntry := widget.NewEntry()
	locationEntry.SetPlaceHolder("Building A, floor 2")
	featuresEntry := widget.NewEntry()
	featuresEntry.SetPlaceHolder("projector, whiteboard")

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Type", typeSelect),
		widget.NewFormItem("Capacity", capacityEntry),
		widget.NewFormItem("Location", locationEntry),
		widget.NewFormItem("Features", featuresEntry),
	}

	d := dialog.NewForm("New Room", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(capacityEntry.Text))
		if err != nil {
			a.showNotice(false, "Capacity must be a number")
			return
		}
		room := model.Room{
			Name:     strings.TrimSpace(nameEntry.Text),
			Type:     typeSelect.Selected,
			Capacity: capacity,
			Location: strings.TrimSpace(locationEntry.Text),
			Features: model.ParseFeatures(featuresEntry.Text),
		}
		go a.engine.CreateRoom(context.Background(), room)
	}, a.window)
	d.Resize(fyne.NewSize(420, 320))
	d.Show()
}
