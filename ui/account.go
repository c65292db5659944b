package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/api"
	"smartcampus/pkg/model"
)

func (a *App) showAccountMenu() {
	user := a.provider.CurrentUser()
	if user == nil {
		return
	}

	details := widget.NewForm(
		widget.NewFormItem("Name", widget.NewLabel(user.FullName)),
		widget.NewFormItem("Email", widget.NewLabel(user.Email)),
		widget.NewFormItem("Role", widget.NewLabel(user.Role.String())),
	)
	if user.PhoneNumber != "" {
		details.Append("Phone", widget.NewLabel(user.PhoneNumber))
	}
	if !user.CreatedAt.IsZero() {
		details.Append("Member since", widget.NewLabel(user.CreatedAt.Local().Format("2 January 2006")))
	}

	editBtn := widget.NewButton("Update details", func() { a.showUpdateDetailsDialog(user) })
	passwordBtn := widget.NewButton("Change password", a.showChangePasswordDialog)
	avatarBtn := widget.NewButton("Upload avatar", a.showUploadAvatarDialog)
	removeAvatarBtn := widget.NewButton("Remove avatar", a.removeAvatar)
	if user.AvatarURL == "" {
		removeAvatarBtn.Disable()
	}
	deleteBtn := widget.NewButton("Delete account", a.showDeleteAccountDialog)
	deleteBtn.Importance = widget.DangerImportance

	content := container.NewVBox(
		details,
		widget.NewSeparator(),
		editBtn,
		passwordBtn,
		avatarBtn,
		removeAvatarBtn,
		widget.NewSeparator(),
		deleteBtn,
	)
	d := dialog.NewCustom("My Account", "Close", content, a.window)
	d.Resize(fyne.NewSize(380, 420))
	d.Show()
}

func (a *App) showUpdateDetailsDialog(user *model.User) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(user.FullName)
	emailEntry := widget.NewEntry()
	emailEntry.SetText(user.Email)

	items := []*widget.FormItem{
		widget.NewFormItem("Full name", nameEntry),
		widget.NewFormItem("Email", emailEntry),
	}
	dialog.ShowForm("Update details", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		name := strings.TrimSpace(nameEntry.Text)
		email := strings.TrimSpace(emailEntry.Text)
		if err := model.ValidateFullName(name); err != nil {
			a.showNotice(false, err.Error())
			return
		}
		if err := model.ValidateEmail(email); err != nil {
			a.showNotice(false, err.Error())
			return
		}
		go func() {
			_, err := a.api.UpdateAccount(context.Background(), name, email)
			if err != nil {
				fyne.Do(func() { a.showNotice(false, api.UserMessage(err)) })
				return
			}
			a.provider.RefreshUser(context.Background())
			fyne.Do(func() { a.showNotice(true, "Account updated") })
		}()
	}, a.window)
}

func (a *App) showChangePasswordDialog() {
	oldEntry := widget.NewPasswordEntry()
	newEntry := widget.NewPasswordEntry()

	items := []*widget.FormItem{
		widget.NewFormItem("Current password", oldEntry),
		widget.NewFormItem("New password", newEntry),
	}
	dialog.ShowForm("Change password", "Change", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := model.ValidatePassword(newEntry.Text); err != nil {
			a.showNotice(false, err.Error())
			return
		}
		go func() {
			err := a.api.ChangePassword(context.Background(), oldEntry.Text, newEntry.Text)
			fyne.Do(func() {
				if err != nil {
					a.showNotice(false, api.UserMessage(err))
					return
				}
				a.showNotice(true, "Password changed")
			})
		}()
	}, a.window)
}

func (a *App) showUploadAvatarDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		filename := reader.URI().Name()
		go func() {
			defer reader.Close() //nolint:errcheck
			uploadErr := a.api.UploadAvatar(context.Background(), filename, reader)
			if uploadErr != nil {
				fyne.Do(func() { a.showNotice(false, api.UserMessage(uploadErr)) })
				return
			}
			a.provider.RefreshUser(context.Background())
			fyne.Do(func() { a.showNotice(true, "Avatar updated") })
		}()
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fd.Show()
}

func (a *App) removeAvatar() {
	go func() {
		err := a.api.RemoveAvatar(context.Background())
		if err != nil {
			fyne.Do(func() { a.showNotice(false, api.UserMessage(err)) })
			return
		}
		a.provider.RefreshUser(context.Background())
		fyne.Do(func() { a.showNotice(true, "Avatar removed") })
	}()
}

func (a *App) showDeleteAccountDialog() {
	dialog.ShowConfirm("Delete account",
		"This permanently deletes your account and bookings. Continue?",
		func(ok bool) {
			if !ok {
				return
			}
			go func() {
				err := a.api.DeleteAccount(context.Background())
				if err != nil {
					fyne.Do(func() { a.showNotice(false, api.UserMessage(err)) })
					return
				}
				a.engine.Clear()
				a.provider.Logout()
			}()
		}, a.window)
}
