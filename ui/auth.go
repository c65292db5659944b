package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"smartcampus/pkg/api"
	"smartcampus/pkg/model"
)

func (a *App) loginScreen() fyne.CanvasObject {
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("you@campus.edu")
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	form := widget.NewForm(
		widget.NewFormItem("Email", emailEntry),
		widget.NewFormItem("Password", passwordEntry),
	)
	form.SubmitText = "Sign In"
	form.OnSubmit = func() {
		email := strings.TrimSpace(emailEntry.Text)
		password := passwordEntry.Text
		if email == "" || password == "" {
			a.showNotice(false, "Email and password are required")
			return
		}
		go func() {
			if a.provider.Login(context.Background(), email, password) {
				fyne.Do(func() { a.render() })
			}
		}()
	}
	passwordEntry.OnSubmitted = func(string) { form.OnSubmit() }

	registerBtn := widget.NewButton("Create an account", func() {
		a.registering = true
		a.render()
	})
	registerBtn.Importance = widget.LowImportance
	forgotBtn := widget.NewButton("Forgot password?", a.showForgotPasswordDialog)
	forgotBtn.Importance = widget.LowImportance

	title := widget.NewLabelWithStyle("Smart Campus", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Sign in to book rooms and resources", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	card := container.NewVBox(title, subtitle, form, registerBtn, forgotBtn)
	return container.NewCenter(container.NewGridWrap(fyne.NewSize(380, 340), card))
}

func (a *App) registerScreen() fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Full name")
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("you@campus.edu")
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("At least 6 characters")

	roleSelect := widget.NewSelect([]string{
		model.RoleStudent.String(),
		model.RoleFaculty.String(),
	}, nil)
	roleSelect.SetSelected(model.RoleStudent.String())

	form := widget.NewForm(
		widget.NewFormItem("Full name", nameEntry),
		widget.NewFormItem("Email", emailEntry),
		widget.NewFormItem("Password", passwordEntry),
		widget.NewFormItem("Role", roleSelect),
	)
	form.SubmitText = "Create Account"
	form.OnSubmit = func() {
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
		if err := model.ValidatePassword(passwordEntry.Text); err != nil {
			a.showNotice(false, err.Error())
			return
		}

		req := api.RegisterRequest{
			FullName: name,
			Email:    email,
			Password: passwordEntry.Text,
			Role:     roleSelect.Selected,
		}
		go func() {
			if a.provider.Register(context.Background(), req) {
				fyne.Do(func() {
					a.registering = false
					a.render()
				})
			}
		}()
	}

	backBtn := widget.NewButton("Back to sign in", func() {
		a.registering = false
		a.render()
	})
	backBtn.Importance = widget.LowImportance

	title := widget.NewLabelWithStyle("Create your account", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	card := container.NewVBox(title, form, backBtn)
	return container.NewCenter(container.NewGridWrap(fyne.NewSize(400, 380), card))
}

func (a *App) showForgotPasswordDialog() {
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("you@campus.edu")

	items := []*widget.FormItem{widget.NewFormItem("Email", emailEntry)}
	dialog.ShowForm("Reset password", "Send reset link", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		email := strings.TrimSpace(emailEntry.Text)
		if email == "" {
			return
		}
		go func() {
			err := a.api.ForgotPassword(context.Background(), email)
			fyne.Do(func() {
				if err != nil {
					a.showNotice(false, api.UserMessage(err))
					return
				}
				a.showNotice(true, "Check your inbox for the reset link")
				a.showResetPasswordDialog()
			})
		}()
	}, a.window)
}

func (a *App) showResetPasswordDialog() {
	tokenEntry := widget.NewEntry()
	tokenEntry.SetPlaceHolder("Token from the email")
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("New password")

	items := []*widget.FormItem{
		widget.NewFormItem("Reset token", tokenEntry),
		widget.NewFormItem("New password", passwordEntry),
	}
	dialog.ShowForm("Choose a new password", "Reset", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		token := strings.TrimSpace(tokenEntry.Text)
		if token == "" {
			return
		}
		if err := model.ValidatePassword(passwordEntry.Text); err != nil {
			a.showNotice(false, err.Error())
			return
		}
		go func() {
			err := a.api.ResetPassword(context.Background(), token, passwordEntry.Text)
			fyne.Do(func() {
				if err != nil {
					a.showNotice(false, api.UserMessage(err))
					return
				}
				a.showNotice(true, "Password updated. Please login.")
			})
		}()
	}, a.window)
}
