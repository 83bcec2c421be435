package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/medease/desktop/internal/auth"
	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/services"
)

// NewLoginWindow creates the login window. onSuccess receives the
// authenticated profile so the caller can open the role's home view.
func NewLoginWindow(a fyne.App, svc auth.Service, onSuccess func(types.UserProfile)) fyne.Window {
	win := a.NewWindow("MedEase — Sign In")

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	statusLabel := widget.NewLabel("")
	statusLabel.Wrapping = fyne.TextWrapWord

	var loginButton *widget.Button
	loginButton = widget.NewButton("Sign In", func() {
		// One attempt at a time; the button stays disabled for the
		// duration of the request.
		loginButton.Disable()
		statusLabel.SetText("Signing in...")

		email := emailEntry.Text
		password := passwordEntry.Text

		go func() {
			profile, err := svc.Login(context.Background(), email, password)
			fyne.Do(func() {
				loginButton.Enable()
				if err != nil {
					statusLabel.SetText(loginErrorMessage(err))
					var ve *services.ValidationError
					if !errors.As(err, &ve) {
						dialog.ShowError(err, win)
					}
					return
				}
				statusLabel.SetText("")
				onSuccess(profile)
				win.Close()
			})
		}()
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("MedEase", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Please sign in to continue"),
		emailEntry,
		passwordEntry,
		loginButton,
		statusLabel,
	)

	win.SetContent(form)
	win.Resize(fyne.NewSize(320, 240))
	win.SetFixedSize(true)
	win.CenterOnScreen()
	return win
}

// loginErrorMessage picks the user-facing line for a failed sign-in.
// Connectivity problems are told apart from rejections so the user
// knows to check their network rather than their password.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNetwork):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, services.ErrMalformedResponse):
		return "Sign-in failed: the server response was incomplete."
	default:
		return err.Error()
	}
}
