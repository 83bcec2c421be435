package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/medease/desktop/core"
	"github.com/medease/desktop/internal/auth"
	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/services"
)

// DashboardUI is the shell shared by the admin, staff and patient
// consoles. The navigation rail and the landing view are derived from
// the resolved role; the views themselves only render what the
// services hand them.
type DashboardUI struct {
	App fyne.App
	Win fyne.Window

	session      auth.Service
	appointments *services.AppointmentService
	directory    *services.DirectoryService

	profile types.UserProfile
	role    types.Role

	navItems    []core.NavItem
	navList     *widget.List
	content     *fyne.Container
	statusLabel *widget.Label

	currentPath string
	// gen guards against stale responses: a fetch started for a view
	// that has since been navigated away from must not touch the UI.
	gen int
	// selecting suppresses the OnSelected callback fired by our own
	// navList.Select call, which would otherwise re-enter Navigate and
	// build the view a second time.
	selecting bool

	onLogout func()
}

// NewDashboard builds the console window for the resolved profile.
// onLogout runs after the session has been torn down.
func NewDashboard(a fyne.App, session auth.Service, appointments *services.AppointmentService,
	directory *services.DirectoryService, profile types.UserProfile, onLogout func()) *DashboardUI {

	ui := &DashboardUI{
		App:          a,
		session:      session,
		appointments: appointments,
		directory:    directory,
		profile:      profile,
		role:         types.ParseRole(profile.Role),
		onLogout:     onLogout,
	}
	ui.navItems = core.NavigationFor(ui.role)

	ui.Win = a.NewWindow("MedEase")
	ui.Win.Resize(fyne.NewSize(900, 600))

	ui.setupUI()
	ui.Navigate(core.HomeRouteFor(ui.role))

	return ui
}

// setupUI builds the navigation rail and the content area.
func (ui *DashboardUI) setupUI() {
	ui.content = container.NewStack()
	ui.statusLabel = widget.NewLabel("")

	ui.navList = widget.NewList(
		func() int { return len(ui.navItems) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.HomeIcon()), widget.NewLabel(""))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			box := o.(*fyne.Container)
			box.Objects[0].(*widget.Icon).SetResource(iconFor(ui.navItems[i].Icon))
			box.Objects[1].(*widget.Label).SetText(ui.navItems[i].Label)
		},
	)
	ui.navList.OnSelected = func(i widget.ListItemID) {
		ui.Navigate(ui.navItems[i].Path)
	}

	userLabel := widget.NewLabelWithStyle(ui.profile.FullName(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	logoutButton := widget.NewButtonWithIcon("Log Out", theme.LogoutIcon(), ui.logout)

	rail := container.NewBorder(userLabel, logoutButton, nil, nil, ui.navList)
	body := container.NewBorder(nil, ui.statusLabel, nil, nil, ui.content)

	split := container.NewHSplit(rail, body)
	split.SetOffset(0.22)
	ui.Win.SetContent(split)
}

// Navigate switches the content area to the view behind path and syncs
// the active highlight in the rail. The role's home route lands on its
// first navigation entry.
func (ui *DashboardUI) Navigate(path string) {
	if len(ui.navItems) > 0 && path == core.HomeRouteFor(ui.role) {
		path = ui.navItems[0].Path
	}
	// Selecting the already-active rail entry re-enters here; nothing
	// to do in that case.
	if ui.selecting || path == ui.currentPath {
		return
	}
	ui.currentPath = path
	ui.gen++

	for i, item := range ui.navItems {
		if core.IsActive(item, ui.currentPath) {
			ui.selecting = true
			ui.navList.Select(i)
			ui.selecting = false
			break
		}
	}

	ui.setView(ui.viewFor(path))
}

// viewFor routes a path to its view. Unmatched paths land on the
// role's first navigation entry, or an empty notice for unknown roles.
func (ui *DashboardUI) viewFor(path string) fyne.CanvasObject {
	switch path {
	case "/admin", "/admin?tab=appointments":
		return ui.allAppointmentsView()
	case "/admin?tab=staff":
		return ui.staffManagementView()
	case "/admin?tab=patients":
		return ui.patientManagementView()
	case "/admin?tab=finances":
		return ui.financesView()
	case "/staff", "/staff?tab=appointments":
		return ui.doctorAppointmentsView()
	case "/staff?tab=patients":
		return ui.patientManagementView()
	case "/patient", "/patient?tab=book":
		return ui.bookingView()
	case "/patient?tab=appointments":
		return ui.patientAppointmentsView()
	default:
		return container.NewCenter(widget.NewLabel("Nothing to show for this account."))
	}
}

func (ui *DashboardUI) setView(view fyne.CanvasObject) {
	ui.content.Objects = []fyne.CanvasObject{view}
	ui.content.Refresh()
}

// guard captures the current view generation. The returned function
// runs fn on the UI thread only if no navigation happened in between,
// so a settled request for a dead view is a no-op.
func (ui *DashboardUI) guard() func(fn func()) {
	gen := ui.gen
	return func(fn func()) {
		fyne.Do(func() {
			if gen != ui.gen {
				return
			}
			fn()
		})
	}
}

// SessionExpired swaps back to the login window after the backend
// rejected the credential. Must run on the UI thread; ActiveConsole.Expire
// takes care of that for the unauthorized hook.
func (ui *DashboardUI) SessionExpired() {
	ui.statusLabel.SetText("Session expired, please log in again.")
	ui.Win.Close()
	if ui.onLogout != nil {
		ui.onLogout()
	}
}

func (ui *DashboardUI) logout() {
	go func() {
		err := ui.session.Logout()
		fyne.Do(func() {
			if err != nil {
				ui.statusLabel.SetText("Logout failed: " + err.Error())
				return
			}
			ui.Win.Close()
			if ui.onLogout != nil {
				ui.onLogout()
			}
		})
	}()
}

// iconFor maps the navigation model's symbolic icon names onto theme
// icons, keeping core free of toolkit types.
func iconFor(name string) fyne.Resource {
	switch name {
	case "calendar":
		return theme.HistoryIcon()
	case "account":
		return theme.AccountIcon()
	case "folder":
		return theme.FolderIcon()
	case "document":
		return theme.DocumentIcon()
	case "add":
		return theme.ContentAddIcon()
	default:
		return theme.HomeIcon()
	}
}
