package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/services"
)

var apptColumns = []string{"Date", "Time", "Doctor", "Patient", "Department", "Status", "Reason"}

// appointmentsPane is one appointment table plus its fetch/reload
// plumbing. The admin, staff and patient consoles differ only in which
// endpoint feeds it and which actions sit underneath.
type appointmentsPane struct {
	ui    *DashboardUI
	fetch func(context.Context) ([]types.Appointment, error)

	appts    []types.Appointment
	selected int

	table  *widget.Table
	status *widget.Label
}

func (ui *DashboardUI) newAppointmentsPane(fetch func(context.Context) ([]types.Appointment, error)) *appointmentsPane {
	p := &appointmentsPane{ui: ui, fetch: fetch, selected: -1}
	p.status = widget.NewLabel("Loading appointments...")

	p.table = widget.NewTable(
		func() (int, int) { return len(p.appts), len(apptColumns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(p.cellText(id.Row, id.Col))
		},
	)
	p.table.ShowHeaderRow = true
	p.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	p.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row == -1 && id.Col >= 0 && id.Col < len(apptColumns) {
			o.(*widget.Label).SetText(apptColumns[id.Col])
		}
	}
	p.table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 && id.Row < len(p.appts) {
			p.selected = id.Row
		}
	}
	for i := range apptColumns {
		p.table.SetColumnWidth(i, 120)
	}

	return p
}

func (p *appointmentsPane) cellText(row, col int) string {
	if row < 0 || row >= len(p.appts) {
		return ""
	}
	a := p.appts[row]
	switch col {
	case 0:
		return a.Date
	case 1:
		return a.Time
	case 2:
		return a.Doctor
	case 3:
		return a.Patient
	case 4:
		return a.Department
	case 5:
		return string(a.Status)
	case 6:
		return a.Reason
	}
	return ""
}

// reload re-fetches the pane's appointments. The apply step is guarded
// so a response landing after navigation is dropped.
func (p *appointmentsPane) reload() {
	apply := p.ui.guard()
	p.status.SetText("Loading appointments...")
	go func() {
		appts, err := p.fetch(context.Background())
		apply(func() {
			if err != nil {
				p.status.SetText(requestErrorMessage(err))
				return
			}
			p.appts = appts
			p.selected = -1
			if len(appts) == 0 {
				p.status.SetText("No appointments found.")
			} else {
				p.status.SetText("")
			}
			p.table.UnselectAll()
			p.table.Refresh()
		})
	}()
}

func (p *appointmentsPane) selectedAppointment() (types.Appointment, bool) {
	if p.selected < 0 || p.selected >= len(p.appts) {
		return types.Appointment{}, false
	}
	return p.appts[p.selected], true
}

// allAppointmentsView is the admin console's appointment table.
func (ui *DashboardUI) allAppointmentsView() fyne.CanvasObject {
	pane := ui.newAppointmentsPane(func(ctx context.Context) ([]types.Appointment, error) {
		return ui.appointments.List(ctx, nil)
	})
	pane.reload()

	refresh := widget.NewButton("Refresh", pane.reload)
	header := widget.NewCard("Appointments", "All departments", container.NewHBox(refresh, pane.status))
	return container.NewBorder(header, nil, nil, nil, pane.table)
}

// doctorAppointmentsView is the staff console's schedule, with a
// completion action on the selected row.
func (ui *DashboardUI) doctorAppointmentsView() fyne.CanvasObject {
	pane := ui.newAppointmentsPane(ui.appointments.ListForDoctor)
	pane.reload()

	var complete *widget.Button
	complete = widget.NewButton("Mark Completed", func() {
		appt, ok := pane.selectedAppointment()
		if !ok {
			dialog.ShowInformation("My Appointments", "Select an appointment first.", ui.Win)
			return
		}
		complete.Disable()
		apply := ui.guard()
		go func() {
			_, err := ui.appointments.UpdateStatus(context.Background(), appt.ID, types.StatusCompleted)
			apply(func() {
				complete.Enable()
				if err != nil {
					dialog.ShowError(errors.New(requestErrorMessage(err)), ui.Win)
					return
				}
				pane.reload()
			})
		}()
	})

	refresh := widget.NewButton("Refresh", pane.reload)
	header := widget.NewCard("My Appointments", "", container.NewHBox(refresh, complete, pane.status))
	return container.NewBorder(header, nil, nil, nil, pane.table)
}

// patientAppointmentsView lists the patient's own bookings and lets
// them cancel the selected one.
func (ui *DashboardUI) patientAppointmentsView() fyne.CanvasObject {
	pane := ui.newAppointmentsPane(ui.appointments.ListForPatient)
	pane.reload()

	var cancel *widget.Button
	cancel = widget.NewButton("Cancel Appointment", func() {
		appt, ok := pane.selectedAppointment()
		if !ok {
			dialog.ShowInformation("My Appointments", "Select an appointment first.", ui.Win)
			return
		}
		dialog.ShowConfirm("Cancel Appointment", "Cancel this appointment?", func(confirmed bool) {
			if !confirmed {
				return
			}
			cancel.Disable()
			apply := ui.guard()
			go func() {
				err := ui.appointments.Cancel(context.Background(), appt.ID)
				apply(func() {
					cancel.Enable()
					if err != nil {
						dialog.ShowError(errors.New(requestErrorMessage(err)), ui.Win)
						return
					}
					pane.reload()
				})
			}()
		}, ui.Win)
	})

	refresh := widget.NewButton("Refresh", pane.reload)
	header := widget.NewCard("My Appointments", "", container.NewHBox(refresh, cancel, pane.status))
	return container.NewBorder(header, nil, nil, nil, pane.table)
}

// requestErrorMessage renders a pipeline error as a single line,
// keeping connectivity problems distinguishable from rejections.
func requestErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNetwork):
		return "Could not reach the server. Check your connection."
	case errors.Is(err, services.ErrForbidden):
		return "You do not have permission to do that."
	default:
		return err.Error()
	}
}
