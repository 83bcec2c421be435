package ui

import (
	"context"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/medease/desktop/internal/types"
)

// staffManagementView is the admin console's doctor directory.
func (ui *DashboardUI) staffManagementView() fyne.CanvasObject {
	columns := []string{"Name", "Department", "Specialty", "Email"}
	var doctors []types.Doctor
	status := widget.NewLabel("Loading staff...")

	table := widget.NewTable(
		func() (int, int) { return len(doctors), len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row < 0 || id.Row >= len(doctors) {
				label.SetText("")
				return
			}
			d := doctors[id.Row]
			switch id.Col {
			case 0:
				label.SetText(d.FullName())
			case 1:
				label.SetText(d.Department)
			case 2:
				label.SetText(d.Specialty)
			case 3:
				label.SetText(d.Email)
			}
		},
	)
	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row == -1 && id.Col >= 0 && id.Col < len(columns) {
			o.(*widget.Label).SetText(columns[id.Col])
		}
	}
	for i := range columns {
		table.SetColumnWidth(i, 180)
	}

	apply := ui.guard()
	go func() {
		fetched, err := ui.directory.Doctors(context.Background())
		apply(func() {
			if err != nil {
				status.SetText(requestErrorMessage(err))
				return
			}
			doctors = fetched
			status.SetText(strconv.Itoa(len(doctors)) + " staff members")
			table.Refresh()
		})
	}()

	header := widget.NewCard("Staff Management", "", status)
	return container.NewBorder(header, nil, nil, nil, table)
}

// patientManagementView is the patient directory shared by the admin
// and staff consoles.
func (ui *DashboardUI) patientManagementView() fyne.CanvasObject {
	columns := []string{"Name", "Age", "Gender", "Phone", "Email"}
	var patients []types.Patient
	status := widget.NewLabel("Loading patients...")

	table := widget.NewTable(
		func() (int, int) { return len(patients), len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row < 0 || id.Row >= len(patients) {
				label.SetText("")
				return
			}
			p := patients[id.Row]
			switch id.Col {
			case 0:
				label.SetText(p.FullName())
			case 1:
				label.SetText(strconv.Itoa(p.Age))
			case 2:
				label.SetText(p.Gender)
			case 3:
				label.SetText(p.Phone)
			case 4:
				label.SetText(p.Email)
			}
		},
	)
	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row == -1 && id.Col >= 0 && id.Col < len(columns) {
			o.(*widget.Label).SetText(columns[id.Col])
		}
	}
	for i := range columns {
		table.SetColumnWidth(i, 150)
	}

	apply := ui.guard()
	go func() {
		fetched, err := ui.directory.Patients(context.Background())
		apply(func() {
			if err != nil {
				status.SetText(requestErrorMessage(err))
				return
			}
			patients = fetched
			status.SetText(strconv.Itoa(len(patients)) + " registered patients")
			table.Refresh()
		})
	}()

	header := widget.NewCard("Patient Management", "", status)
	return container.NewBorder(header, nil, nil, nil, table)
}

// financesView is a presentational summary. The backend exposes no
// finance endpoints yet; the figures besides the appointment count are
// the sample values from the design mockups.
func (ui *DashboardUI) financesView() fyne.CanvasObject {
	apptCount := widget.NewLabel("Appointments this month: ...")

	apply := ui.guard()
	go func() {
		appts, err := ui.appointments.List(context.Background(), nil)
		apply(func() {
			if err != nil {
				apptCount.SetText(requestErrorMessage(err))
				return
			}
			apptCount.SetText("Appointments this month: " + strconv.Itoa(len(appts)))
		})
	}()

	revenue := widget.NewCard("Revenue", "", widget.NewLabel("$48,250"))
	outstanding := widget.NewCard("Outstanding Invoices", "", widget.NewLabel("$6,310"))
	consultFee := widget.NewCard("Avg. Consultation Fee", "", widget.NewLabel("$85"))

	cards := container.NewGridWithColumns(3, revenue, outstanding, consultFee)
	return container.NewVBox(
		widget.NewCard("Finances", "", apptCount),
		cards,
	)
}
