package ui

import (
	"context"
	"errors"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/medease/desktop/core"
	"github.com/medease/desktop/internal/types"
)

// bookingView is the patient console's appointment form. The widgets
// cascade: department, then doctor, then date, then one time slot; the
// draft state machine clears later selections whenever an earlier one
// changes. Submit stays disabled until the draft is submittable and
// while a request is pending.
func (ui *DashboardUI) bookingView() fyne.CanvasObject {
	manager := core.NewBookingManager(ui.profile.ID, ui.appointments)

	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord

	var doctors []types.Doctor
	doctorByName := map[string]string{}

	doctorSelect := widget.NewSelect(nil, nil)
	doctorSelect.PlaceHolder = "Select a department first"
	doctorSelect.Disable()

	slotSelect := widget.NewSelect(nil, nil)
	slotSelect.PlaceHolder = "Select a doctor and date first"
	slotSelect.Disable()

	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder("YYYY-MM-DD")

	reasonEntry := widget.NewMultiLineEntry()
	reasonEntry.SetPlaceHolder("Reason for the visit")

	var submit *widget.Button
	pending := false

	updateSubmit := func() {
		if !pending && manager.Draft.Stage() == core.DraftSubmittable {
			submit.Enable()
		} else {
			submit.Disable()
		}
	}

	// refreshSlots re-derives the selectable slots once a doctor and a
	// date are both chosen, hiding slots already taken for the pairing.
	refreshSlots := func() {
		slotSelect.ClearSelected()
		if manager.Draft.DoctorID == "" || manager.Draft.Date == "" {
			slotSelect.Options = nil
			slotSelect.Disable()
			updateSubmit()
			return
		}

		slotSelect.PlaceHolder = "Loading slots..."
		slotSelect.Refresh()
		apply := ui.guard()
		go func() {
			filters := url.Values{}
			filters.Set("doctor", manager.Draft.DoctorID)
			filters.Set("date", manager.Draft.Date)
			existing, err := ui.appointments.List(context.Background(), filters)
			apply(func() {
				if err != nil {
					status.SetText(requestErrorMessage(err))
					return
				}
				slots := manager.AvailableSlots(existing)
				slotSelect.Options = slots
				if len(slots) == 0 {
					slotSelect.PlaceHolder = "No free slots on this day"
					slotSelect.Disable()
				} else {
					slotSelect.PlaceHolder = "Select a time slot"
					slotSelect.Enable()
				}
				slotSelect.Refresh()
				updateSubmit()
			})
		}()
	}

	departmentSelect := widget.NewSelect(nil, func(name string) {
		manager.Draft.ChooseDepartment(name)
		doctorSelect.ClearSelected()
		doctorSelect.Options = nil
		doctorSelect.PlaceHolder = "Loading doctors..."
		doctorSelect.Disable()
		doctorSelect.Refresh()
		refreshSlots()

		apply := ui.guard()
		go func() {
			fetched, err := ui.directory.DoctorsByDepartment(context.Background(), name)
			apply(func() {
				if err != nil {
					status.SetText(requestErrorMessage(err))
					return
				}
				doctors = fetched
				names := make([]string, 0, len(doctors))
				for _, d := range doctors {
					doctorByName[d.FullName()] = d.ID
					names = append(names, d.FullName())
				}
				doctorSelect.Options = names
				doctorSelect.PlaceHolder = "Select a doctor"
				doctorSelect.Enable()
				doctorSelect.Refresh()
			})
		}()
	})
	departmentSelect.PlaceHolder = "Select a department"

	doctorSelect.OnChanged = func(name string) {
		if id, ok := doctorByName[name]; ok {
			manager.Draft.ChooseDoctor(id)
		}
		refreshSlots()
	}

	dateEntry.OnChanged = func(value string) {
		if _, err := time.Parse("2006-01-02", value); err != nil {
			manager.Draft.ChooseDate("")
			refreshSlots()
			return
		}
		manager.Draft.ChooseDate(value)
		refreshSlots()
	}

	slotSelect.OnChanged = func(slot string) {
		manager.Draft.ChooseSlot(slot)
		updateSubmit()
	}

	reasonEntry.OnChanged = func(value string) {
		manager.Draft.SetReason(value)
		updateSubmit()
	}

	submit = widget.NewButton("Book Appointment", func() {
		pending = true
		updateSubmit()
		status.SetText("Booking...")

		apply := ui.guard()
		go func() {
			created, err := manager.Submit(context.Background())
			apply(func() {
				pending = false
				if err != nil {
					// The draft is retained so the user can retry
					// without re-entering their selections.
					status.SetText(requestErrorMessage(err))
					dialog.ShowError(errors.New(requestErrorMessage(err)), ui.Win)
					updateSubmit()
					return
				}
				status.SetText("Appointment booked for " + created.Date + " at " + created.Time + ".")
				departmentSelect.ClearSelected()
				doctorSelect.ClearSelected()
				doctorSelect.Disable()
				slotSelect.ClearSelected()
				slotSelect.Disable()
				dateEntry.SetText("")
				reasonEntry.SetText("")
				updateSubmit()
			})
		}()
	})
	submit.Disable()

	apply := ui.guard()
	go func() {
		departments, err := ui.directory.Departments(context.Background())
		apply(func() {
			if err != nil {
				status.SetText(requestErrorMessage(err))
				return
			}
			names := make([]string, 0, len(departments))
			for _, d := range departments {
				names = append(names, d.Name)
			}
			departmentSelect.Options = names
			departmentSelect.Refresh()
		})
	}()

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Department", departmentSelect),
			widget.NewFormItem("Doctor", doctorSelect),
			widget.NewFormItem("Date", dateEntry),
			widget.NewFormItem("Time Slot", slotSelect),
			widget.NewFormItem("Reason", reasonEntry),
		),
		submit,
		status,
	)

	return widget.NewCard("Book Appointment", "", form)
}
