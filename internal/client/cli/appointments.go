package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

func (a *App) Appointments(ctx context.Context, _ []string) error {
	list, err := a.appointments.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printAppointments(a.out, list)
	return nil
}

func (a *App) Appointment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Appointment id")
	if err != nil {
		return err
	}
	ap, err := a.appointments.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	printFields(a.out,
		"ID", ap.ID.String(),
		"Date", ap.Date,
		"Time", ap.Time,
		"Doctor", fmt.Sprintf("%s (%s)", ap.DocName, ap.DocID),
		"Patient", fmt.Sprintf("%s (%s)", ap.PatName, ap.PatID),
		"Department", ap.Department,
		"Status", appointmentStatus(ap.Status),
		"Chain id", ap.BlockchainID,
		"Chain tx", ap.BlockchainTx,
	)
	return nil
}

// AddAppointment fills doctor and patient names from their directories so
// the server stores readable names with the booking.
func (a *App) AddAppointment(ctx context.Context, _ []string) error {
	var ap models.Appointment
	f := a.newForm()
	f.text("Doctor ID (docID)", &ap.DocID)
	f.text("Patient ID (patID)", &ap.PatID)
	f.text("Date (YYYY-MM-DD)", &ap.Date)
	f.text("Time (HH:MM)", &ap.Time)
	if f.err != nil {
		return f.err
	}
	if err := a.fillParticipants(ctx, &ap); err != nil {
		return a.report(ctx, err)
	}

	created, err := a.appointments.Create(ctx, ap)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Appointment %s booked for %s at %s", created.ID, created.Date, created.Time))
	return nil
}

func (a *App) fillParticipants(ctx context.Context, ap *models.Appointment) error {
	doctors, err := a.doctors.List(ctx)
	if err != nil {
		return err
	}
	patients, err := a.patients.List(ctx)
	if err != nil {
		return err
	}

	ve := &common.ValidationError{}
	found := false
	for _, d := range doctors {
		if d.DocID == ap.DocID {
			ap.DocName, ap.Department, found = d.FullName(), d.Department, true
			break
		}
	}
	if !found && ap.DocID != "" {
		ve.Add("docID", "unknown doctor")
	}

	found = false
	for _, p := range patients {
		if p.PatID == ap.PatID {
			ap.PatName, ap.PatientAddress, found = p.Name, p.Address, true
			break
		}
	}
	if !found && ap.PatID != "" {
		ve.Add("patID", "unknown patient")
	}
	return ve.OrNil()
}

func (a *App) EditAppointment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Appointment id")
	if err != nil {
		return err
	}
	ap, err := a.appointments.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}

	f := a.newForm()
	f.text("Date (YYYY-MM-DD)", &ap.Date)
	f.text("Time (HH:MM)", &ap.Time)
	f.text("Department", &ap.Department)
	if f.err != nil {
		return f.err
	}
	if _, err := a.appointments.Update(ctx, models.ID(id), *ap); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Appointment updated.")
	return nil
}

func (a *App) CancelAppointment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Appointment id")
	if err != nil {
		return err
	}
	if err := a.appointments.Cancel(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Appointment cancelled.")
	return nil
}

func (a *App) CompleteAppointment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Appointment id")
	if err != nil {
		return err
	}
	if err := a.appointments.Complete(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Appointment completed.")
	return nil
}

func (a *App) DeleteAppointment(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Appointment id")
	if err != nil {
		return err
	}
	if ok, err := a.confirmDelete("appointment " + id); err != nil || !ok {
		return err
	}
	if err := a.appointments.Delete(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Appointment deleted.")
	return nil
}
