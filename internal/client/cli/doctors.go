package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
)

func (a *App) Doctors(ctx context.Context, _ []string) error {
	list, err := a.doctors.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		rows = append(rows, []string{d.ID.String(), d.DocID, d.FullName(), d.Department, d.Email, d.City})
	}
	printTable(a.out, []string{"ID", "DOC ID", "NAME", "DEPARTMENT", "EMAIL", "CITY"}, rows)
	return nil
}

func (a *App) Doctor(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Doctor id")
	if err != nil {
		return err
	}
	d, err := a.doctors.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	printDoctor(a, d)
	return nil
}

func printDoctor(a *App, d *models.Doctor) {
	printFields(a.out,
		"ID", d.ID.String(),
		"Doc ID", d.DocID,
		"Name", d.FullName(),
		"Email", d.Email,
		"Department", d.Department,
		"City", d.City,
		"State", d.State,
		"Joined", d.JoinedOn,
		"Wallet", d.Address,
	)
}

func (a *App) doctorForm(d *models.Doctor) error {
	f := a.newForm()
	f.text("Doctor ID", &d.DocID)
	f.text("First name", &d.FirstName)
	f.text("Last name", &d.LastName)
	f.text("Email", &d.Email)
	f.text("Department", &d.Department)
	f.text("City", &d.City)
	f.text("State", &d.State)
	f.text("Joined on (YYYY-MM-DD)", &d.JoinedOn)
	f.text("Wallet address", &d.Address)
	return f.err
}

func (a *App) AddDoctor(ctx context.Context, _ []string) error {
	var d models.Doctor
	if err := a.doctorForm(&d); err != nil {
		return err
	}
	created, err := a.doctors.Create(ctx, d)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Doctor %s added with id %s", created.FullName(), created.ID))
	return nil
}

func (a *App) EditDoctor(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Doctor id")
	if err != nil {
		return err
	}
	d, err := a.doctors.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.doctorForm(d); err != nil {
		return err
	}
	if _, err := a.doctors.Update(ctx, models.ID(id), *d); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Doctor updated.")
	return nil
}

func (a *App) DeleteDoctor(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Doctor id")
	if err != nil {
		return err
	}
	if ok, err := a.confirmDelete("doctor " + id); err != nil || !ok {
		return err
	}
	if err := a.doctors.Delete(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Doctor deleted.")
	return nil
}

// DoctorAppointments takes the doctor's docID, not the record id.
func (a *App) DoctorAppointments(ctx context.Context, args []string) error {
	docID, err := a.idArg(args, "Doctor ID (docID)")
	if err != nil {
		return err
	}
	list, err := a.doctors.Appointments(ctx, docID)
	if err != nil {
		return a.report(ctx, err)
	}
	printAppointments(a.out, list)
	return nil
}
