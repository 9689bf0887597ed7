package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
)

func (a *App) Patients(ctx context.Context, _ []string) error {
	list, err := a.patients.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{p.ID.String(), p.PatID, p.Name, p.Address})
	}
	printTable(a.out, []string{"ID", "PAT ID", "NAME", "WALLET"}, rows)
	return nil
}

func (a *App) Patient(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Patient id")
	if err != nil {
		return err
	}
	p, err := a.patients.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	printFields(a.out,
		"ID", p.ID.String(),
		"Pat ID", p.PatID,
		"Name", p.Name,
		"Wallet", p.Address,
	)
	return nil
}

func (a *App) patientForm(p *models.Patient) error {
	f := a.newForm()
	f.text("Patient ID", &p.PatID)
	f.text("Name", &p.Name)
	f.text("Wallet address", &p.Address)
	return f.err
}

func (a *App) AddPatient(ctx context.Context, _ []string) error {
	var p models.Patient
	if err := a.patientForm(&p); err != nil {
		return err
	}
	created, err := a.patients.Create(ctx, p)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Patient %s added with id %s", created.Name, created.ID))
	return nil
}

func (a *App) EditPatient(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Patient id")
	if err != nil {
		return err
	}
	p, err := a.patients.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.patientForm(p); err != nil {
		return err
	}
	if _, err := a.patients.Update(ctx, models.ID(id), *p); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Patient updated.")
	return nil
}

func (a *App) DeletePatient(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Patient id")
	if err != nil {
		return err
	}
	if ok, err := a.confirmDelete("patient " + id); err != nil || !ok {
		return err
	}
	if err := a.patients.Delete(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Patient deleted.")
	return nil
}

func (a *App) PatientAppointments(ctx context.Context, args []string) error {
	patID, err := a.idArg(args, "Patient ID (patID)")
	if err != nil {
		return err
	}
	list, err := a.patients.Appointments(ctx, patID)
	if err != nil {
		return a.report(ctx, err)
	}
	printAppointments(a.out, list)
	return nil
}
