package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
)

// now is replaced in tests.
var now = time.Now

// Records lists all medical records, or one patient's when an id is given.
func (a *App) Records(ctx context.Context, args []string) error {
	var (
		list []models.MedicalRecord
		err  error
	)
	if len(args) > 0 {
		list, err = a.records.ByPatient(ctx, models.ID(args[0]))
	} else {
		list, err = a.records.List(ctx)
	}
	if err != nil {
		return a.report(ctx, err)
	}

	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{r.ID.String(), r.PatientID.String(), r.DoctorID.String(), r.Date, r.Diagnosis})
	}
	printTable(a.out, []string{"ID", "PATIENT", "DOCTOR", "DATE", "DIAGNOSIS"}, rows)
	return nil
}

func (a *App) Record(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Record id")
	if err != nil {
		return err
	}
	r, err := a.records.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	printFields(a.out,
		"ID", r.ID.String(),
		"Patient", r.PatientID.String(),
		"Doctor", r.DoctorID.String(),
		"Date", r.Date,
		"Diagnosis", r.Diagnosis,
		"Prescription", r.Prescription,
		"Notes", r.Notes,
		"Chain tx", r.BlockchainTxHash,
	)
	return nil
}

func (a *App) recordForm(r *models.MedicalRecord) error {
	f := a.newForm()
	f.id("Patient id", &r.PatientID)
	f.id("Doctor id", &r.DoctorID)
	f.text("Date (YYYY-MM-DD)", &r.Date)
	f.text("Diagnosis", &r.Diagnosis)
	f.multiline("Prescription", &r.Prescription)
	f.multiline("Notes", &r.Notes)
	return f.err
}

func (a *App) AddRecord(ctx context.Context, _ []string) error {
	r := models.MedicalRecord{Date: now().Format(models.DateLayout)}
	if err := a.recordForm(&r); err != nil {
		return err
	}
	created, err := a.records.Create(ctx, r)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn(fmt.Sprintf("Medical record %s added", created.ID))
	return nil
}

func (a *App) EditRecord(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Record id")
	if err != nil {
		return err
	}
	r, err := a.records.Get(ctx, models.ID(id))
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.recordForm(r); err != nil {
		return err
	}
	if _, err := a.records.Update(ctx, models.ID(id), *r); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Medical record updated.")
	return nil
}

func (a *App) DeleteRecord(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Record id")
	if err != nil {
		return err
	}
	if ok, err := a.confirmDelete("medical record " + id); err != nil || !ok {
		return err
	}
	if err := a.records.Delete(ctx, models.ID(id)); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Medical record deleted.")
	return nil
}
