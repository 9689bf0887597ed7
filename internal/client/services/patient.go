package services

import (
	"context"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const (
	patientsPath           = "/patients/"
	patientAppointmentPath = "/getAppointmentPat/"
)

type PatientService interface {
	List(ctx context.Context) ([]models.Patient, error)
	Get(ctx context.Context, id models.ID) (*models.Patient, error)
	Create(ctx context.Context, p models.Patient) (*models.Patient, error)
	Update(ctx context.Context, id models.ID, p models.Patient) (*models.Patient, error)
	Delete(ctx context.Context, id models.ID) error
	Appointments(ctx context.Context, patID string) ([]models.Appointment, error)
}

type patientService struct {
	patients     resource[models.Patient]
	appointments resource[models.Appointment]
}

func NewPatientService(c client.Client, log logging.Logger) PatientService {
	return &patientService{
		patients:     newResource[models.Patient](c, log, patientsPath, "patient"),
		appointments: newResource[models.Appointment](c, log, patientAppointmentPath, "patient appointments"),
	}
}

func (s *patientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.patients.list(ctx, patientsPath)
}

func (s *patientService) Get(ctx context.Context, id models.ID) (*models.Patient, error) {
	return s.patients.get(ctx, id)
}

func (s *patientService) Create(ctx context.Context, p models.Patient) (*models.Patient, error) {
	return s.patients.create(ctx, p)
}

func (s *patientService) Update(ctx context.Context, id models.ID, p models.Patient) (*models.Patient, error) {
	return s.patients.update(ctx, id, p)
}

func (s *patientService) Delete(ctx context.Context, id models.ID) error {
	return s.patients.delete(ctx, id)
}

func (s *patientService) Appointments(ctx context.Context, patID string) ([]models.Appointment, error) {
	path, err := itemPath(patientAppointmentPath, patID)
	if err != nil {
		return nil, err
	}
	return s.appointments.list(ctx, path)
}
