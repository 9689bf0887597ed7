package services

import (
	"context"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const (
	doctorsPath           = "/doctor/"
	doctorAppointmentPath = "/getAppointmentDoc/"
)

type DoctorService interface {
	List(ctx context.Context) ([]models.Doctor, error)
	Get(ctx context.Context, id models.ID) (*models.Doctor, error)
	Create(ctx context.Context, d models.Doctor) (*models.Doctor, error)
	Update(ctx context.Context, id models.ID, d models.Doctor) (*models.Doctor, error)
	Delete(ctx context.Context, id models.ID) error
	// Appointments lists appointments booked with the doctor whose docID is
	// given.
	Appointments(ctx context.Context, docID string) ([]models.Appointment, error)
}

type doctorService struct {
	doctors      resource[models.Doctor]
	appointments resource[models.Appointment]
}

func NewDoctorService(c client.Client, log logging.Logger) DoctorService {
	return &doctorService{
		doctors:      newResource[models.Doctor](c, log, doctorsPath, "doctor"),
		appointments: newResource[models.Appointment](c, log, doctorAppointmentPath, "doctor appointments"),
	}
}

func (s *doctorService) List(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors.list(ctx, doctorsPath)
}

func (s *doctorService) Get(ctx context.Context, id models.ID) (*models.Doctor, error) {
	return s.doctors.get(ctx, id)
}

func (s *doctorService) Create(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	return s.doctors.create(ctx, d)
}

func (s *doctorService) Update(ctx context.Context, id models.ID, d models.Doctor) (*models.Doctor, error) {
	return s.doctors.update(ctx, id, d)
}

func (s *doctorService) Delete(ctx context.Context, id models.ID) error {
	return s.doctors.delete(ctx, id)
}

func (s *doctorService) Appointments(ctx context.Context, docID string) ([]models.Appointment, error) {
	path, err := itemPath(doctorAppointmentPath, docID)
	if err != nil {
		return nil, err
	}
	return s.appointments.list(ctx, path)
}
