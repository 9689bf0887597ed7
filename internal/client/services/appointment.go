package services

import (
	"context"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const appointmentsPath = "/appointment/"

// AppointmentService manages bookings. Cancel and Complete only flip the
// status flag; Delete removes the appointment.
type AppointmentService interface {
	List(ctx context.Context) ([]models.Appointment, error)
	Get(ctx context.Context, id models.ID) (*models.Appointment, error)
	Create(ctx context.Context, a models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, id models.ID, a models.Appointment) (*models.Appointment, error)
	Cancel(ctx context.Context, id models.ID) error
	Complete(ctx context.Context, id models.ID) error
	Delete(ctx context.Context, id models.ID) error
	ByDoctor(ctx context.Context, docID string) ([]models.Appointment, error)
	ByPatient(ctx context.Context, patID string) ([]models.Appointment, error)
}

type appointmentService struct {
	appointments resource[models.Appointment]
	byDoctor     resource[models.Appointment]
	byPatient    resource[models.Appointment]
}

func NewAppointmentService(c client.Client, log logging.Logger) AppointmentService {
	return &appointmentService{
		appointments: newResource[models.Appointment](c, log, appointmentsPath, "appointment"),
		byDoctor:     newResource[models.Appointment](c, log, doctorAppointmentPath, "doctor appointments"),
		byPatient:    newResource[models.Appointment](c, log, patientAppointmentPath, "patient appointments"),
	}
}

func (s *appointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.list(ctx, appointmentsPath)
}

func (s *appointmentService) Get(ctx context.Context, id models.ID) (*models.Appointment, error) {
	return s.appointments.get(ctx, id)
}

func (s *appointmentService) Create(ctx context.Context, a models.Appointment) (*models.Appointment, error) {
	return s.appointments.create(ctx, a)
}

func (s *appointmentService) Update(ctx context.Context, id models.ID, a models.Appointment) (*models.Appointment, error) {
	return s.appointments.update(ctx, id, a)
}

func (s *appointmentService) Cancel(ctx context.Context, id models.ID) error {
	_, err := s.appointments.patch(ctx, id, models.StatusUpdate{Status: false})
	return err
}

func (s *appointmentService) Complete(ctx context.Context, id models.ID) error {
	_, err := s.appointments.patch(ctx, id, models.StatusUpdate{Status: true})
	return err
}

func (s *appointmentService) Delete(ctx context.Context, id models.ID) error {
	return s.appointments.delete(ctx, id)
}

func (s *appointmentService) ByDoctor(ctx context.Context, docID string) ([]models.Appointment, error) {
	path, err := itemPath(doctorAppointmentPath, docID)
	if err != nil {
		return nil, err
	}
	return s.byDoctor.list(ctx, path)
}

func (s *appointmentService) ByPatient(ctx context.Context, patID string) ([]models.Appointment, error) {
	path, err := itemPath(patientAppointmentPath, patID)
	if err != nil {
		return nil, err
	}
	return s.byPatient.list(ctx, path)
}
