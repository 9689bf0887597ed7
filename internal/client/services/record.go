package services

import (
	"context"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const (
	recordsPath        = "/medical-records/"
	patientRecordsPath = "/medical-records/patient/"
)

type MedicalRecordService interface {
	List(ctx context.Context) ([]models.MedicalRecord, error)
	Get(ctx context.Context, id models.ID) (*models.MedicalRecord, error)
	Create(ctx context.Context, r models.MedicalRecord) (*models.MedicalRecord, error)
	Update(ctx context.Context, id models.ID, r models.MedicalRecord) (*models.MedicalRecord, error)
	Delete(ctx context.Context, id models.ID) error
	ByPatient(ctx context.Context, patientID models.ID) ([]models.MedicalRecord, error)
}

type medicalRecordService struct {
	records resource[models.MedicalRecord]
}

func NewMedicalRecordService(c client.Client, log logging.Logger) MedicalRecordService {
	return &medicalRecordService{
		records: newResource[models.MedicalRecord](c, log, recordsPath, "medical record"),
	}
}

func (s *medicalRecordService) List(ctx context.Context) ([]models.MedicalRecord, error) {
	return s.records.list(ctx, recordsPath)
}

func (s *medicalRecordService) Get(ctx context.Context, id models.ID) (*models.MedicalRecord, error) {
	return s.records.get(ctx, id)
}

func (s *medicalRecordService) Create(ctx context.Context, r models.MedicalRecord) (*models.MedicalRecord, error) {
	return s.records.create(ctx, r)
}

func (s *medicalRecordService) Update(ctx context.Context, id models.ID, r models.MedicalRecord) (*models.MedicalRecord, error) {
	return s.records.update(ctx, id, r)
}

func (s *medicalRecordService) Delete(ctx context.Context, id models.ID) error {
	return s.records.delete(ctx, id)
}

func (s *medicalRecordService) ByPatient(ctx context.Context, patientID models.ID) ([]models.MedicalRecord, error) {
	path, err := itemPath(patientRecordsPath, patientID.String())
	if err != nil {
		return nil, err
	}
	return s.records.list(ctx, path)
}
