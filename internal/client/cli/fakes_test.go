package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/ehrdesk/internal/client/auth"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

type fakeSession struct {
	mu sync.Mutex

	session    auth.Session
	restoreErr error
	connectErr error
	signature  string
	signErr    error

	connects int
	logouts  int
	signed   string
	events   chan auth.Event
}

func (f *fakeSession) Session() auth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSession) Restore(context.Context) (auth.Session, error) {
	return f.Session(), f.restoreErr
}

func (f *fakeSession) Connect(context.Context) (auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr != nil {
		return f.session, f.connectErr
	}
	f.session = signedIn()
	return f.session, nil
}

func (f *fakeSession) Reconnect(context.Context) (auth.Session, error) {
	return f.Session(), nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.session = auth.Session{State: auth.StateUnauthenticated}
	return nil
}

func (f *fakeSession) SignMessage(_ context.Context, msg string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = msg
	return f.signature, f.signErr
}

func (f *fakeSession) Subscribe(int) (<-chan auth.Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.events == nil {
		f.events = make(chan auth.Event, 8)
	}
	return f.events, func() {}
}

func signedIn() auth.Session {
	return auth.Session{
		State:   auth.StateAuthenticated,
		Address: "0x52908400098527886e0f7030069857d2e4169ee7",
		Token:   "tok",
		User:    &models.User{ID: "1", Username: "ann", FirstName: "Ann", LastName: "Lee", Role: models.RoleAdmin},
	}
}

type fakeDoctors struct {
	list    []models.Doctor
	created []models.Doctor
	updated map[models.ID]models.Doctor
	deleted []models.ID
	appts   []models.Appointment
	err     error
}

func (f *fakeDoctors) List(context.Context) ([]models.Doctor, error) { return f.list, f.err }

func (f *fakeDoctors) Get(_ context.Context, id models.ID) (*models.Doctor, error) {
	for _, d := range f.list {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, common.NewAPIError(404, "", common.ErrNotFound)
}

func (f *fakeDoctors) Create(_ context.Context, d models.Doctor) (*models.Doctor, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	f.created = append(f.created, d)
	d.ID = "100"
	return &d, nil
}

func (f *fakeDoctors) Update(_ context.Context, id models.ID, d models.Doctor) (*models.Doctor, error) {
	if f.updated == nil {
		f.updated = map[models.ID]models.Doctor{}
	}
	f.updated[id] = d
	return &d, nil
}

func (f *fakeDoctors) Delete(_ context.Context, id models.ID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDoctors) Appointments(context.Context, string) ([]models.Appointment, error) {
	return f.appts, nil
}

type fakePatients struct {
	list    []models.Patient
	created []models.Patient
	deleted []models.ID
	appts   []models.Appointment
}

func (f *fakePatients) List(context.Context) ([]models.Patient, error) { return f.list, nil }

func (f *fakePatients) Get(_ context.Context, id models.ID) (*models.Patient, error) {
	for _, p := range f.list {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakePatients) Create(_ context.Context, p models.Patient) (*models.Patient, error) {
	f.created = append(f.created, p)
	p.ID = "200"
	return &p, nil
}

func (f *fakePatients) Update(_ context.Context, _ models.ID, p models.Patient) (*models.Patient, error) {
	return &p, nil
}

func (f *fakePatients) Delete(_ context.Context, id models.ID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePatients) Appointments(context.Context, string) ([]models.Appointment, error) {
	return f.appts, nil
}

type fakeAppointments struct {
	list      []models.Appointment
	created   []models.Appointment
	cancelled []models.ID
	completed []models.ID
}

func (f *fakeAppointments) List(context.Context) ([]models.Appointment, error) { return f.list, nil }

func (f *fakeAppointments) Get(_ context.Context, id models.ID) (*models.Appointment, error) {
	for _, a := range f.list {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeAppointments) Create(_ context.Context, a models.Appointment) (*models.Appointment, error) {
	f.created = append(f.created, a)
	a.ID = "300"
	return &a, nil
}

func (f *fakeAppointments) Update(_ context.Context, _ models.ID, a models.Appointment) (*models.Appointment, error) {
	return &a, nil
}

func (f *fakeAppointments) Cancel(_ context.Context, id models.ID) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeAppointments) Complete(_ context.Context, id models.ID) error {
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeAppointments) Delete(context.Context, models.ID) error { return nil }

func (f *fakeAppointments) ByDoctor(context.Context, string) ([]models.Appointment, error) {
	return f.list, nil
}

func (f *fakeAppointments) ByPatient(context.Context, string) ([]models.Appointment, error) {
	return f.list, nil
}

type fakeRecords struct {
	list      []models.MedicalRecord
	created   []models.MedicalRecord
	byPatient models.ID
}

func (f *fakeRecords) List(context.Context) ([]models.MedicalRecord, error) { return f.list, nil }

func (f *fakeRecords) Get(_ context.Context, id models.ID) (*models.MedicalRecord, error) {
	for _, r := range f.list {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeRecords) Create(_ context.Context, r models.MedicalRecord) (*models.MedicalRecord, error) {
	f.created = append(f.created, r)
	r.ID = "400"
	return &r, nil
}

func (f *fakeRecords) Update(_ context.Context, _ models.ID, r models.MedicalRecord) (*models.MedicalRecord, error) {
	return &r, nil
}

func (f *fakeRecords) Delete(context.Context, models.ID) error { return nil }

func (f *fakeRecords) ByPatient(_ context.Context, id models.ID) ([]models.MedicalRecord, error) {
	f.byPatient = id
	return f.list, nil
}

type fakeDashboard struct {
	counts models.Counts
	err    error
}

func (f *fakeDashboard) Counts(context.Context) (models.Counts, error) { return f.counts, f.err }

type testApp struct {
	*App
	out          *bytes.Buffer
	session      *fakeSession
	doctors      *fakeDoctors
	patients     *fakePatients
	appointments *fakeAppointments
	records      *fakeRecords
	dashboard    *fakeDashboard
}

// newTestApp builds a non-interactive App that reads the given lines.
func newTestApp(lines ...string) *testApp {
	t := &testApp{
		out:          &bytes.Buffer{},
		session:      &fakeSession{session: signedIn()},
		doctors:      &fakeDoctors{},
		patients:     &fakePatients{},
		appointments: &fakeAppointments{},
		records:      &fakeRecords{},
		dashboard:    &fakeDashboard{},
	}
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	t.App = &App{
		log:          logging.Nop(),
		session:      t.session,
		doctors:      t.doctors,
		patients:     t.patients,
		appointments: t.appointments,
		records:      t.records,
		dashboard:    t.dashboard,
		reader:       bufio.NewReader(strings.NewReader(input)),
		out:          t.out,
	}
	return t
}
