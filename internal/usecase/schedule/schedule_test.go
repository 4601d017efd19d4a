package schedule

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/merciahealth/patient-portal/internal/audit"
	"github.com/merciahealth/patient-portal/internal/cache"
	"github.com/merciahealth/patient-portal/internal/clock"
	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
	"github.com/merciahealth/patient-portal/internal/httperr"
	"github.com/merciahealth/patient-portal/internal/models"
)

func errSlotUnavailable() error {
	return httperr.ErrBusiness("slot_unavailable")
}

// fakeRepo is an in-memory Repository good enough to exercise every guard.
// The blocking-slot uniqueness the database index enforces is simulated in
// CreateAppointment / RescheduleAppointment.
type fakeRepo struct {
	doctors map[uint]*models.Doctor
	windows []models.AvailabilityWindow
	appts   map[uint]*models.Appointment
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors: map[uint]*models.Doctor{},
		appts:   map[uint]*models.Appointment{},
		nextID:  1,
	}
}

func (f *fakeRepo) addDoctor(id uint, name string) {
	f.doctors[id] = &models.Doctor{ID: id, Name: name, Active: true}
}

func (f *fakeRepo) addWindow(doctorID uint, weekday, start, end string) {
	f.windows = append(f.windows, models.AvailabilityWindow{
		DoctorID:  doctorID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	})
}

func (f *fakeRepo) seedAppointment(ap models.Appointment) uint {
	ap.ID = f.nextID
	f.nextID++
	f.appts[ap.ID] = &ap
	return ap.ID
}

func (f *fakeRepo) status(id uint) string {
	return f.appts[id].Status
}

func (f *fakeRepo) GetDoctorByID(_ context.Context, id uint) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeRepo) ListActiveWindows(_ context.Context, doctorID uint) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetWindowForDay(_ context.Context, doctorID uint, weekday string) (*models.AvailabilityWindow, error) {
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.Active && w.Weekday == weekday {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) blocked(doctorID uint, date, timeOfDay string, excludeID uint) bool {
	for _, ap := range f.appts {
		if ap.ID == excludeID {
			continue
		}
		if ap.DoctorID == doctorID &&
			ap.AppointmentDate == date &&
			ap.AppointmentTime == timeOfDay &&
			domain.Canonical(ap.Status).IsBlocking() {
			return true
		}
	}
	return false
}

func (f *fakeRepo) IsSlotTaken(
	_ context.Context,
	doctorID uint,
	date string,
	timeOfDay string,
	_ []domain.Status,
	excludeID uint,
) (bool, error) {
	return f.blocked(doctorID, date, timeOfDay, excludeID), nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.blocked(ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime, 0) {
		return errSlotUnavailable()
	}
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appts[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment) error {
	if f.blocked(ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime, ap.ID) {
		return errSlotUnavailable()
	}
	cp := *ap
	f.appts[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointmentForPatient(_ context.Context, appointmentID, patientID uint) (*models.Appointment, error) {
	ap, ok := f.appts[appointmentID]
	if !ok || ap.PatientID != patientID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	cp.Status = string(domain.Canonical(cp.Status))
	return &cp, nil
}

func (f *fakeRepo) GetAppointmentForDoctor(_ context.Context, appointmentID, doctorID uint) (*models.Appointment, error) {
	ap, ok := f.appts[appointmentID]
	if !ok || ap.DoctorID != doctorID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	cp.Status = string(domain.Canonical(cp.Status))
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	f.appts[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAppointmentsForPatient(_ context.Context, patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appts {
		if ap.PatientID == patientID {
			cp := *ap
			cp.Status = string(domain.Canonical(cp.Status))
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForDoctorDay(_ context.Context, doctorID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appts {
		if ap.DoctorID == doctorID && ap.AppointmentDate == date {
			cp := *ap
			cp.Status = string(domain.Canonical(cp.Status))
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime < out[j].AppointmentTime })
	return out, nil
}

func (f *fakeRepo) CompleteDueAppointments(_ context.Context, now time.Time) (int64, error) {
	date := now.Format(domain.DateLayout)
	timeOfDay := now.Format(domain.TimeLayout)

	var n int64
	for _, ap := range f.appts {
		if domain.Canonical(ap.Status) != domain.StatusConfirmed {
			continue
		}
		if ap.AppointmentDate < date ||
			(ap.AppointmentDate == date && ap.AppointmentTime <= timeOfDay) {
			ap.Status = string(domain.StatusCompleted)
			completed := now
			ap.CompletedAt = &completed
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// testEnv wires every use case against the fake repo, a fixed clock and
// disabled infrastructure (no-op audit, cache without a Redis client).
type testEnv struct {
	repo *fakeRepo
	clk  clock.Clock

	book       *BookAppointment
	cancel     *CancelAppointment
	reschedule *RescheduleAppointment
	review     *ReviewAppointment
	avail      *GetAvailability
	list       *ListPatientAppointments
}

// Saturday noon; 2025-03-03 is the following Monday.
var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(now time.Time) *testEnv {
	repo := newFakeRepo()
	clk := clock.Fixed(now)
	dispatcher := audit.NewDispatcher(nil)
	slots := cache.NewSlotCache("")

	return &testEnv{
		repo:       repo,
		clk:        clk,
		book:       NewBookAppointment(repo, dispatcher, clk, slots, 30),
		cancel:     NewCancelAppointment(repo, dispatcher, clk, slots),
		reschedule: NewRescheduleAppointment(repo, dispatcher, clk, slots, 30),
		review:     NewReviewAppointment(repo, dispatcher, clk),
		avail:      NewGetAvailability(repo, clk, slots, 30),
		list:       NewListPatientAppointments(repo, clk),
	}
}

// mondayEnv seeds the fixture every scenario starts from: doctor 1 with a
// Monday 09:00-12:00 window.
func mondayEnv() *testEnv {
	env := newTestEnv(testNow)
	env.repo.addDoctor(1, "Dr. Alice Mwangi")
	env.repo.addWindow(1, "Monday", "09:00", "12:00")
	return env
}
