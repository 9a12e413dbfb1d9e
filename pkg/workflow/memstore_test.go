package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"evolt.in/scms/models"
)

// memStore backs every snapshot interface with plain slices. Saves copy so
// later mutations by the workflow under test cannot leak back in.
type memStore struct {
	appointments []models.Appointment
	jobCards     []models.JobCard
	requests     []models.PartsRequest
	quotations   []models.Quotation
	intakes      []models.ServiceIntakeRequest
	invoices     []models.Invoice
	centers      []models.ServiceCenter
	stock        map[uuid.UUID]int
}

func newMemStore() *memStore {
	return &memStore{stock: make(map[uuid.UUID]int)}
}

func (m *memStore) LoadAppointments() ([]models.Appointment, error) {
	return append([]models.Appointment(nil), m.appointments...), nil
}

func (m *memStore) SaveAppointments(appts []models.Appointment) error {
	m.appointments = append([]models.Appointment(nil), appts...)
	return nil
}

func (m *memStore) LoadJobCards() ([]models.JobCard, error) {
	return append([]models.JobCard(nil), m.jobCards...), nil
}

func (m *memStore) SaveJobCards(cards []models.JobCard) error {
	m.jobCards = append([]models.JobCard(nil), cards...)
	return nil
}

func (m *memStore) LoadPartsRequests() ([]models.PartsRequest, error) {
	return append([]models.PartsRequest(nil), m.requests...), nil
}

func (m *memStore) SavePartsRequests(requests []models.PartsRequest) error {
	m.requests = append([]models.PartsRequest(nil), requests...)
	return nil
}

func (m *memStore) LoadQuotations() ([]models.Quotation, error) {
	return append([]models.Quotation(nil), m.quotations...), nil
}

func (m *memStore) SaveQuotations(quotes []models.Quotation) error {
	m.quotations = append([]models.Quotation(nil), quotes...)
	return nil
}

func (m *memStore) LoadIntakeRequests() ([]models.ServiceIntakeRequest, error) {
	return append([]models.ServiceIntakeRequest(nil), m.intakes...), nil
}

func (m *memStore) SaveIntakeRequests(intakes []models.ServiceIntakeRequest) error {
	m.intakes = append([]models.ServiceIntakeRequest(nil), intakes...)
	return nil
}

func (m *memStore) LoadInvoices() ([]models.Invoice, error) {
	return append([]models.Invoice(nil), m.invoices...), nil
}

func (m *memStore) SaveInvoices(invoices []models.Invoice) error {
	m.invoices = append([]models.Invoice(nil), invoices...)
	return nil
}

func (m *memStore) ServiceCenters() ([]models.ServiceCenter, error) {
	return append([]models.ServiceCenter(nil), m.centers...), nil
}

func (m *memStore) Available() (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(m.stock))
	for id, qty := range m.stock {
		out[id] = qty
	}
	return out, nil
}

func (m *memStore) Decrement(needed map[uuid.UUID]int) error {
	for partID, qty := range needed {
		if m.stock[partID] < qty {
			return fmt.Errorf("%w: part %s", ErrInsufficientStock, partID)
		}
	}
	for partID, qty := range needed {
		m.stock[partID] -= qty
	}
	return nil
}

func (m *memStore) addCenter(active bool) uuid.UUID {
	c := models.ServiceCenter{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Center %d", len(m.centers)+1),
		Code:     fmt.Sprintf("SC%03d", len(m.centers)+1),
		State:    "Delhi",
		IsActive: active,
	}
	m.centers = append(m.centers, c)
	return c.ID
}

func (m *memStore) addAppointment(status models.AppointmentStatus, centerID uuid.UUID) uuid.UUID {
	a := models.Appointment{
		ID:              uuid.New(),
		CustomerName:    "Asha Rao",
		CustomerPhone:   "9800011122",
		VehicleRegNo:    "DL3CEV0042",
		ServiceCenterID: centerID,
		Status:          status,
		ScheduledAt:     models.JSONTime(time.Now()),
		CreatedAt:       time.Now(),
	}
	m.appointments = append(m.appointments, a)
	return a.ID
}

func (m *memStore) addJobCard(appointmentID uuid.UUID) uuid.UUID {
	c := models.JobCard{
		ID:                  uuid.New(),
		JobCardNumber:       fmt.Sprintf("JC-%05d", len(m.jobCards)+1),
		SourceAppointmentID: appointmentID,
		ManagerReviewStatus: models.ReviewPending,
		ReviewCycle:         1,
		CreatedAt:           time.Now(),
	}
	m.jobCards = append(m.jobCards, c)
	return c.ID
}

func scheduleForm() ScheduleForm {
	return ScheduleForm{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9800011122",
		VehicleRegNo:  "DL3CEV0042",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		ServiceType:   "Periodic Service",
	}
}

func advisor() Actor {
	return Actor{UserID: uuid.NewString(), Name: "Ravi Kumar", Role: models.RoleServiceAdvisor}
}

func scManager() Actor {
	return Actor{UserID: uuid.NewString(), Name: "Meera Nair", Role: models.RoleSCManager}
}

func inventoryManager() Actor {
	return Actor{UserID: uuid.NewString(), Name: "Sunil Das", Role: models.RoleInventoryManager}
}
