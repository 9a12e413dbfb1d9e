package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"evolt.in/scms/models"
)

// Kind names an approvable entity for the approvals surface.
type Kind string

const (
	KindQuotation     Kind = "QUOTATION"
	KindJobCard       Kind = "JOB_CARD"
	KindPartsRequest  Kind = "PARTS_REQUEST"
	KindServiceIntake Kind = "SERVICE_INTAKE"
)

// ParseKind accepts the wire spelling of a Kind, case-insensitively.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToUpper(strings.TrimSpace(raw))) {
	case KindQuotation:
		return KindQuotation, true
	case KindJobCard:
		return KindJobCard, true
	case KindPartsRequest:
		return KindPartsRequest, true
	case KindServiceIntake:
		return KindServiceIntake, true
	}
	return "", false
}

// Outcome is the normalized result every approval path reduces to.
type Outcome struct {
	Success bool `json:"success"`
	Entity  any  `json:"updatedEntity"`
}

// Router is the single entry point for the approvals surface. It applies
// approve/reject uniformly across quotations, job cards, parts requests
// and service-intake requests, so cross-cutting rules (a rejection always
// needs a reason) live here once instead of per kind.
type Router struct {
	parts      *PartsFlow
	quotations QuotationStore
	jobCards   JobCardStore
	intakes    IntakeStore
	now        func() time.Time
}

func NewRouter(parts *PartsFlow, quotations QuotationStore, jobCards JobCardStore, intakes IntakeStore) *Router {
	return &Router{
		parts:      parts,
		quotations: quotations,
		jobCards:   jobCards,
		intakes:    intakes,
		now:        time.Now,
	}
}

func (r *Router) Approve(kind Kind, id uuid.UUID, actor Actor, notes string) (*Outcome, error) {
	switch kind {
	case KindPartsRequest:
		req, err := r.parts.SCManagerApprove(id, actor)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: req}, nil
	case KindQuotation:
		q, err := r.decideQuotation(id, actor, models.QuotationApproved, notes)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: q}, nil
	case KindJobCard:
		c, err := r.reviewJobCard(id, actor, models.ReviewApproved, notes)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: c}, nil
	case KindServiceIntake:
		s, err := r.decideIntake(id, actor, models.IntakeApproved, notes)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown approval kind %q", ErrValidation, kind)
	}
}

func (r *Router) Reject(kind Kind, id uuid.UUID, actor Actor, reason string) (*Outcome, error) {
	// Enforced once for every kind.
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}

	switch kind {
	case KindPartsRequest:
		req, err := r.parts.Reject(id, reason, actor)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: req}, nil
	case KindQuotation:
		q, err := r.decideQuotation(id, actor, models.QuotationRejected, reason)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: q}, nil
	case KindJobCard:
		c, err := r.reviewJobCard(id, actor, models.ReviewRejected, reason)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: c}, nil
	case KindServiceIntake:
		s, err := r.decideIntake(id, actor, models.IntakeRejected, reason)
		if err != nil {
			return nil, err
		}
		return &Outcome{Success: true, Entity: s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown approval kind %q", ErrValidation, kind)
	}
}

// SubmitJobCard passes a card to the manager queue. A card whose last
// review cycle was rejected gets a fresh cycle; the rejected cycle itself
// is never reopened.
func (r *Router) SubmitJobCard(id uuid.UUID, actor Actor) (*models.JobCard, error) {
	cards, err := r.jobCards.LoadJobCards()
	if err != nil {
		return nil, err
	}
	idx := findJobCard(cards, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: job card %s", ErrNotFound, id)
	}
	card := &cards[idx]

	switch card.ManagerReviewStatus {
	case models.ReviewApproved:
		return nil, fmt.Errorf("%w: job card already approved", ErrInvalidTransition)
	case models.ReviewRejected:
		card.ReviewCycle++
		card.ManagerReviewStatus = models.ReviewPending
	}
	card.PassedToManager = true

	if err := r.jobCards.SaveJobCards(cards); err != nil {
		return nil, err
	}
	result := cards[idx]
	return &result, nil
}

func (r *Router) reviewJobCard(id uuid.UUID, actor Actor, status models.ReviewStatus, notes string) (*models.JobCard, error) {
	if actor.Role != models.RoleSCManager {
		return nil, fmt.Errorf("%w: role %q cannot review job cards", ErrUnauthorized, actor.Role)
	}

	cards, err := r.jobCards.LoadJobCards()
	if err != nil {
		return nil, err
	}
	idx := findJobCard(cards, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: job card %s", ErrNotFound, id)
	}
	card := &cards[idx]

	if !card.PassedToManager {
		return nil, fmt.Errorf("%w: job card was never submitted for review", ErrInvalidTransition)
	}
	if card.ManagerReviewStatus != models.ReviewPending {
		return nil, fmt.Errorf("%w: review cycle already resolved as %s", ErrInvalidTransition, card.ManagerReviewStatus)
	}

	now := r.now()
	card.ManagerReviewStatus = status
	card.Reviews = append(card.Reviews, models.JobCardReview{
		ID:         uuid.New(),
		JobCardID:  card.ID,
		Cycle:      card.ReviewCycle,
		Status:     status,
		Notes:      notes,
		ReviewedBy: actor.Name,
		ReviewedAt: &now,
		CreatedAt:  now,
	})

	if err := r.jobCards.SaveJobCards(cards); err != nil {
		return nil, err
	}
	result := cards[idx]
	return &result, nil
}

func (r *Router) decideQuotation(id uuid.UUID, actor Actor, status models.QuotationStatus, notes string) (*models.Quotation, error) {
	if actor.Role != models.RoleSCManager {
		return nil, fmt.Errorf("%w: role %q cannot review quotations", ErrUnauthorized, actor.Role)
	}

	quotes, err := r.quotations.LoadQuotations()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range quotes {
		if quotes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: quotation %s", ErrNotFound, id)
	}
	q := &quotes[idx]
	if q.Status != models.QuotationSentToManager {
		return nil, fmt.Errorf("%w: manager decision requires SENT_TO_MANAGER, quotation is %s", ErrInvalidTransition, q.Status)
	}

	now := r.now()
	q.Status = status
	q.ManagerNotes = notes
	q.ManagerDecidedBy = actor.Name
	q.ManagerDecidedAt = &now

	if err := r.quotations.SaveQuotations(quotes); err != nil {
		return nil, err
	}
	result := quotes[idx]
	return &result, nil
}

func (r *Router) decideIntake(id uuid.UUID, actor Actor, status models.IntakeStatus, notes string) (*models.ServiceIntakeRequest, error) {
	if actor.Role != models.RoleSCManager {
		return nil, fmt.Errorf("%w: role %q cannot review intake requests", ErrUnauthorized, actor.Role)
	}

	intakes, err := r.intakes.LoadIntakeRequests()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range intakes {
		if intakes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: intake request %s", ErrNotFound, id)
	}
	s := &intakes[idx]
	if s.Status != models.IntakePending {
		return nil, fmt.Errorf("%w: intake request already %s", ErrInvalidTransition, s.Status)
	}

	now := r.now()
	s.Status = status
	s.DecisionNotes = notes
	s.DecidedBy = actor.Name
	s.DecidedAt = &now

	if err := r.intakes.SaveIntakeRequests(intakes); err != nil {
		return nil, err
	}
	result := intakes[idx]
	return &result, nil
}

func findJobCard(cards []models.JobCard, id uuid.UUID) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
