package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"evolt.in/scms/models"
)

// PartsFlow is the two-party parts-request state machine:
//
//	PENDING --scManagerApprove--> SC_MANAGER_APPROVED --inventoryAssign--> ISSUED
//	PENDING --reject--> REJECTED
//	SC_MANAGER_APPROVED --reject--> REJECTED
//
// Order is strict, no skipping: the inventory manager can only issue what
// the SC manager has already approved, and the stock decrement happens
// exactly once, at the assignment transition.
type PartsFlow struct {
	requests PartsRequestStore
	jobCards JobCardStore
	stock    StockLedger
	now      func() time.Time
}

func NewPartsFlow(requests PartsRequestStore, jobCards JobCardStore, stock StockLedger) *PartsFlow {
	return &PartsFlow{
		requests: requests,
		jobCards: jobCards,
		stock:    stock,
		now:      time.Now,
	}
}

// RequestItem is one line of a new parts request.
type RequestItem struct {
	PartID       uuid.UUID
	RequestedQty int
	IsWarranty   bool
	SerialNumber *string
}

// Create raises a new PENDING request under a job card.
func (f *PartsFlow) Create(jobCardID uuid.UUID, items []RequestItem, actor Actor) (*models.PartsRequest, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: a parts request needs at least one item", ErrValidation)
	}
	for _, it := range items {
		if it.RequestedQty <= 0 {
			return nil, fmt.Errorf("%w: requested quantity must be positive", ErrValidation)
		}
	}

	cards, err := f.jobCards.LoadJobCards()
	if err != nil {
		return nil, err
	}
	found := false
	for i := range cards {
		if cards[i].ID == jobCardID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: job card %s", ErrNotFound, jobCardID)
	}

	requests, err := f.requests.LoadPartsRequests()
	if err != nil {
		return nil, err
	}

	req := models.PartsRequest{
		ID:          uuid.New(),
		JobCardID:   jobCardID,
		Status:      models.PartsRequestPending,
		RequestedBy: actor.Name,
		CreatedAt:   f.now(),
	}
	for _, it := range items {
		req.Items = append(req.Items, models.PartsRequestItem{
			ID:             uuid.New(),
			PartsRequestID: req.ID,
			PartID:         it.PartID,
			RequestedQty:   it.RequestedQty,
			IsWarranty:     it.IsWarranty,
			SerialNumber:   it.SerialNumber,
		})
	}
	requests = append(requests, req)
	if err := f.requests.SavePartsRequests(requests); err != nil {
		return nil, err
	}
	return &req, nil
}

// SCManagerApprove is the first of the two approvals.
func (f *PartsFlow) SCManagerApprove(requestID uuid.UUID, actor Actor) (*models.PartsRequest, error) {
	if actor.Role != models.RoleSCManager {
		return nil, fmt.Errorf("%w: role %q cannot give SC manager approval", ErrUnauthorized, actor.Role)
	}

	requests, err := f.requests.LoadPartsRequests()
	if err != nil {
		return nil, err
	}
	idx := findPartsRequest(requests, requestID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: parts request %s", ErrNotFound, requestID)
	}
	req := &requests[idx]
	if req.Status != models.PartsRequestPending {
		return nil, fmt.Errorf("%w: SC manager approval requires PENDING, request is %s", ErrInvalidTransition, req.Status)
	}

	now := f.now()
	req.Status = models.PartsRequestSCManagerApproved
	req.ScManagerApproved = true
	req.ScManagerApprovedBy = actor.Name
	req.ScManagerApprovedAt = &now

	if err := f.requests.SavePartsRequests(requests); err != nil {
		return nil, err
	}
	result := requests[idx]
	return &result, nil
}

// InventoryAssign is the second approval: it names the engineer who will
// fit the parts and decrements stock. The decrement is computed against a
// fresh ledger read and applied all-or-nothing; on any shortage the request
// is left untouched.
func (f *PartsFlow) InventoryAssign(requestID uuid.UUID, engineerName string, actor Actor) (*models.PartsRequest, error) {
	if actor.Role != models.RoleInventoryManager {
		return nil, fmt.Errorf("%w: role %q cannot assign from inventory", ErrUnauthorized, actor.Role)
	}
	if strings.TrimSpace(engineerName) == "" {
		return nil, fmt.Errorf("%w: engineer name is required", ErrValidation)
	}

	requests, err := f.requests.LoadPartsRequests()
	if err != nil {
		return nil, err
	}
	idx := findPartsRequest(requests, requestID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: parts request %s", ErrNotFound, requestID)
	}
	req := &requests[idx]
	if req.Status != models.PartsRequestSCManagerApproved {
		return nil, fmt.Errorf("%w: inventory assignment requires SC_MANAGER_APPROVED, request is %s", ErrInvalidTransition, req.Status)
	}

	// One request may list the same part twice (warranty + paid lines).
	needed := make(map[uuid.UUID]int)
	for _, it := range req.Items {
		needed[it.PartID] += it.RequestedQty
	}

	available, err := f.stock.Available()
	if err != nil {
		return nil, err
	}
	var short []string
	for partID, qty := range needed {
		if available[partID] < qty {
			short = append(short, fmt.Sprintf("part %s: need %d, have %d", partID, qty, available[partID]))
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, strings.Join(short, "; "))
	}

	if err := f.stock.Decrement(needed); err != nil {
		return nil, err
	}

	now := f.now()
	req.Status = models.PartsRequestIssued
	req.InventoryManagerAssigned = true
	req.AssignedEngineer = engineerName
	req.AssignedBy = actor.Name
	req.AssignedAt = &now

	if err := f.requests.SavePartsRequests(requests); err != nil {
		return nil, err
	}
	result := requests[idx]
	return &result, nil
}

// Reject closes a request from either pre-issue state. The reason is
// mandatory and a rejected request stays rejected: rejecting twice is a
// transition error, not a no-op.
func (f *PartsFlow) Reject(requestID uuid.UUID, reason string, actor Actor) (*models.PartsRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}

	requests, err := f.requests.LoadPartsRequests()
	if err != nil {
		return nil, err
	}
	idx := findPartsRequest(requests, requestID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: parts request %s", ErrNotFound, requestID)
	}
	req := &requests[idx]
	if req.Status != models.PartsRequestPending && req.Status != models.PartsRequestSCManagerApproved {
		return nil, fmt.Errorf("%w: cannot reject a %s request", ErrInvalidTransition, req.Status)
	}

	now := f.now()
	req.Status = models.PartsRequestRejected
	req.RejectedReason = reason
	req.RejectedAt = &now

	if err := f.requests.SavePartsRequests(requests); err != nil {
		return nil, err
	}
	result := requests[idx]
	return &result, nil
}

// PendingQueue returns the open requests in service order: creation
// timestamp ascending, so when several requests contend for the same part
// the first submitted is served first.
func (f *PartsFlow) PendingQueue() ([]models.PartsRequest, error) {
	requests, err := f.requests.LoadPartsRequests()
	if err != nil {
		return nil, err
	}
	var open []models.PartsRequest
	for _, r := range requests {
		if r.Status == models.PartsRequestPending || r.Status == models.PartsRequestSCManagerApproved {
			open = append(open, r)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})
	return open, nil
}

func findPartsRequest(requests []models.PartsRequest, id uuid.UUID) int {
	for i := range requests {
		if requests[i].ID == id {
			return i
		}
	}
	return -1
}
