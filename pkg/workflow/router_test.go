package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolt.in/scms/models"
)

func newRouterUnderTest(st *memStore) *Router {
	return NewRouter(newPartsFlowUnderTest(st), st, st, st)
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]Kind{
		"QUOTATION":      KindQuotation,
		"job_card":       KindJobCard,
		" parts_request ": KindPartsRequest,
		"service_intake": KindServiceIntake,
	} {
		kind, ok := ParseKind(raw)
		assert.True(t, ok, "raw %q", raw)
		assert.Equal(t, want, kind)
	}

	_, ok := ParseKind("INVOICE")
	assert.False(t, ok)
}

func TestRejectRequiresReasonForEveryKind(t *testing.T) {
	st := newMemStore()
	router := newRouterUnderTest(st)

	for _, kind := range []Kind{KindQuotation, KindJobCard, KindPartsRequest, KindServiceIntake} {
		_, err := router.Reject(kind, uuid.New(), scManager(), "   ")
		assert.ErrorIs(t, err, ErrValidation, "kind %s", kind)
	}
}

func TestRouterUnknownKind(t *testing.T) {
	st := newMemStore()
	router := newRouterUnderTest(st)

	_, err := router.Approve(Kind("INVOICE"), uuid.New(), scManager(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRouterDispatchesPartsRequests(t *testing.T) {
	st := newMemStore()
	cardID := seedJobCard(st)
	partID := uuid.New()
	st.stock[partID] = 10
	flow := newPartsFlowUnderTest(st)
	router := newRouterUnderTest(st)

	req, err := flow.Create(cardID, []RequestItem{{PartID: partID, RequestedQty: 1}}, advisor())
	require.NoError(t, err)

	outcome, err := router.Approve(KindPartsRequest, req.ID, scManager(), "")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	updated := outcome.Entity.(*models.PartsRequest)
	assert.Equal(t, models.PartsRequestSCManagerApproved, updated.Status)
}

func TestJobCardReviewFlow(t *testing.T) {
	st := newMemStore()
	cardID := seedJobCard(st)
	router := newRouterUnderTest(st)

	// Reviewing before submission is rejected.
	_, err := router.Approve(KindJobCard, cardID, scManager(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	card, err := router.SubmitJobCard(cardID, advisor())
	require.NoError(t, err)
	assert.True(t, card.PassedToManager)
	assert.Equal(t, 1, card.ReviewCycle)

	// Only the SC manager reviews.
	_, err = router.Approve(KindJobCard, cardID, advisor(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	outcome, err := router.Reject(KindJobCard, cardID, scManager(), "diagnosis incomplete")
	require.NoError(t, err)
	rejected := outcome.Entity.(*models.JobCard)
	assert.Equal(t, models.ReviewRejected, rejected.ManagerReviewStatus)
	require.Len(t, rejected.Reviews, 1)
	assert.Equal(t, 1, rejected.Reviews[0].Cycle)
	assert.Equal(t, "diagnosis incomplete", rejected.Reviews[0].Notes)

	// A resolved cycle cannot be re-decided.
	_, err = router.Approve(KindJobCard, cardID, scManager(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Resubmission opens cycle 2 and the card can then be approved.
	card, err = router.SubmitJobCard(cardID, advisor())
	require.NoError(t, err)
	assert.Equal(t, 2, card.ReviewCycle)
	assert.Equal(t, models.ReviewPending, card.ManagerReviewStatus)

	outcome, err = router.Approve(KindJobCard, cardID, scManager(), "looks good")
	require.NoError(t, err)
	approved := outcome.Entity.(*models.JobCard)
	assert.Equal(t, models.ReviewApproved, approved.ManagerReviewStatus)
	require.Len(t, approved.Reviews, 2)
	assert.Equal(t, 2, approved.Reviews[1].Cycle)

	// An approved card cannot be resubmitted.
	_, err = router.SubmitJobCard(cardID, advisor())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestQuotationManagerDecision(t *testing.T) {
	st := newMemStore()
	st.quotations = append(st.quotations, models.Quotation{
		ID:     uuid.New(),
		Status: models.QuotationSentToManager,
	})
	router := newRouterUnderTest(st)
	id := st.quotations[0].ID

	_, err := router.Approve(KindQuotation, id, advisor(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	outcome, err := router.Approve(KindQuotation, id, scManager(), "within budget")
	require.NoError(t, err)
	q := outcome.Entity.(*models.Quotation)
	assert.Equal(t, models.QuotationApproved, q.Status)
	assert.Equal(t, "within budget", q.ManagerNotes)
	assert.NotNil(t, q.ManagerDecidedAt)

	// Already decided.
	_, err = router.Reject(KindQuotation, id, scManager(), "too costly")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestQuotationDecisionRequiresSentToManager(t *testing.T) {
	st := newMemStore()
	st.quotations = append(st.quotations, models.Quotation{
		ID:     uuid.New(),
		Status: models.QuotationDraft,
	})
	router := newRouterUnderTest(st)

	_, err := router.Approve(KindQuotation, st.quotations[0].ID, scManager(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIntakeDecision(t *testing.T) {
	st := newMemStore()
	st.intakes = append(st.intakes, models.ServiceIntakeRequest{
		ID:     uuid.New(),
		Status: models.IntakePending,
	})
	router := newRouterUnderTest(st)
	id := st.intakes[0].ID

	outcome, err := router.Reject(KindServiceIntake, id, scManager(), "no slots this week")
	require.NoError(t, err)
	s := outcome.Entity.(*models.ServiceIntakeRequest)
	assert.Equal(t, models.IntakeRejected, s.Status)
	assert.Equal(t, "no slots this week", s.DecisionNotes)

	_, err = router.Approve(KindServiceIntake, id, scManager(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRouterNotFound(t *testing.T) {
	st := newMemStore()
	router := newRouterUnderTest(st)

	for _, kind := range []Kind{KindQuotation, KindJobCard, KindPartsRequest, KindServiceIntake} {
		_, err := router.Approve(kind, uuid.New(), scManager(), "")
		assert.ErrorIs(t, err, ErrNotFound, "kind %s", kind)
	}
}
