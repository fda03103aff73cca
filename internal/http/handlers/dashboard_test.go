package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDashboardRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/dashboard/inquiries", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDashboardEmptyFeed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)

	rr := env.do(t, http.MethodGet, "/dashboard/inquiries", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeEnvelope(t, rr)
	require.True(t, body.Success)
	require.JSONEq(t, "[]", string(body.Data))
}

func TestUpdateInquiryStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)

	rr := env.do(t, http.MethodPost, "/dashboard/inquiries", token, map[string]any{
		"status": models.StatusContacted,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/dashboard/inquiries", token, map[string]any{
		"inquiry_id": 1, "status": "escalated",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/dashboard/inquiries", token, map[string]any{
		"inquiry_id": 999999,
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

// TestInquiryLifecycle walks the full scenario: poster A lists, tenant B
// inquires, A marks it contacted, and a non-owning poster C is rejected
// without changing the status.
func TestInquiryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	posterA, tokenA := env.createUser(t, "poster_a", "a@example.com", models.RolePoster)
	_, tokenB := env.createUser(t, "tenant_b", "b@example.com", models.RoleTenant)
	_, tokenC := env.createUser(t, "poster_c", "c@example.com", models.RolePoster)

	listing := seedListing(t, env, posterA.ID, "Loft")

	rr := env.do(t, http.MethodPost, "/inquiries", tokenB, map[string]any{
		"listing_id":    listing.ID,
		"contact_phone": "555-1000",
		"contact_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	feedRR := env.do(t, http.MethodGet, "/dashboard/inquiries", tokenA, nil)
	feed := decodeFeed(t, decodeEnvelope(t, feedRR).Data)
	require.Len(t, feed, 1)
	require.Equal(t, models.StatusNew, feed[0].Status)
	inquiryID := feed[0].InquiryID

	// Owner transitions the status.
	rr = env.do(t, http.MethodPost, "/dashboard/inquiries", tokenA, map[string]any{
		"inquiry_id": inquiryID, "status": models.StatusContacted,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	feedRR = env.do(t, http.MethodGet, "/dashboard/inquiries", tokenA, nil)
	feed = decodeFeed(t, decodeEnvelope(t, feedRR).Data)
	require.Equal(t, models.StatusContacted, feed[0].Status)

	// A non-owning poster is forbidden; the status is unchanged.
	rr = env.do(t, http.MethodPost, "/dashboard/inquiries", tokenC, map[string]any{
		"inquiry_id": inquiryID, "status": models.StatusResolved,
	})
	require.Equal(t, http.StatusForbidden, rr.Code)

	feedRR = env.do(t, http.MethodGet, "/dashboard/inquiries", tokenA, nil)
	feed = decodeFeed(t, decodeEnvelope(t, feedRR).Data)
	require.Equal(t, models.StatusContacted, feed[0].Status)

	// Poster C's own feed never contains A's inquiry.
	feedRR = env.do(t, http.MethodGet, "/dashboard/inquiries", tokenC, nil)
	require.Empty(t, decodeFeed(t, decodeEnvelope(t, feedRR).Data))
}

// Transitions are unconstrained: resolved may move back to new.
func TestInquiryStatusTransitionsUnconstrained(t *testing.T) {
	env := newTestEnv(t)
	poster, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)
	_, tenantToken := env.createUser(t, "tenant", "tenant@example.com", models.RoleTenant)
	listing := seedListing(t, env, poster.ID, "Loft")

	rr := env.do(t, http.MethodPost, "/inquiries", tenantToken, map[string]any{
		"listing_id": listing.ID, "contact_phone": "555-1000", "contact_email": "t@x.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	feedRR := env.do(t, http.MethodGet, "/dashboard/inquiries", token, nil)
	feed := decodeFeed(t, decodeEnvelope(t, feedRR).Data)
	inquiryID := feed[0].InquiryID

	for _, status := range []string{models.StatusResolved, models.StatusNew, models.StatusContacted} {
		rr = env.do(t, http.MethodPost, "/dashboard/inquiries", token, map[string]any{
			"inquiry_id": inquiryID, "status": status,
		})
		require.Equal(t, http.StatusOK, rr.Code, status)
	}
}

// Omitting the status defaults the transition to "contacted".
func TestUpdateInquiryStatusDefault(t *testing.T) {
	env := newTestEnv(t)
	poster, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)
	_, tenantToken := env.createUser(t, "tenant", "tenant@example.com", models.RoleTenant)
	listing := seedListing(t, env, poster.ID, "Loft")

	rr := env.do(t, http.MethodPost, "/inquiries", tenantToken, map[string]any{
		"listing_id": listing.ID, "contact_phone": "555-1000", "contact_email": "t@x.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	feedRR := env.do(t, http.MethodGet, "/dashboard/inquiries", token, nil)
	feed := decodeFeed(t, decodeEnvelope(t, feedRR).Data)

	rr = env.do(t, http.MethodPost, "/dashboard/inquiries", token, map[string]any{
		"inquiry_id": feed[0].InquiryID,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	feedRR = env.do(t, http.MethodGet, "/dashboard/inquiries", token, nil)
	feed = decodeFeed(t, decodeEnvelope(t, feedRR).Data)
	require.Equal(t, models.StatusContacted, feed[0].Status)
}

func TestDashboardMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)

	rr := env.do(t, http.MethodDelete, "/dashboard/inquiries", token, nil)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// decodeFeed sanity for the envelope shape: data is a JSON array.
func TestFeedEnvelopeShape(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "poster", "poster@example.com", models.RolePoster)

	rr := env.do(t, http.MethodGet, "/dashboard/inquiries", token, nil)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	require.Contains(t, raw, "success")
	require.Contains(t, raw, "data")
}
