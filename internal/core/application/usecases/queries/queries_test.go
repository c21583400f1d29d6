package queries_test

import (
	"testing"

	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		want     error
	}{
		{"list tracking events", queries.ListTrackingEventsQuery{}.Validate, queries.ErrListTrackingEventsQueryIsNotConstructed},
		{"get parcels", queries.GetParcelsQuery{}.Validate, queries.ErrGetParcelsQueryIsNotConstructed},
		{"get parcel", queries.GetParcelQuery{}.Validate, queries.ErrGetParcelQueryIsNotConstructed},
		{"get rider parcels", queries.GetRiderParcelsQuery{}.Validate, queries.ErrGetRiderParcelsQueryIsNotConstructed},
		{"delivery status stats", queries.GetDeliveryStatusStatsQuery{}.Validate, queries.ErrGetDeliveryStatusStatsQueryIsNotConstructed},
		{"get payments", queries.GetPaymentsQuery{}.Validate, queries.ErrGetPaymentsQueryIsNotConstructed},
		{"get riders", queries.GetRidersQuery{}.Validate, queries.ErrGetRidersQueryIsNotConstructed},
		{"deliveries per day", queries.GetRiderDeliveriesPerDayQuery{}.Validate, queries.ErrGetRiderDeliveriesPerDayQueryIsNotConstructed},
		{"search users", queries.SearchUsersQuery{}.Validate, queries.ErrSearchUsersQueryIsNotConstructed},
		{"user role", queries.GetUserRoleQuery{}.Validate, queries.ErrGetUserRoleQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.want)
		})
	}
}

func TestNewListTrackingEventsQuery(t *testing.T) {
	q, err := queries.NewListTrackingEventsQuery("zap-ab12cd34ef")
	require.NoError(t, err)
	assert.Equal(t, "ZAP-AB12CD34EF", q.TrackingID().String())

	_, err = queries.NewListTrackingEventsQuery("not-a-tracking-id")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetParcelsQuery(t *testing.T) {
	q, err := queries.NewGetParcelsQuery(" Nadia@Example.com ", "pending-pickup")
	require.NoError(t, err)
	assert.Equal(t, "nadia@example.com", q.SenderEmail())
	assert.Equal(t, "pending-pickup", q.DeliveryStatus())

	all, err := queries.NewGetParcelsQuery("", "")
	require.NoError(t, err)
	assert.Empty(t, all.SenderEmail())
	assert.Empty(t, all.DeliveryStatus())

	_, err = queries.NewGetParcelsQuery("not an email", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetParcelsQuery("", "rider arriving")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetParcelQuery_ZeroID(t *testing.T) {
	_, err := queries.NewGetParcelQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetRiderParcelsQuery(t *testing.T) {
	tests := []struct {
		status    string
		delivered bool
	}{
		{status: "delivered", delivered: true},
		{status: "rider-assigned", delivered: false},
		{status: "", delivered: false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			q, err := queries.NewGetRiderParcelsQuery("rafiq@example.com", tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.delivered, q.Delivered())
		})
	}

	_, err := queries.NewGetRiderParcelsQuery("", "delivered")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetPaymentsQuery_Access(t *testing.T) {
	owner, err := kernel.NewEmail("nadia@example.com")
	require.NoError(t, err)

	tests := []struct {
		name      string
		email     string
		requester queries.Requester
		wantErr   error
	}{
		{name: "own history", email: "nadia@example.com", requester: queries.Requester{Email: owner}},
		{name: "own history, different case", email: "NADIA@example.com", requester: queries.Requester{Email: owner}},
		{name: "someone else", email: "karim@example.com", requester: queries.Requester{Email: owner}, wantErr: errs.ErrForbidden},
		{name: "everyone as customer", email: "", requester: queries.Requester{Email: owner}, wantErr: errs.ErrForbidden},
		{name: "someone else as admin", email: "karim@example.com", requester: queries.Requester{Email: owner, IsAdmin: true}},
		{name: "everyone as admin", email: "", requester: queries.Requester{Email: owner, IsAdmin: true}},
		{name: "malformed", email: "nadia", requester: queries.Requester{Email: owner, IsAdmin: true}, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetPaymentsQuery(tt.email, tt.requester)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewGetRidersQuery(t *testing.T) {
	q, err := queries.NewGetRidersQuery(queries.RiderFilter{Status: "approved", District: " Dhaka ", WorkStatus: "available"})
	require.NoError(t, err)
	assert.Equal(t, queries.RiderFilter{Status: "approved", District: "Dhaka", WorkStatus: "available"}, q.Filter())

	_, err = queries.NewGetRidersQuery(queries.RiderFilter{Status: "hired", WorkStatus: "sleeping"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "hired")
	assert.Contains(t, err.Error(), "sleeping")
}

func TestNewSearchUsersQuery(t *testing.T) {
	q, err := queries.NewSearchUsersQuery("  nad ", 0)
	require.NoError(t, err)
	assert.Equal(t, "nad", q.Text())
	assert.Equal(t, queries.DefaultUserSearchLimit, q.Limit())

	_, err = queries.NewSearchUsersQuery("nad", queries.MaxUserSearchLimit+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewSearchUsersQuery("nad", -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetUserRoleQuery_ZeroEmail(t *testing.T) {
	_, err := queries.NewGetUserRoleQuery(kernel.Email{})
	require.ErrorIs(t, err, kernel.ErrEmailIsNotConstructed)
}
