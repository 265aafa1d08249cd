package lifecycle

import (
	"testing"

	"meal-market/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderIn(status models.OrderStatus) models.Order {
	return models.Order{ID: 42, Status: status}
}

func TestStep_ProviderForwardChain(t *testing.T) {
	steps := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusPending, models.StatusAccepted},
		{models.StatusAccepted, models.StatusCooking},
		{models.StatusCooking, models.StatusOnTheWay},
		{models.StatusOnTheWay, models.StatusDelivered},
	}
	for _, s := range steps {
		t.Run(string(s.from)+"_to_"+string(s.to), func(t *testing.T) {
			result, err := Step(orderIn(s.from), s.to, models.RoleProvider)
			require.NoError(t, err)
			assert.Equal(t, s.to, result.Order.Status)
			assert.Equal(t, s.from, result.From)
			assert.False(t, result.Override)
		})
	}
}

func TestStep_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor models.UserRole
		want  error
	}{
		{
			name:  "provider skips ahead",
			from:  models.StatusPending,
			to:    models.StatusDelivered,
			actor: models.RoleProvider,
			want:  ErrIllegalTransition,
		},
		{
			name:  "backward transition",
			from:  models.StatusCooking,
			to:    models.StatusAccepted,
			actor: models.RoleProvider,
			want:  ErrIllegalTransition,
		},
		{
			name:  "provider may not cancel",
			from:  models.StatusPending,
			to:    models.StatusCancelled,
			actor: models.RoleProvider,
			want:  ErrUnauthorizedActor,
		},
		{
			name:  "customer cancel after cooking started",
			from:  models.StatusCooking,
			to:    models.StatusCancelled,
			actor: models.RoleCustomer,
			want:  ErrUnauthorizedActor,
		},
		{
			name:  "customer may not accept",
			from:  models.StatusPending,
			to:    models.StatusAccepted,
			actor: models.RoleCustomer,
			want:  ErrUnauthorizedActor,
		},
		{
			name:  "delivered is terminal",
			from:  models.StatusDelivered,
			to:    models.StatusCancelled,
			actor: models.RoleCustomer,
			want:  ErrTerminalState,
		},
		{
			name:  "cancelled is terminal even for admin",
			from:  models.StatusCancelled,
			to:    models.StatusAccepted,
			actor: models.RoleAdmin,
			want:  ErrTerminalState,
		},
		{
			name:  "admin cannot skip ahead either",
			from:  models.StatusPending,
			to:    models.StatusOnTheWay,
			actor: models.RoleAdmin,
			want:  ErrIllegalTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Step(orderIn(tt.from), tt.to, tt.actor)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStep_CustomerCancelBeforeCooking(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusPending, models.StatusAccepted} {
		result, err := Step(orderIn(from), models.StatusCancelled, models.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, result.Order.Status)
		assert.False(t, result.Override)
	}
}

func TestStep_AdminOverride(t *testing.T) {
	// Admin may take any legal edge, including cancels the customer no
	// longer can, but the result is flagged as an override.
	result, err := Step(orderIn(models.StatusOnTheWay), models.StatusCancelled, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, result.Override)
	assert.Equal(t, models.StatusCancelled, result.Order.Status)

	result, err = Step(orderIn(models.StatusPending), models.StatusAccepted, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, result.Override)
}

func TestStep_ExhaustiveLegalTable(t *testing.T) {
	// Every (from, to, role) triple outside the declared table must be
	// rejected; every one inside must be accepted.
	all := []models.OrderStatus{
		models.StatusPending, models.StatusAccepted, models.StatusCooking,
		models.StatusOnTheWay, models.StatusDelivered, models.StatusCancelled,
	}
	roles := []models.UserRole{models.RoleCustomer, models.RoleProvider}

	legal := map[[3]string]bool{}
	for _, tr := range AllTransitions() {
		legal[[3]string{string(tr.From), string(tr.To), string(tr.Role)}] = true
	}

	for _, from := range all {
		for _, to := range all {
			for _, role := range roles {
				_, err := Step(orderIn(from), to, role)
				if legal[[3]string{string(from), string(to), string(role)}] {
					assert.NoError(t, err, "%s → %s by %s should be accepted", from, to, role)
				} else {
					assert.Error(t, err, "%s → %s by %s should be rejected", from, to, role)
				}
			}
		}
	}
}

func TestNextStates(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusAccepted, models.StatusCancelled},
		NextStates(models.StatusPending))
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		NextStates(models.StatusOnTheWay))
	assert.Empty(t, NextStates(models.StatusDelivered))
	assert.Empty(t, NextStates(models.StatusCancelled))
}
