package order_test

import (
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	t.Run("should round trip every stage", func(t *testing.T) {
		for _, status := range order.Statuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should list eighteen stages in order", func(t *testing.T) {
		statuses := order.Statuses()

		require.Len(t, statuses, 18)
		assert.Equal(t, order.POReceivedFromClient, statuses[0])
		assert.Equal(t, order.Completed, statuses[len(statuses)-1])
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("Shipped")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should render labels without underscores", func(t *testing.T) {
		assert.Equal(t, "Sent PO for Approval", order.SentPOForApproval.Label())
	})

	t.Run("should report invalid numeric values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(99).String())
		require.Error(t, order.Status(99).Validate())
		require.Error(t, order.Unknown.Validate())
	})
}

func TestStatus_RequiresFieldChangeApproval(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected bool
	}{
		{order.POReceivedFromClient, false},
		{order.DraftingPOForSupplier, false},
		{order.SentPOForApproval, false},
		{order.PORejected, false},
		{order.POApproved, true},
		{order.AwaitingCOA, true},
		{order.Completed, true},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.RequiresFieldChangeApproval())
		})
	}
}

func TestTransitionRules(t *testing.T) {
	t.Run("should only reference valid stages and roles", func(t *testing.T) {
		for _, rule := range order.TransitionRules() {
			require.NoError(t, rule.From.Validate())
			require.NoError(t, rule.To.Validate())
			require.NoError(t, rule.RequiredRole.Validate())
			assert.NotEmpty(t, rule.Description)
		}
	})

	t.Run("should gate PO approval to privileged roles", func(t *testing.T) {
		for _, rule := range order.TransitionRules() {
			if rule.From == order.SentPOForApproval {
				assert.True(t, rule.RequiredRole == kernel.RoleManagement || rule.RequiredRole == kernel.RoleAdmin,
					"rule %s -> %s", rule.From, rule.To)
			}
		}
	})

	t.Run("should return an independent copy", func(t *testing.T) {
		rules := order.TransitionRules()
		rules[0].RequiredRole = kernel.RoleAdmin

		assert.Equal(t, kernel.RoleEmployee, order.TransitionRules()[0].RequiredRole)
	})
}
