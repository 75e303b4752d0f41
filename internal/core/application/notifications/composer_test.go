package notifications_test

import (
	"testing"
	"time"

	"procurement/internal/core/application/notifications"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func mustActor(t *testing.T, name string, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("id-"+name, name, role)
	require.NoError(t, err)
	return a
}

func kg(t *testing.T, value int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(decimal.NewFromInt(value), "KG")
	require.NoError(t, err)
	return q
}

func orderAt(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("45.5"), "USD")
	require.NoError(t, err)
	content := order.Content{
		PONumber:        "HRVPOR2024-0007",
		Quantity:        kg(t, 100),
		PriceToCustomer: price,
		Customer:        order.Contact{Name: "Acme Foods"},
		Materials: []order.MaterialItem{
			{ID: kernel.NewUUID(), Name: "Sodium Citrate", Quantity: kg(t, 100), CustomerUnitPrice: price},
		},
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), status, content, mustActor(t, "Asha Rao", kernel.RoleEmployee),
		testNow.Add(-time.Hour), false, nil, order.NewAuditTrail(nil, nil))
	require.NoError(t, err)
	return o
}

func lockedOrder(t *testing.T) *order.Order {
	t.Helper()
	baseline := orderAt(t, order.POApproved)
	content := baseline.Content()
	content.Materials[0].Quantity = kg(t, 150)
	proposed, err := baseline.WithContent(content)
	require.NoError(t, err)

	result, err := services.NewApprovalLockManager(services.NewDiffEngine()).
		Submit(baseline, proposed, mustActor(t, "Ravi Kumar", kernel.RoleEmployee), testNow)
	require.NoError(t, err)
	require.True(t, result.Locked)
	return result.Committed
}

func TestComposer_StatusChanged_ApprovalRequested(t *testing.T) {
	o := orderAt(t, order.SentPOForApproval)

	got := notifications.NewComposer().StatusChanged(o,
		order.StatusChangeOptions{ApproverIdentity: "meera@example.com"}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, ports.NotificationApprovalRequested, got[0].Kind)
	assert.Equal(t, "meera@example.com", got[0].Recipient)
	assert.Equal(t, "HRVPOR2024-0007", got[0].PONumber)
	assert.Equal(t, o.ID().String(), got[0].OrderID)
	assert.Equal(t, "Approval requested for PO HRVPOR2024-0007", got[0].Subject)
	assert.Equal(t, "Order for Acme Foods moved to Sent PO for Approval.", got[0].Summary)
	assert.Equal(t, testNow, got[0].OccurredAt)
}

func TestComposer_StatusChanged_AwaitingApprovalWithoutApproverNotifiesNobody(t *testing.T) {
	got := notifications.NewComposer().StatusChanged(orderAt(t, order.AwaitingApproval),
		order.StatusChangeOptions{}, testNow)

	assert.Empty(t, got)
}

func TestComposer_StatusChanged_RejectionGoesToCreatorWithReason(t *testing.T) {
	o := orderAt(t, order.PORejected)

	got := notifications.NewComposer().StatusChanged(o,
		order.StatusChangeOptions{Note: "price too high"}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, ports.NotificationPODecided, got[0].Kind)
	assert.Equal(t, "id-Asha Rao", got[0].Recipient)
	assert.Equal(t, "PO HRVPOR2024-0007: PO Rejected", got[0].Subject)
	assert.Contains(t, got[0].Summary, "Note: price too high")
}

func TestComposer_StatusChanged_OtherStagesAreSilent(t *testing.T) {
	for _, status := range []order.Status{order.DraftingPOForSupplier, order.InTransit, order.Completed} {
		assert.Empty(t, notifications.NewComposer().StatusChanged(orderAt(t, status),
			order.StatusChangeOptions{ApproverIdentity: "someone"}, testNow), status.String())
	}
}

func TestComposer_FieldChangesPending(t *testing.T) {
	o := lockedOrder(t)

	got := notifications.NewComposer().FieldChangesPending(o)

	require.Len(t, got, 1)
	assert.Equal(t, ports.NotificationFieldChangesPending, got[0].Kind)
	assert.Equal(t, ports.ApproverGroupRecipient, got[0].Recipient)
	assert.Equal(t, "Ravi Kumar requests 1 field change(s) on PO HRVPOR2024-0007", got[0].Subject)
	assert.Equal(t, "Material 1 - Quantity: 100 KG -> 150 KG", got[0].Summary)
	assert.Equal(t, testNow, got[0].OccurredAt)
}

func TestComposer_FieldChangesPending_UnlockedOrder(t *testing.T) {
	assert.Nil(t, notifications.NewComposer().FieldChangesPending(orderAt(t, order.POApproved)))
}

func TestComposer_FieldChangesResolved(t *testing.T) {
	resolvedAt := testNow.Add(time.Hour)
	resolved, err := services.NewApprovalLockManager(services.NewDiffEngine()).
		Resolve(lockedOrder(t), order.DecisionReject, mustActor(t, "Meera Iyer", kernel.RoleManagement), resolvedAt)
	require.NoError(t, err)

	got := notifications.NewComposer().FieldChangesResolved(resolved)

	require.Len(t, got, 1)
	assert.Equal(t, ports.NotificationFieldChangesResolved, got[0].Kind)
	assert.Equal(t, "id-Ravi Kumar", got[0].Recipient)
	assert.Equal(t, "Field changes on PO HRVPOR2024-0007 rejected by Meera Iyer", got[0].Subject)
	assert.Equal(t, resolvedAt, got[0].OccurredAt)
}

func TestComposer_FieldChangesResolved_StillPending(t *testing.T) {
	assert.Nil(t, notifications.NewComposer().FieldChangesResolved(lockedOrder(t)))
}

func TestComposer_Reminder(t *testing.T) {
	orderID := kernel.NewUUID()
	pending := queries.PendingFieldChange{
		RequestID:       kernel.NewUUID(),
		OrderID:         orderID,
		PONumber:        "HRVPOR2024-0007",
		CustomerName:    "Acme Foods",
		RequestedByName: "Ravi Kumar",
		RequestedAt:     testNow.Add(-26*time.Hour - 30*time.Second),
		FieldCount:      2,
	}

	got := notifications.NewComposer().Reminder(pending, testNow)

	assert.Equal(t, ports.NotificationFieldChangesReminder, got.Kind)
	assert.Equal(t, ports.ApproverGroupRecipient, got.Recipient)
	assert.Equal(t, orderID.String(), got.OrderID)
	assert.Equal(t, "Reminder: field changes on PO HRVPOR2024-0007 await approval", got.Subject)
	assert.Equal(t, "Ravi Kumar requested 2 field change(s) for Acme Foods 26h0m0s ago.", got.Summary)
}
