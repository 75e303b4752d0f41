package commands_test

import (
	"testing"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	actor := mustActor(t, "Asha Rao", kernel.RoleEmployee)

	cmd, err := commands.NewCreateOrderCommand(id, sampleContent(t), actor)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "Acme Foods", cmd.Content().Customer.Name)
	assert.Equal(t, actor, cmd.Actor())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, sampleContent(t), mustActor(t, "Asha Rao", kernel.RoleEmployee))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidContent(t *testing.T) {
	content := sampleContent(t)
	content.Customer.Name = ""

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), content, kernel.Actor{})

	require.ErrorIs(t, err, errs.ErrValidation)
	require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
}

func TestNewChangeStatusCommand(t *testing.T) {
	t.Run("trims options", func(t *testing.T) {
		cmd, err := commands.NewChangeStatusCommand(kernel.NewUUID(), order.SentPOForApproval,
			mustActor(t, "Asha Rao", kernel.RoleEmployee),
			order.StatusChangeOptions{ApproverIdentity: "  meera@hrv.example ", Note: " urgent "})

		require.NoError(t, err)
		assert.Equal(t, "meera@hrv.example", cmd.Options().ApproverIdentity)
		assert.Equal(t, "urgent", cmd.Options().Note)
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		_, err := commands.NewChangeStatusCommand(kernel.NewUUID(), order.Unknown,
			mustActor(t, "Asha Rao", kernel.RoleEmployee), order.StatusChangeOptions{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewResolvePendingChangeCommand_UnknownDecision(t *testing.T) {
	_, err := commands.NewResolvePendingChangeCommand(kernel.NewUUID(), order.DecisionUnknown, mustActor(t, "Meera Iyer", kernel.RoleManagement))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ChangeStatusCommand{}.Validate(), commands.ErrChangeStatusCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SubmitEditCommand{}.Validate(), commands.ErrSubmitEditCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ResolvePendingChangeCommand{}.Validate(),
		commands.ErrResolvePendingChangeCommandIsNotConstructed)
}
