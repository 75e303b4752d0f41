package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"procurement/internal/core/application/notifications"
	"procurement/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func TestNotifier_ContinuesAfterFailedDispatch(t *testing.T) {
	ctx := context.Background()
	first := ports.Notification{Kind: ports.NotificationFieldChangesPending, OrderID: "1"}
	second := ports.Notification{Kind: ports.NotificationPODecided, OrderID: "2"}

	dispatcher := &MockDispatcher{}
	dispatcher.On("Dispatch", ctx, first).Return(errors.New("broker unavailable")).Once()
	dispatcher.On("Dispatch", ctx, second).Return(nil).Once()

	notifier := notifications.NewNotifier(dispatcher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	delivered := notifier.Notify(ctx, first, second)

	assert.Equal(t, 1, delivered)
	dispatcher.AssertExpectations(t)
}

func TestNotifier_NothingToSend(t *testing.T) {
	dispatcher := &MockDispatcher{}

	delivered := notifications.NewNotifier(dispatcher, nil).Notify(context.Background())

	assert.Zero(t, delivered)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
