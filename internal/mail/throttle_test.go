package mail_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/parduccinward/tukuy-cms/internal/mail"
	"github.com/parduccinward/tukuy-cms/internal/mocks"
)

func TestThrottled_DelegatesWithinBurst(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMailer(ctrl)
	next.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	m := mail.NewThrottled(next, 1, 2)
	for i := 0; i < 2; i++ {
		require.NoError(t, m.Send(context.Background(), mail.Message{To: []string{"a@example.com"}}))
	}
}

func TestThrottled_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	boom := errors.New("boom")
	next := mocks.NewMockMailer(ctrl)
	next.EXPECT().Send(gomock.Any(), gomock.Any()).Return(boom)

	m := mail.NewThrottled(next, 10, 1)
	require.ErrorIs(t, m.Send(context.Background(), mail.Message{To: []string{"a@example.com"}}), boom)
}

func TestThrottled_GivesUpWhenContextEnds(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMailer(ctrl)
	next.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// One token per minute: the second call cannot be served before the deadline.
	m := mail.NewThrottled(next, 1.0/60, 1)
	require.NoError(t, m.Send(context.Background(), mail.Message{To: []string{"a@example.com"}}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, m.Send(ctx, mail.Message{To: []string{"a@example.com"}}))
}
