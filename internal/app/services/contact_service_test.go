package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailam-cse/achievers-portal/internal/app/forms"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

func newContactFixture() (*ContactService, *fakeContactStore) {
	contacts := newFakeContactStore()
	return NewContactService(contacts, zerolog.Nop()), contacts
}

func TestContactSubmit(t *testing.T) {
	svc, contacts := newContactFixture()

	err := svc.Submit(context.Background(), &forms.ContactForm{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Admissions",
		Message: "How do I apply?",
	})
	require.NoError(t, err)

	messages, err := contacts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Admissions", messages[0].Subject)
	assert.False(t, messages[0].IsRead)
}

func TestContactSubmitInvalid(t *testing.T) {
	svc, contacts := newContactFixture()

	err := svc.Submit(context.Background(), &forms.ContactForm{Name: "Visitor"})
	fieldErrs, ok := apperrors.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "email")
	assert.Empty(t, contacts.messages)
}

func TestMarkRead(t *testing.T) {
	svc, contacts := newContactFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Submit(ctx, &forms.ContactForm{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Subject: "Hello",
			Message: "Hi there",
		}))
	}

	count, err := svc.MarkRead(ctx, []int64{1, 2, 999}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := contacts.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	count, err = svc.MarkRead(ctx, []int64{1}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.False(t, contacts.messages[1].IsRead)
	assert.True(t, contacts.messages[2].IsRead)
}
