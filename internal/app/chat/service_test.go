package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dmchat/internal/pkg/errs"
)

// fakeStore is an in-memory MessageStore for service tests.
type fakeStore struct {
	users    map[string]bool
	messages []Message

	failUserExists    bool
	failCreateMessage bool
	failList          bool
}

func newFakeStore(users ...string) *fakeStore {
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u] = true
	}
	return &fakeStore{users: known}
}

func (s *fakeStore) CreateMessage(_ context.Context, senderID, recipientID, text, image string) (Message, error) {
	if s.failCreateMessage {
		return Message{}, errors.New("insert failed")
	}

	msg := Message{
		ID:          fmt.Sprintf("msg-%d", len(s.messages)+1),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		Image:       image,
		CreatedAt:   time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *fakeStore) ListConversation(_ context.Context, userAID, userBID string) ([]Message, error) {
	if s.failList {
		return nil, errors.New("select failed")
	}

	var out []Message
	for _, m := range s.messages {
		if (m.SenderID == userAID && m.RecipientID == userBID) ||
			(m.SenderID == userBID && m.RecipientID == userAID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) UserExists(_ context.Context, id string) (bool, error) {
	if s.failUserExists {
		return false, errors.New("lookup failed")
	}
	return s.users[id], nil
}

// fakeRelay records delivery attempts.
type fakeRelay struct {
	deliveries []fakeDelivery
}

type fakeDelivery struct {
	recipientID string
	message     any
}

func (r *fakeRelay) Deliver(recipientID string, message any) {
	r.deliveries = append(r.deliveries, fakeDelivery{recipientID: recipientID, message: message})
}

func TestService_SendMessage_PersistsThenRelays(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	msg, cerr := svc.SendMessage(context.Background(), "alice", "bob", "hello", "")
	req.Nil(cerr)

	req.NotEmpty(msg.ID)
	req.Equal("alice", msg.SenderID)
	req.Equal("bob", msg.RecipientID)
	req.Equal("hello", msg.Text)
	req.False(msg.CreatedAt.IsZero())

	// The relay received the persisted message, addressed to the recipient
	req.Len(relay.deliveries, 1)
	req.Equal("bob", relay.deliveries[0].recipientID)
	req.Equal(msg, relay.deliveries[0].message)
}

func TestService_SendMessage_UnknownRecipient(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.SendMessage(context.Background(), "alice", "ghost", "hello", "")
	req.NotNil(cerr)
	req.Equal(errs.ErrRecipientNotFound, cerr.Code)

	// Nothing persisted, nothing relayed
	req.Empty(store.messages)
	req.Empty(relay.deliveries)
}

func TestService_SendMessage_EmptyPayload(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.SendMessage(context.Background(), "alice", "bob", "", "")
	req.NotNil(cerr)
	req.Equal(errs.ErrEmptyMessage, cerr.Code)
	req.Empty(store.messages)
}

func TestService_SendMessage_ImageOnlyIsAllowed(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	msg, cerr := svc.SendMessage(context.Background(), "alice", "bob", "", "avatars/pic.png")
	req.Nil(cerr)
	req.Equal("avatars/pic.png", msg.Image)
	req.Len(relay.deliveries, 1)
}

func TestService_SendMessage_TextTooLong(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	oversized := strings.Repeat("a", MaxTextBytes+1)
	_, cerr := svc.SendMessage(context.Background(), "alice", "bob", oversized, "")
	req.NotNil(cerr)
	req.Equal(errs.ErrMessageContentTooLong, cerr.Code)
	req.Empty(store.messages)
	req.Empty(relay.deliveries)
}

func TestService_SendMessage_StoreFailureSkipsRelay(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	store.failCreateMessage = true
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.SendMessage(context.Background(), "alice", "bob", "hello", "")
	req.NotNil(cerr)
	req.Equal(errs.ErrStorageFailure, cerr.Code)

	// Persistence failed, so live delivery must not have been attempted
	req.Empty(relay.deliveries)
}

func TestService_SendMessage_ExistenceCheckFailure(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	store.failUserExists = true
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.SendMessage(context.Background(), "alice", "bob", "hello", "")
	req.NotNil(cerr)
	req.Equal(errs.ErrStorageFailure, cerr.Code)
	req.Empty(relay.deliveries)
}

func TestService_ListConversation_BothDirections(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob", "carol")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	ctx := context.Background()
	_, cerr := svc.SendMessage(ctx, "alice", "bob", "hi bob", "")
	req.Nil(cerr)
	_, cerr = svc.SendMessage(ctx, "bob", "alice", "hi alice", "")
	req.Nil(cerr)
	_, cerr = svc.SendMessage(ctx, "alice", "carol", "hi carol", "")
	req.Nil(cerr)

	messages, cerr := svc.ListConversation(ctx, "alice", "bob")
	req.Nil(cerr)

	// Both directions, oldest first, other conversations excluded
	req.Len(messages, 2)
	req.Equal("hi bob", messages[0].Text)
	req.Equal("hi alice", messages[1].Text)
}

func TestService_ListConversation_UnknownPeer(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice")
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.ListConversation(context.Background(), "alice", "ghost")
	req.NotNil(cerr)
	req.Equal(errs.ErrConversationPeerInvalid, cerr.Code)
}

func TestService_ListConversation_StoreFailure(t *testing.T) {
	req := require.New(t)
	store := newFakeStore("alice", "bob")
	store.failList = true
	relay := &fakeRelay{}
	svc := NewService(store, relay)

	_, cerr := svc.ListConversation(context.Background(), "alice", "bob")
	req.NotNil(cerr)
	req.Equal(errs.ErrStorageFailure, cerr.Code)
}
