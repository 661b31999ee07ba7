package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

type fakeStreamerRepo struct {
	nextID int64
	rows   map[int64]storage.StreamerRequest
}

func newFakeStreamerRepo() *fakeStreamerRepo {
	return &fakeStreamerRepo{nextID: 1, rows: make(map[int64]storage.StreamerRequest)}
}

func (f *fakeStreamerRepo) Create(_ context.Context, req storage.StreamerRequest) (int64, error) {
	req.ID = f.nextID
	req.Status = domain.StatusPending
	req.CreatedAt = time.Now()
	f.rows[req.ID] = req
	f.nextID++
	return req.ID, nil
}

func (f *fakeStreamerRepo) SetMessage(_ context.Context, id int64, channelID, messageID string) error {
	r, ok := f.rows[id]
	if !ok {
		return storage.ErrNotFound
	}
	r.ChannelID = channelID
	r.MessageID = messageID
	f.rows[id] = r
	return nil
}

func (f *fakeStreamerRepo) FindByID(_ context.Context, id int64) (storage.StreamerRequest, error) {
	r, ok := f.rows[id]
	if !ok {
		return storage.StreamerRequest{}, storage.ErrNotFound
	}
	return r, nil
}

func (f *fakeStreamerRepo) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeStreamerRepo) Decide(_ context.Context, id int64, status, roleKey, reviewerID string, at time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != domain.StatusPending {
		return false, nil
	}
	r.Status = status
	r.SelectedRoleKey = roleKey
	r.ReviewedBy = reviewerID
	r.ReviewedAt = &at
	f.rows[id] = r
	return true, nil
}

func newStreamerService(repo StreamerRequests) *StreamerService {
	return NewStreamerService(session.NewFormStore(domain.StreamerQuestions), repo)
}

func TestStreamerRegisterAndAttach(t *testing.T) {
	repo := newFakeStreamerRepo()
	s := newStreamerService(repo)

	st := session.FormState{
		GuildID:     "g1",
		Answers:     map[string]string{"realName": "Joao", "age": "22"},
		Attachments: []string{"https://cdn/p.png"},
	}
	id, err := s.Register(context.Background(), "u1", st)
	require.NoError(t, err)

	require.NoError(t, s.AttachMessage(context.Background(), id, "c1", "m1"))

	got, err := s.Request(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "m1", got.MessageID)
	assert.Equal(t, "Joao", got.Answers["realName"])
	assert.Equal(t, []string{"https://cdn/p.png"}, got.Attachments)
}

func TestStreamerDecideApprove(t *testing.T) {
	repo := newFakeStreamerRepo()
	s := newStreamerService(repo)
	id, err := s.Register(context.Background(), "u1", session.FormState{GuildID: "g1"})
	require.NoError(t, err)

	req, err := s.Decide(context.Background(), id, domain.DecisionApproved, domain.RoleKeyTier1, "rev1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, domain.RoleKeyTier1, req.SelectedRoleKey)

	// re-entrada: ya no esta pendiente
	_, err = s.Decide(context.Background(), id, domain.DecisionRejected, "", "rev2")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, domain.StatusApproved, repo.rows[id].Status)
}

func TestStreamerDecideDeny(t *testing.T) {
	repo := newFakeStreamerRepo()
	s := newStreamerService(repo)
	id, err := s.Register(context.Background(), "u1", session.FormState{GuildID: "g1"})
	require.NoError(t, err)

	req, err := s.Decide(context.Background(), id, domain.DecisionRejected, "", "rev1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, req.Status)
	assert.Empty(t, req.SelectedRoleKey)
}

func TestStreamerDecideUnknown(t *testing.T) {
	s := newStreamerService(newFakeStreamerRepo())
	_, err := s.Decide(context.Background(), 999, domain.DecisionApproved, "", "rev1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
