package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

type fakeRoRepo struct {
	nextID       int64
	rows         map[int64]storage.RoRequest
	failOnCreate bool
}

func newFakeRoRepo() *fakeRoRepo {
	return &fakeRoRepo{nextID: 1, rows: make(map[int64]storage.RoRequest)}
}

func (f *fakeRoRepo) Create(_ context.Context, req storage.RoRequest) (int64, error) {
	if f.failOnCreate {
		return 0, assert.AnError
	}
	req.ID = f.nextID
	req.Status = domain.StatusPending
	req.CreatedAt = time.Now()
	f.rows[req.ID] = req
	f.nextID++
	return req.ID, nil
}

func (f *fakeRoRepo) FindByMessage(_ context.Context, guildID, messageID string) (storage.RoRequest, error) {
	for _, r := range f.rows {
		if r.GuildID == guildID && r.MessageID == messageID {
			return r, nil
		}
	}
	return storage.RoRequest{}, storage.ErrNotFound
}

func (f *fakeRoRepo) Decide(_ context.Context, id int64, status, reviewerID string, at time.Time) (bool, error) {
	r, ok := f.rows[id]
	if !ok || r.Status != domain.StatusPending {
		return false, nil
	}
	r.Status = status
	r.ReviewedBy = reviewerID
	r.ReviewedAt = &at
	f.rows[id] = r
	return true, nil
}

func (f *fakeRoRepo) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRoRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, r := range f.rows {
		if r.CreatedAt.Before(cutoff) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func newRoService(repo RoRequests) *RoService {
	return NewRoService(session.NewRoDraftStore(10*time.Minute), repo)
}

func TestSubmitInfoValidation(t *testing.T) {
	s := newRoService(newFakeRoRepo())

	_, err := s.SubmitInfo("g1", "u1", "  ", "fac", "motivo")
	assert.ErrorIs(t, err, ErrEmptyField)
	_, err = s.SubmitInfo("g1", "u1", "org", "fac", "")
	assert.ErrorIs(t, err, ErrEmptyField)

	d, err := s.SubmitInfo("g1", "u1", " PM Norte ", "Lotus", " invasion a la base ")
	require.NoError(t, err)
	assert.Equal(t, "PM Norte", d.OrgPM)
	assert.Equal(t, "invasion a la base", d.Motivo)

	got, ok := s.Draft("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, d.Motivo, got.Motivo)
}

func TestSubmitInfoTruncates(t *testing.T) {
	s := newRoService(newFakeRoRepo())

	d, err := s.SubmitInfo("g1", "u1",
		strings.Repeat("a", 100),
		strings.Repeat("b", 100),
		strings.Repeat("c", 1000),
	)
	require.NoError(t, err)
	assert.Len(t, d.OrgPM, MaxOrgPMLen)
	assert.Len(t, d.Fac, MaxFacLen)
	assert.Len(t, d.Motivo, MaxMotivoLen)
}

func TestSubmitInfoTruncatesByRunes(t *testing.T) {
	s := newRoService(newFakeRoRepo())

	// 70 caracteres acentuados son validos enteros aunque pesen mas bytes
	exact := "a" + strings.Repeat("ç", 69)
	d, err := s.SubmitInfo("g1", "u1", exact, "fac", "motivo")
	require.NoError(t, err)
	assert.Equal(t, exact, d.OrgPM)

	// pasado el limite se corta por caracteres, nunca a mitad de una runa
	d, err = s.SubmitInfo("g1", "u1", exact+"ção", strings.Repeat("ã", 80), "motivo")
	require.NoError(t, err)
	assert.Equal(t, MaxOrgPMLen, utf8.RuneCountInString(d.OrgPM))
	assert.Equal(t, MaxFacLen, utf8.RuneCountInString(d.Fac))
	assert.True(t, utf8.ValidString(d.OrgPM))
	assert.True(t, utf8.ValidString(d.Fac))
	assert.Equal(t, exact, d.OrgPM)
}

func TestDiscardDraft(t *testing.T) {
	s := newRoService(newFakeRoRepo())

	_, err := s.SubmitInfo("g1", "u1", "org", "fac", "motivo")
	require.NoError(t, err)

	// canal de analisis mal configurado: el flujo descarta el borrador
	s.DiscardDraft("g1", "u1")
	_, ok := s.Draft("g1", "u1")
	assert.False(t, ok)
}

func TestNormalizeClipURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://clips.twitch.tv/abc", "https://clips.twitch.tv/abc", true},
		{"  http://youtu.be/xyz  ", "http://youtu.be/xyz", true},
		{"ftp://host/file", "", false},
		{"clips.twitch.tv/abc", "", false},
		{"https://", "", false},
		{"no es un link", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeClipURL(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestRegisterConsumesDraft(t *testing.T) {
	repo := newFakeRoRepo()
	s := newRoService(repo)

	d, err := s.SubmitInfo("g1", "u1", "org", "fac", "motivo")
	require.NoError(t, err)

	id, err := s.Register(context.Background(), d, "c1", "m1", "https://clip/x")
	require.NoError(t, err)

	// borrador consumido, fila pendiente creada
	_, ok := s.Draft("g1", "u1")
	assert.False(t, ok)
	row := repo.rows[id]
	assert.Equal(t, domain.StatusPending, row.Status)
	assert.Equal(t, "m1", row.MessageID)
}

func TestRegisterKeepsDraftOnFailure(t *testing.T) {
	repo := newFakeRoRepo()
	repo.failOnCreate = true
	s := newRoService(repo)

	d, err := s.SubmitInfo("g1", "u1", "org", "fac", "motivo")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), d, "c1", "m1", "https://clip/x")
	require.Error(t, err)

	// si no se pudo persistir el usuario puede reintentar
	_, ok := s.Draft("g1", "u1")
	assert.True(t, ok)
}

func TestDecide(t *testing.T) {
	repo := newFakeRoRepo()
	s := newRoService(repo)
	d, _ := s.SubmitInfo("g1", "u1", "org", "fac", "motivo")
	id, err := s.Register(context.Background(), d, "c1", "m1", "https://clip/x")
	require.NoError(t, err)

	req, err := s.Decide(context.Background(), "g1", "m1", domain.DecisionApproved, "rev1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, "rev1", req.ReviewedBy)
	require.NotNil(t, req.ReviewedAt)

	// segundo revisor pierde la carrera
	_, err = s.Decide(context.Background(), "g1", "m1", domain.DecisionRejected, "rev2")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, domain.StatusApproved, repo.rows[id].Status)

	// mensaje desconocido
	_, err = s.Decide(context.Background(), "g1", "otro", domain.DecisionApproved, "rev1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPurgeOld(t *testing.T) {
	repo := newFakeRoRepo()
	s := newRoService(repo)

	old := storage.RoRequest{ID: 100, GuildID: "g1", CreatedAt: time.Now().Add(-16 * 24 * time.Hour)}
	repo.rows[100] = old
	d, _ := s.SubmitInfo("g1", "u1", "org", "fac", "motivo")
	fresh, err := s.Register(context.Background(), d, "c1", "m1", "https://clip/x")
	require.NoError(t, err)

	n, err := s.PurgeOld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NotContains(t, repo.rows, int64(100))
	assert.Contains(t, repo.rows, fresh)
}
