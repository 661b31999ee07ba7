package service

import (
	"context"
	"time"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

type StreamerService struct {
	forms *session.FormStore
	repo  StreamerRequests
}

func NewStreamerService(forms *session.FormStore, repo StreamerRequests) *StreamerService {
	return &StreamerService{forms: forms, repo: repo}
}

func (s *StreamerService) Forms() *session.FormStore { return s.forms }

func (s *StreamerService) StartForm(userID, guildID string) (session.FormState, error) {
	return s.forms.Start(userID, guildID)
}

func (s *StreamerService) State(userID string) (session.FormState, bool) {
	return s.forms.Get(userID)
}

func (s *StreamerService) HandleMessage(userID string, msg session.InboundMessage) (session.AdvanceOutcome, session.FormState, bool) {
	return s.forms.Advance(userID, msg)
}

// AbortForm tira la sesion (DM bloqueado, cancelacion, etc).
func (s *StreamerService) AbortForm(userID string) {
	s.forms.Delete(userID)
}

// Register persiste la candidatura en pending. La sesion NO se borra aca:
// el caller la cierra con Finish solo si el mensaje de revision salio bien,
// para que el usuario pueda reintentar el envio.
func (s *StreamerService) Register(ctx context.Context, userID string, st session.FormState) (int64, error) {
	return s.repo.Create(ctx, storage.StreamerRequest{
		GuildID:     st.GuildID,
		UserID:      userID,
		Answers:     st.Answers,
		Attachments: st.Attachments,
	})
}

func (s *StreamerService) AttachMessage(ctx context.Context, id int64, channelID, messageID string) error {
	return s.repo.SetMessage(ctx, id, channelID, messageID)
}

// Discard tira la fila cuando el mensaje de revision nunca llego a salir.
func (s *StreamerService) Discard(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *StreamerService) Finish(userID string) {
	s.forms.Delete(userID)
}

func (s *StreamerService) Request(ctx context.Context, id int64) (storage.StreamerRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// Decide: misma regla condicional que R.O. Solo gana el primer revisor.
func (s *StreamerService) Decide(ctx context.Context, id int64, d domain.Decision, roleKey, reviewerID string) (storage.StreamerRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storage.StreamerRequest{}, err
	}
	now := time.Now()
	ok, err := s.repo.Decide(ctx, id, d.Status(), roleKey, reviewerID, now)
	if err != nil {
		return storage.StreamerRequest{}, err
	}
	if !ok {
		return storage.StreamerRequest{}, ErrAlreadyDecided
	}
	req.Status = d.Status()
	req.SelectedRoleKey = roleKey
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	return req, nil
}
