package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

// Limites de los campos del modal (tambien los impone Discord, pero no
// confiamos en el cliente).
const (
	MaxOrgPMLen  = 70
	MaxFacLen    = 70
	MaxMotivoLen = 700
)

// RORetention: cuanto viven las filas de ro_requests antes del barrido.
const RORetention = 15 * 24 * time.Hour

var (
	ErrEmptyField     = errors.New("campo obligatorio vacio")
	ErrAlreadyDecided = errors.New("solicitud ya decidida")
)

type RoService struct {
	drafts *session.RoDraftStore
	repo   RoRequests
}

func NewRoService(drafts *session.RoDraftStore, repo RoRequests) *RoService {
	return &RoService{drafts: drafts, repo: repo}
}

// SubmitInfo valida el primer modal y deja el borrador esperando el link.
func (s *RoService) SubmitInfo(guildID, userID, orgPM, fac, motivo string) (session.RoDraft, error) {
	orgPM = truncate(strings.TrimSpace(orgPM), MaxOrgPMLen)
	fac = truncate(strings.TrimSpace(fac), MaxFacLen)
	motivo = truncate(strings.TrimSpace(motivo), MaxMotivoLen)
	if orgPM == "" || fac == "" || motivo == "" {
		return session.RoDraft{}, ErrEmptyField
	}

	d := session.RoDraft{
		GuildID: guildID,
		UserID:  userID,
		OrgPM:   orgPM,
		Fac:     fac,
		Motivo:  motivo,
	}
	s.drafts.Put(d)
	return d, nil
}

func (s *RoService) Draft(guildID, userID string) (session.RoDraft, bool) {
	return s.drafts.Get(guildID, userID)
}

func (s *RoService) DiscardDraft(guildID, userID string) {
	s.drafts.Delete(guildID, userID)
}

// NormalizeClipURL acepta solo URLs absolutas http/https.
func NormalizeClipURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// Register persiste la solicitud ya publicada en el canal de analisis. El
// borrador se borra recien cuando la fila quedo guardada; si esto falla el
// caller borra el mensaje publicado y el usuario puede reintentar.
func (s *RoService) Register(ctx context.Context, d session.RoDraft, channelID, messageID, clipURL string) (int64, error) {
	id, err := s.repo.Create(ctx, storage.RoRequest{
		GuildID:   d.GuildID,
		UserID:    d.UserID,
		ChannelID: channelID,
		MessageID: messageID,
		OrgPM:     d.OrgPM,
		Fac:       d.Fac,
		Motivo:    d.Motivo,
		ClipURL:   clipURL,
	})
	if err != nil {
		return 0, err
	}
	s.drafts.Delete(d.GuildID, d.UserID)
	return id, nil
}

// Decide resuelve la solicitud amarrada a ese mensaje de revision. Si otro
// revisor ya la decidio, ErrAlreadyDecided.
func (s *RoService) Decide(ctx context.Context, guildID, messageID string, d domain.Decision, reviewerID string) (storage.RoRequest, error) {
	req, err := s.repo.FindByMessage(ctx, guildID, messageID)
	if err != nil {
		return storage.RoRequest{}, err
	}
	now := time.Now()
	ok, err := s.repo.Decide(ctx, req.ID, d.Status(), reviewerID, now)
	if err != nil {
		return storage.RoRequest{}, err
	}
	if !ok {
		return storage.RoRequest{}, ErrAlreadyDecided
	}
	req.Status = d.Status()
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	return req, nil
}

// Cleanup borra la fila despues de que la decision quedo logueada; el
// mensaje editado es el registro visible.
func (s *RoService) Cleanup(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *RoService) PurgeOld(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, time.Now().Add(-RORetention))
}

// truncate corta por runas, no por bytes: el limite es de caracteres y un
// corte a mitad de un acento dejaria UTF-8 invalido.
func truncate(v string, max int) string {
	if utf8.RuneCountInString(v) <= max {
		return v
	}
	return string([]rune(v)[:max])
}
