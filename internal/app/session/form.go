package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

// ErrFormInProgress: el usuario ya tiene un formulario abierto.
var ErrFormInProgress = errors.New("formulario en curso")

// AdvanceOutcome es el resultado de procesar un mensaje del formulario.
type AdvanceOutcome int

const (
	// AdvanceInvalid: la respuesta no sirve (p.ej. pregunta pide imagen y no
	// llego ninguna). El paso no avanza, hay que repetir la pregunta.
	AdvanceInvalid AdvanceOutcome = iota
	// AdvanceNext: respuesta registrada, toca la siguiente pregunta.
	AdvanceNext
	// AdvanceCompleted: ultima respuesta registrada, listo para el resumen.
	AdvanceCompleted
	// AdvanceDuplicate: mismo mensaje entregado de nuevo, no-op.
	AdvanceDuplicate
)

// Centinelas guardados como respuesta cuando no hay texto.
const (
	AnswerAttachmentSent = "Anexo enviado"
	AnswerEmpty          = "Sem resposta"
)

var cancelKeywords = map[string]struct{}{
	"cancelar":            {},
	"cancel":              {},
	"cancelar formulario": {},
}

// IsCancelKeyword compara sin mayusculas ni espacios sobrantes.
func IsCancelKeyword(content string) bool {
	_, ok := cancelKeywords[strings.ToLower(strings.TrimSpace(content))]
	return ok
}

// InboundMessage es un mensaje de DM ya despojado del transporte.
type InboundMessage struct {
	ID          string
	Content     string
	Attachments []Attachment
}

type Attachment struct {
	ContentType string
	Name        string
	URL         string
}

// FormState es la sesion de formulario de un usuario. Step apunta a la
// proxima pregunta sin responder; Step == len(preguntas) significa completo.
type FormState struct {
	GuildID       string
	Step          int
	Answers       map[string]string
	Attachments   []string
	LastMessageID string
}

// FormStore mantiene las sesiones por usuario (un usuario, un formulario,
// sin importar la guild). Sin TTL: se cierra por confirmar o cancelar.
type FormStore struct {
	mu        sync.Mutex
	questions []domain.StreamerQuestion
	forms     map[string]*FormState
}

func NewFormStore(questions []domain.StreamerQuestion) *FormStore {
	return &FormStore{
		questions: questions,
		forms:     make(map[string]*FormState),
	}
}

func (s *FormStore) Total() int { return len(s.questions) }

func (s *FormStore) Question(step int) (domain.StreamerQuestion, bool) {
	if step < 0 || step >= len(s.questions) {
		return domain.StreamerQuestion{}, false
	}
	return s.questions[step], true
}

// Start abre una sesion nueva. Si ya hay una, ErrFormInProgress.
func (s *FormStore) Start(userID, guildID string) (FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[userID]; ok {
		return FormState{}, ErrFormInProgress
	}
	st := &FormState{GuildID: guildID, Answers: make(map[string]string)}
	s.forms[userID] = st
	return cloneState(st), nil
}

func (s *FormStore) Get(userID string) (FormState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.forms[userID]
	if !ok {
		return FormState{}, false
	}
	return cloneState(st), true
}

func (s *FormStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, userID)
}

// Advance procesa un mensaje contra la pregunta actual. Idempotente por id
// de mensaje: re-entregas del mismo id no mueven el estado.
func (s *FormStore) Advance(userID string, msg InboundMessage) (AdvanceOutcome, FormState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.forms[userID]
	if !ok {
		return AdvanceInvalid, FormState{}, false
	}
	if msg.ID != "" && msg.ID == st.LastMessageID {
		return AdvanceDuplicate, cloneState(st), true
	}
	if st.Step >= len(s.questions) {
		// ya completo, mensajes tardios no cambian nada
		return AdvanceCompleted, cloneState(st), true
	}

	q := s.questions[st.Step]
	st.LastMessageID = msg.ID

	images := make([]Attachment, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		if domain.IsImageAttachment(a.ContentType, a.Name) {
			images = append(images, a)
		}
	}
	if q.RequireImage && len(images) == 0 {
		return AdvanceInvalid, cloneState(st), true
	}

	kept := msg.Attachments
	if q.RequireImage {
		kept = images
	}
	for _, a := range kept {
		st.Attachments = append(st.Attachments, a.URL)
	}

	answer := strings.TrimSpace(msg.Content)
	if answer == "" {
		if len(kept) > 0 {
			answer = AnswerAttachmentSent
		} else {
			answer = AnswerEmpty
		}
	}
	st.Answers[q.Key] = answer
	st.Step++

	if st.Step >= len(s.questions) {
		return AdvanceCompleted, cloneState(st), true
	}
	return AdvanceNext, cloneState(st), true
}

func cloneState(st *FormState) FormState {
	out := FormState{
		GuildID:       st.GuildID,
		Step:          st.Step,
		Answers:       make(map[string]string, len(st.Answers)),
		Attachments:   append([]string(nil), st.Attachments...),
		LastMessageID: st.LastMessageID,
	}
	for k, v := range st.Answers {
		out.Answers[k] = v
	}
	return out
}
