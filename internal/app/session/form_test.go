package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-group/lotus-bot/internal/domain"
)

var testQuestions = []domain.StreamerQuestion{
	{Key: "name", Label: "Nome"},
	{Key: "link", Label: "Link"},
	{Key: "proof", Label: "Print", RequireImage: true},
}

func TestFormStoreStart(t *testing.T) {
	s := NewFormStore(testQuestions)

	st, err := s.Start("u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", st.GuildID)
	assert.Equal(t, 0, st.Step)

	_, err = s.Start("u1", "g2")
	assert.ErrorIs(t, err, ErrFormInProgress)
}

func TestFormStoreAdvanceHappyPath(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, err := s.Start("u1", "g1")
	require.NoError(t, err)

	out, st, ok := s.Advance("u1", InboundMessage{ID: "m1", Content: "Joao"})
	require.True(t, ok)
	assert.Equal(t, AdvanceNext, out)
	assert.Equal(t, 1, st.Step)
	assert.Equal(t, "Joao", st.Answers["name"])

	out, st, _ = s.Advance("u1", InboundMessage{ID: "m2", Content: "twitch.tv/joao"})
	assert.Equal(t, AdvanceNext, out)
	assert.Equal(t, 2, st.Step)

	out, st, _ = s.Advance("u1", InboundMessage{
		ID: "m3",
		Attachments: []Attachment{
			{ContentType: "image/png", Name: "print.png", URL: "https://cdn/x.png"},
		},
	})
	assert.Equal(t, AdvanceCompleted, out)
	assert.Equal(t, 3, st.Step)
	assert.Equal(t, AnswerAttachmentSent, st.Answers["proof"])
	assert.Equal(t, []string{"https://cdn/x.png"}, st.Attachments)

	// la sesion sigue viva hasta confirmar o cancelar
	_, ok = s.Get("u1")
	assert.True(t, ok)
}

func TestFormStoreAdvanceImageRequired(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, err := s.Start("u1", "g1")
	require.NoError(t, err)
	s.Advance("u1", InboundMessage{ID: "m1", Content: "a"})
	s.Advance("u1", InboundMessage{ID: "m2", Content: "b"})

	// texto sin imagen no pasa
	out, st, ok := s.Advance("u1", InboundMessage{ID: "m3", Content: "mira mi perfil"})
	require.True(t, ok)
	assert.Equal(t, AdvanceInvalid, out)
	assert.Equal(t, 2, st.Step)

	// adjunto que no es imagen tampoco
	out, st, _ = s.Advance("u1", InboundMessage{
		ID:          "m4",
		Attachments: []Attachment{{ContentType: "video/mp4", Name: "clip.mp4", URL: "u"}},
	})
	assert.Equal(t, AdvanceInvalid, out)
	assert.Equal(t, 2, st.Step)
	assert.Empty(t, st.Attachments)

	// deteccion por extension cuando falta el content-type
	out, st, _ = s.Advance("u1", InboundMessage{
		ID:          "m5",
		Attachments: []Attachment{{Name: "perfil.JPG", URL: "https://cdn/p.jpg"}},
	})
	assert.Equal(t, AdvanceCompleted, out)
	assert.Equal(t, []string{"https://cdn/p.jpg"}, st.Attachments)
}

func TestFormStoreAdvanceDuplicateMessage(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, err := s.Start("u1", "g1")
	require.NoError(t, err)

	out1, st1, _ := s.Advance("u1", InboundMessage{ID: "m1", Content: "Joao"})
	out2, st2, _ := s.Advance("u1", InboundMessage{ID: "m1", Content: "Joao"})

	assert.Equal(t, AdvanceNext, out1)
	assert.Equal(t, AdvanceDuplicate, out2)
	assert.Equal(t, st1.Step, st2.Step)
	assert.Equal(t, st1.Answers, st2.Answers)
}

func TestFormStoreAdvanceEmptyAnswerSentinel(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, err := s.Start("u1", "g1")
	require.NoError(t, err)

	_, st, _ := s.Advance("u1", InboundMessage{ID: "m1", Content: "   "})
	assert.Equal(t, AnswerEmpty, st.Answers["name"])
}

func TestFormStoreAdvanceUnknownUser(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, _, ok := s.Advance("nadie", InboundMessage{ID: "m1", Content: "x"})
	assert.False(t, ok)
}

func TestFormStoreAdvanceAfterCompletion(t *testing.T) {
	s := NewFormStore(testQuestions)
	_, err := s.Start("u1", "g1")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		s.Advance("u1", InboundMessage{ID: fmt.Sprintf("m%d", i), Content: "x"})
	}
	s.Advance("u1", InboundMessage{ID: "mp", Attachments: []Attachment{{ContentType: "image/png", URL: "u"}}})

	// mensaje tardio despues del resumen: nada cambia
	out, st, ok := s.Advance("u1", InboundMessage{ID: "tarde", Content: "hola?"})
	require.True(t, ok)
	assert.Equal(t, AdvanceCompleted, out)
	assert.Equal(t, len(testQuestions), st.Step)
	assert.NotContains(t, st.Answers, "hola?")
}

func TestIsCancelKeyword(t *testing.T) {
	for _, kw := range []string{"cancelar", "CANCELAR", " Cancel ", "cancelar formulario"} {
		assert.True(t, IsCancelKeyword(kw), kw)
	}
	assert.False(t, IsCancelKeyword("quiero cancelar"))
	assert.False(t, IsCancelKeyword(""))
}
