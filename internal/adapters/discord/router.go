package discord

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/lotus-group/lotus-bot/internal/app/service"
	"github.com/lotus-group/lotus-bot/internal/app/session"
	"github.com/lotus-group/lotus-bot/internal/domain"
	"github.com/lotus-group/lotus-bot/internal/infra/config"
	"github.com/lotus-group/lotus-bot/internal/infra/storage"
)

type Router struct {
	s       *discordgo.Session
	guildID string
	cfg     config.Config

	guilds      *storage.GuildRepo
	streamerCfg *storage.StreamerConfigRepo
	ro          *service.RoService
	streamers   *service.StreamerService
	uploads     *session.ImagePromptStore

	clickLimiter *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	cfg config.Config,
	guilds *storage.GuildRepo,
	streamerCfg *storage.StreamerConfigRepo,
	ro *service.RoService,
	streamers *service.StreamerService,
	uploads *session.ImagePromptStore,
) *Router {
	return &Router{
		s:            s,
		guildID:      cfg.DiscordGuild,
		cfg:          cfg,
		guilds:       guilds,
		streamerCfg:  streamerCfg,
		ro:           ro,
		streamers:    streamers,
		uploads:      uploads,
		clickLimiter: newUserLimiter(1500 * time.Millisecond),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic en interaccion type=%d: %v", ic.Type, rec)
				ReplyEphemeral(s, ic, "", noticeEmbed(toneError, "Erro", "Ocorreu um erro inesperado, tenta de novo."))
			}
		}()

		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleComponent(s, ic)
		case discordgo.InteractionModalSubmit:
			r.handleModal(s, ic)
		}
	})

	// DMs del formulario + espera de imagen del panel
	r.s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic en message create: %v", rec)
			}
		}()
		if m.GuildID == "" {
			r.handleFormMessage(s, m)
			return
		}
		r.handlePanelImageMessage(s, m)
	})
}

func (r *Router) handleComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()
	id := data.CustomID
	uid := interactionUserID(ic)
	log.Printf("[component] %s by=%s guild=%s", id, uid, ic.GuildID)

	// los controles de decision no pasan por el limiter: el doble click
	// tiene que contestar "ja decidida", no pedir calma
	if !isDecisionControl(id) && !r.clickLimiter.Allow(uid) {
		_ = SendEphemeral(s, ic, "", noticeEmbed(toneWarning, "Calma", "Muitos cliques, espera um segundo."))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	switch {
	case id == roPanelOpenID:
		r.handleRoPanelOpen(ctx, s, ic)
	case strings.HasPrefix(id, "provasro/upload/open/"):
		r.handleRoUploadOpen(s, ic, segment(id, 3), segment(id, 4))
	case id == roApproveID:
		r.handleRoDecision(ctx, s, ic, domain.DecisionApproved)
	case id == roRejectID:
		r.handleRoDecision(ctx, s, ic, domain.DecisionRejected)

	case strings.HasPrefix(id, "streamers/form/start/"):
		r.handleStreamerStart(ctx, s, ic, segment(id, 3))
	case strings.HasPrefix(id, "streamers/form/requirements/"):
		r.handleStreamerInfo(ctx, s, ic, "requirements", segment(id, 3))
	case strings.HasPrefix(id, "streamers/form/benefits/"):
		r.handleStreamerInfo(ctx, s, ic, "benefits", segment(id, 3))
	case strings.HasPrefix(id, "streamers/form/confirm/"):
		r.handleStreamerConfirm(ctx, s, ic, segment(id, 3))
	case strings.HasPrefix(id, "streamers/form/cancel/"):
		r.handleStreamerCancel(s, ic, segment(id, 3))

	case strings.HasPrefix(id, "streamers/review/approve/"):
		if reqID, ok := requestIDFrom(id, 3); ok {
			r.handleStreamerApprove(ctx, s, ic, reqID)
		}
	case strings.HasPrefix(id, "streamers/review/deny/"):
		if reqID, ok := requestIDFrom(id, 3); ok {
			r.handleStreamerDeny(ctx, s, ic, reqID)
		}
	case strings.HasPrefix(id, "streamers/review/role/"):
		if reqID, ok := requestIDFrom(id, 3); ok {
			r.handleStreamerRoleSelect(ctx, s, ic, reqID)
		}
	case strings.HasPrefix(id, "streamers/review/function/"):
		if reqID, ok := requestIDFrom(id, 3); ok {
			r.handleStreamerFunctionSelect(ctx, s, ic, reqID, segment(id, 4))
		}

	default:
		log.Printf("[component] custom id desconocido: %s", id)
	}
}

func (r *Router) handleModal(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ModalSubmitData()
	log.Printf("[modal] %s by=%s guild=%s", data.CustomID, interactionUserID(ic), ic.GuildID)

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	switch data.CustomID {
	case roInfoModalID:
		r.handleRoInfoModal(ctx, s, ic)
	case roUploadModalID:
		r.handleRoUploadModal(ctx, s, ic)
	default:
		log.Printf("[modal] custom id desconocido: %s", data.CustomID)
	}
}
