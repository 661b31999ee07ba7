package domain

import (
	"regexp"
	"strings"
)

// Claves de los cargos de streamer configurables por guild.
const (
	RoleKeyInfluencer = "influencer"
	RoleKeyCreator    = "creator"
	RoleKeyTier1      = "tier1"
	RoleKeyTier2      = "tier2"
)

// StreamerRoleKeys mantiene el orden de presentacion del select.
var StreamerRoleKeys = []string{RoleKeyInfluencer, RoleKeyCreator, RoleKeyTier1, RoleKeyTier2}

var StreamerRoleLabels = map[string]string{
	RoleKeyInfluencer: "ALTA - TIER 1 - INFLUENCER",
	RoleKeyCreator:    "ALTA - TIER 2 - CRIADOR DE CONTEUDO",
	RoleKeyTier1:      "ALTA - TIER 3 - CCONTEUDO",
	RoleKeyTier2:      "ALTA - TIER 4 STREAMER",
}

// StreamerQuestion es una pregunta del formulario por DM.
type StreamerQuestion struct {
	Key          string
	Label        string
	RequireImage bool
}

var StreamerQuestions = []StreamerQuestion{
	{Key: "requirementsRead", Label: "Leu os requisitos? (SIM/NAO)"},
	{Key: "realName", Label: "Nome real"},
	{Key: "age", Label: "Idade real"},
	{Key: "platformLink", Label: "Link da plataforma (Twitch, YouTube, TikTok...)"},
	{Key: "contentType", Label: "Tipo de conteudo"},
	{Key: "cityNameId", Label: "Nome e ID da cidade ingame"},
	{Key: "inGamePhone", Label: "Numero ingame (telefone RP)"},
	{Key: "rpActivity", Label: "Atuacao (profissao ou funcao no RP)"},
	{Key: "proof", Label: "Envie um print do perfil/seguindo (somente imagem)", RequireImage: true},
}

var reImageExt = regexp.MustCompile(`\.(png|jpe?g|gif|webp|bmp)$`)

// IsImageAttachment decide por content-type o extension del nombre.
func IsImageAttachment(contentType, name string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return true
	}
	return reImageExt.MatchString(strings.ToLower(name))
}
