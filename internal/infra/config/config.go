package config

import (
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
)

type Config struct {
	DatabaseURL  string
	DiscordToken string
	DiscordGuild string // opcional: limita el registro de comandos a una guild

	// Aprobacion de streamer con funcion (opcionales)
	StreamerVerifyRoleID  string            // rol de verificacion extra
	StreamerFunctionRoles map[string]string // clave de funcion -> role id
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL:          get("DATABASE_URL", true),
		DiscordToken:         get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:         get("DISCORD_GUILD_ID", false),
		StreamerVerifyRoleID: get("STREAMER_VERIFY_ROLE_ID", false),
	}
	cfg.StreamerFunctionRoles = ParseFunctionRoles(get("STREAMER_FUNCTION_ROLES", false))
	return cfg
}

// FunctionKeys devuelve las claves ordenadas, para armar selects estables.
func (c Config) FunctionKeys() []string {
	keys := make([]string, 0, len(c.StreamerFunctionRoles))
	for k := range c.StreamerFunctionRoles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var reSnowflake = regexp.MustCompile(`^[0-9]{17,20}$`)

// ParseFunctionRoles parsea "caster=123...,editor=456..." validando cada
// entrada al arranque. Entradas rotas se loguean y se descartan, el resto
// sigue funcionando.
func ParseFunctionRoles(raw string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, id, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		id = strings.TrimSpace(id)
		if !ok || key == "" || id == "" {
			log.Printf("[config] STREAMER_FUNCTION_ROLES: entrada invalida %q, ignorada", entry)
			continue
		}
		if !reSnowflake.MatchString(id) {
			log.Printf("[config] STREAMER_FUNCTION_ROLES: role id invalido en %q, ignorada", entry)
			continue
		}
		if _, dup := out[key]; dup {
			log.Printf("[config] STREAMER_FUNCTION_ROLES: clave repetida %q, se queda la primera", key)
			continue
		}
		out[key] = id
	}
	return out
}
