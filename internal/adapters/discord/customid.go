package discord

import (
	"strconv"
	"strings"
)

// Los custom ids llevan el estado del flujo en segmentos separados por "/":
// quien puede clickear, a que guild pertenece, que fila de la db toca.
const (
	roPanelOpenID   = "provasro/panel/open"
	roInfoModalID   = "provasro/modal/info"
	roUploadModalID = "provasro/modal/upload"
	roApproveID     = "provasro/review/approve"
	roRejectID      = "provasro/review/reject"
)

func roUploadOpenID(guildID, userID string) string {
	return "provasro/upload/open/" + guildID + "/" + userID
}

func streamerStartID(guildID string) string {
	return "streamers/form/start/" + guildID
}

func streamerInfoID(kind, guildID string) string {
	return "streamers/form/" + kind + "/" + guildID
}

func streamerConfirmID(userID string) string {
	return "streamers/form/confirm/" + userID
}

func streamerCancelID(userID string) string {
	return "streamers/form/cancel/" + userID
}

func streamerReviewID(action string, requestID int64) string {
	return "streamers/review/" + action + "/" + strconv.FormatInt(requestID, 10)
}

func streamerFunctionID(requestID int64, roleKey string) string {
	return streamerReviewID("function", requestID) + "/" + roleKey
}

// isDecisionControl marca los botones/selects de revision, que resuelven
// el doble click con su propio guard de estado terminal.
func isDecisionControl(customID string) bool {
	return customID == roApproveID ||
		customID == roRejectID ||
		strings.HasPrefix(customID, "streamers/review/")
}

// segment: parseo tolerante, "" si el indice no existe.
func segment(customID string, idx int) string {
	parts := strings.Split(customID, "/")
	if idx < 0 || idx >= len(parts) {
		return ""
	}
	return parts[idx]
}

func requestIDFrom(customID string, idx int) (int64, bool) {
	id, err := strconv.ParseInt(segment(customID, idx), 10, 64)
	return id, err == nil && id > 0
}
