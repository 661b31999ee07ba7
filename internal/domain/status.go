package domain

// Estados das solicitacoes (R.O e streamers). pending -> approved|rejected,
// sem volta.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Decision es el resultado terminal de una revision.
type Decision string

const (
	DecisionApproved Decision = StatusApproved
	DecisionRejected Decision = StatusRejected
)

func (d Decision) Approved() bool { return d == DecisionApproved }

// Label devuelve el rotulo que aparece en los embeds (pt-BR).
func (d Decision) Label() string {
	if d.Approved() {
		return "APROVADO"
	}
	return "RECUSADO"
}

func (d Decision) Status() string { return string(d) }
