package entity

// Stage identifica una columna del kanban de ventas.
// El conjunto es cerrado y ordenado: el orden de Stages es el orden del proceso comercial.
type Stage string

const (
	StageInitialContact Stage = "atendimento_inicial"
	StageProposalSent   Stage = "proposta_enviada"
	StageInProgress     Stage = "venda_andamento"
	StageClosed         Stage = "venda_concluida"
	StagePostSale       Stage = "pos_venda"
)

// Stages devuelve las etapas en orden de proceso. Se devuelve una copia.
func Stages() []Stage {
	return []Stage{
		StageInitialContact,
		StageProposalSent,
		StageInProgress,
		StageClosed,
		StagePostSale,
	}
}

var stageLabels = map[Stage]string{
	StageInitialContact: "Atendimento Inicial",
	StageProposalSent:   "Propostas Enviadas",
	StageInProgress:     "Vendas em Andamento",
	StageClosed:         "Vendas Concluídas",
	StagePostSale:       "Pós-venda",
}

// DefaultStage es la etapa asignada a una tarjeta nueva sin etapa explícita.
func DefaultStage() Stage { return StageInitialContact }

// Valid indica si la etapa pertenece al conjunto fijo.
func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Label nombre legible de la etapa; vacío si la etapa no es válida.
func (s Stage) Label() string { return stageLabels[s] }

// Index posición de la etapa en el proceso, -1 si no es válida.
func (s Stage) Index() int {
	for i, st := range Stages() {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStage convierte un string en Stage. Vacío devuelve la etapa por defecto.
func ParseStage(s string) (Stage, bool) {
	if s == "" {
		return DefaultStage(), true
	}
	st := Stage(s)
	return st, st.Valid()
}
