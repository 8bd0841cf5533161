package schemas

type PipeType string

const (
	PIPE_QUALIFICATION PipeType = "qualification"
	PIPE_CONFIRMATION  PipeType = "confirmation"
	PIPE_PROPOSAL      PipeType = "proposal"
	PIPE_UPSELL        PipeType = "upsell"
)

func (p PipeType) Valid() bool {
	switch p {
	case PIPE_QUALIFICATION, PIPE_CONFIRMATION, PIPE_PROPOSAL, PIPE_UPSELL:
		return true
	}
	return false
}

// StageInfo is the display metadata of a kanban column.
type StageInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Meeting confirmation pipeline.

type ConfirmationStage string

const (
	STAGE_MEETING_SCHEDULED ConfirmationStage = "meeting_scheduled"
	STAGE_CONFIRM_D5        ConfirmationStage = "confirm_d5"
	STAGE_CONFIRM_D3        ConfirmationStage = "confirm_d3"
	STAGE_CONFIRM_D2        ConfirmationStage = "confirm_d2"
	STAGE_CONFIRM_D1        ConfirmationStage = "confirm_d1"
	STAGE_CONFIRM_SAME_DAY  ConfirmationStage = "confirm_same_day"
	STAGE_RESCHEDULE        ConfirmationStage = "reschedule"
	STAGE_ATTENDED          ConfirmationStage = "attended"
	STAGE_LOST              ConfirmationStage = "lost"
)

var ConfirmationCatalog = []StageInfo{
	{ID: string(STAGE_MEETING_SCHEDULED), Title: "Reunião agendada", Color: "#64748b"},
	{ID: string(STAGE_CONFIRM_D5), Title: "Confirmar D-5", Color: "#3b82f6"},
	{ID: string(STAGE_CONFIRM_D3), Title: "Confirmar D-3", Color: "#6366f1"},
	{ID: string(STAGE_CONFIRM_D1), Title: "Confirmar D-1", Color: "#f59e0b"},
	{ID: string(STAGE_CONFIRM_SAME_DAY), Title: "Confirmar no dia", Color: "#f97316"},
	{ID: string(STAGE_RESCHEDULE), Title: "Reagendar", Color: "#ef4444"},
	{ID: string(STAGE_ATTENDED), Title: "Compareceu", Color: "#22c55e"},
	{ID: string(STAGE_LOST), Title: "Perdido", Color: "#71717a"},
}

// Valid accepts the catalog stages plus the derivation-only confirm_d2.
func (s ConfirmationStage) Valid() bool {
	switch s {
	case STAGE_MEETING_SCHEDULED, STAGE_CONFIRM_D5, STAGE_CONFIRM_D3, STAGE_CONFIRM_D2,
		STAGE_CONFIRM_D1, STAGE_CONFIRM_SAME_DAY, STAGE_RESCHEDULE, STAGE_ATTENDED, STAGE_LOST:
		return true
	}
	return false
}

func (s ConfirmationStage) Terminal() bool {
	return s == STAGE_ATTENDED || s == STAGE_LOST
}

// Column is the kanban column a record is rendered in. confirm_d2 has no
// column of its own and is shown with the D-3 cards.
func (s ConfirmationStage) Column() ConfirmationStage {
	if s == STAGE_CONFIRM_D2 {
		return STAGE_CONFIRM_D3
	}
	return s
}

// Qualification (WhatsApp) pipeline.

type QualificationStage string

const (
	STAGE_NEW_LEAD                    QualificationStage = "new_lead"
	STAGE_FIRST_CONTACT               QualificationStage = "first_contact"
	STAGE_QUALIFYING                  QualificationStage = "qualifying"
	STAGE_QUALIFIED_MEETING_SCHEDULED QualificationStage = "meeting_scheduled"
	STAGE_DISQUALIFIED                QualificationStage = "disqualified"
)

var QualificationCatalog = []StageInfo{
	{ID: string(STAGE_NEW_LEAD), Title: "Novo lead", Color: "#64748b"},
	{ID: string(STAGE_FIRST_CONTACT), Title: "Primeiro contato", Color: "#3b82f6"},
	{ID: string(STAGE_QUALIFYING), Title: "Em qualificação", Color: "#f59e0b"},
	{ID: string(STAGE_QUALIFIED_MEETING_SCHEDULED), Title: "Reunião agendada", Color: "#22c55e"},
	{ID: string(STAGE_DISQUALIFIED), Title: "Desqualificado", Color: "#71717a"},
}

func (s QualificationStage) Valid() bool {
	switch s {
	case STAGE_NEW_LEAD, STAGE_FIRST_CONTACT, STAGE_QUALIFYING, STAGE_QUALIFIED_MEETING_SCHEDULED, STAGE_DISQUALIFIED:
		return true
	}
	return false
}

func (s QualificationStage) Terminal() bool {
	return s == STAGE_QUALIFIED_MEETING_SCHEDULED || s == STAGE_DISQUALIFIED
}

// Proposal negotiation pipeline.

type ProposalStage string

const (
	STAGE_PROPOSAL_NEW  ProposalStage = "proposal_new"
	STAGE_PROPOSAL_SENT ProposalStage = "proposal_sent"
	STAGE_NEGOTIATION   ProposalStage = "negotiation"
	STAGE_CONTRACT_SENT ProposalStage = "contract_sent"
	STAGE_WON           ProposalStage = "won"
	STAGE_PROPOSAL_LOST ProposalStage = "lost"
)

var ProposalCatalog = []StageInfo{
	{ID: string(STAGE_PROPOSAL_NEW), Title: "Nova proposta", Color: "#64748b"},
	{ID: string(STAGE_PROPOSAL_SENT), Title: "Proposta enviada", Color: "#3b82f6"},
	{ID: string(STAGE_NEGOTIATION), Title: "Negociação", Color: "#f59e0b"},
	{ID: string(STAGE_CONTRACT_SENT), Title: "Contrato enviado", Color: "#8b5cf6"},
	{ID: string(STAGE_WON), Title: "Ganho", Color: "#22c55e"},
	{ID: string(STAGE_PROPOSAL_LOST), Title: "Perdido", Color: "#71717a"},
}

// PROPOSAL_INITIAL_STAGE is where proposals created from an attended meeting start.
const PROPOSAL_INITIAL_STAGE = STAGE_PROPOSAL_NEW

func (s ProposalStage) Valid() bool {
	switch s {
	case STAGE_PROPOSAL_NEW, STAGE_PROPOSAL_SENT, STAGE_NEGOTIATION, STAGE_CONTRACT_SENT, STAGE_WON, STAGE_PROPOSAL_LOST:
		return true
	}
	return false
}

func (s ProposalStage) Terminal() bool {
	return s == STAGE_WON || s == STAGE_PROPOSAL_LOST
}

// Upsell pipeline.

type UpsellStage string

const (
	STAGE_UPSELL_ACTIVE      UpsellStage = "active"
	STAGE_UPSELL_OPPORTUNITY UpsellStage = "opportunity"
	STAGE_UPSELL_NEGOTIATING UpsellStage = "negotiating"
	STAGE_UPSELL_EXPANDED    UpsellStage = "expanded"
	STAGE_UPSELL_CHURNED     UpsellStage = "churned"
)

var UpsellCatalog = []StageInfo{
	{ID: string(STAGE_UPSELL_ACTIVE), Title: "Cliente ativo", Color: "#22c55e"},
	{ID: string(STAGE_UPSELL_OPPORTUNITY), Title: "Oportunidade", Color: "#3b82f6"},
	{ID: string(STAGE_UPSELL_NEGOTIATING), Title: "Em negociação", Color: "#f59e0b"},
	{ID: string(STAGE_UPSELL_EXPANDED), Title: "Expandido", Color: "#8b5cf6"},
	{ID: string(STAGE_UPSELL_CHURNED), Title: "Churn", Color: "#71717a"},
}

func (s UpsellStage) Valid() bool {
	switch s {
	case STAGE_UPSELL_ACTIVE, STAGE_UPSELL_OPPORTUNITY, STAGE_UPSELL_NEGOTIATING, STAGE_UPSELL_EXPANDED, STAGE_UPSELL_CHURNED:
		return true
	}
	return false
}

// CatalogFor returns the ordered kanban columns of a pipeline.
func CatalogFor(pipe PipeType) ([]StageInfo, bool) {
	switch pipe {
	case PIPE_QUALIFICATION:
		return QualificationCatalog, true
	case PIPE_CONFIRMATION:
		return ConfirmationCatalog, true
	case PIPE_PROPOSAL:
		return ProposalCatalog, true
	case PIPE_UPSELL:
		return UpsellCatalog, true
	}
	return nil, false
}

// ValidStage reports whether stage belongs to pipe.
func ValidStage(pipe PipeType, stage string) bool {
	switch pipe {
	case PIPE_QUALIFICATION:
		return QualificationStage(stage).Valid()
	case PIPE_CONFIRMATION:
		return ConfirmationStage(stage).Valid()
	case PIPE_PROPOSAL:
		return ProposalStage(stage).Valid()
	case PIPE_UPSELL:
		return UpsellStage(stage).Valid()
	}
	return false
}
