package pipelines

import (
	"crm/schemas"
	"crm/utils"
	"net/http"
)

type pipelineStages struct {
	PipeType schemas.PipeType    `json:"pipe_type"`
	Stages   []schemas.StageInfo `json:"stages"`
}

// GetStages returns the ordered kanban columns of {pipe}.
func GetStages(w http.ResponseWriter, r *http.Request) {
	pipe := schemas.PipeType(r.PathValue("pipe"))

	stages, ok := schemas.CatalogFor(pipe)
	if !ok {
		utils.SendResponse(w, http.StatusNotFound, "Pipe não encontrado", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", pipelineStages{PipeType: pipe, Stages: stages}, 0)
}

func GetAll(w http.ResponseWriter, r *http.Request) {
	pipes := []schemas.PipeType{
		schemas.PIPE_QUALIFICATION,
		schemas.PIPE_CONFIRMATION,
		schemas.PIPE_PROPOSAL,
		schemas.PIPE_UPSELL,
	}

	all := make([]pipelineStages, 0, len(pipes))
	for _, pipe := range pipes {
		stages, _ := schemas.CatalogFor(pipe)
		all = append(all, pipelineStages{PipeType: pipe, Stages: stages})
	}

	utils.SendResponse(w, http.StatusOK, "", all, 0)
}
