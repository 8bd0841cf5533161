package main

import (
	"context"
	"crm/database"
	followupautomations "crm/entities/follow_up_automations"
	followups "crm/entities/follow_ups"
	"crm/entities/leads"
	meetingconfirmations "crm/entities/meeting_confirmations"
	"crm/entities/pipelines"
	"crm/entities/proposals"
	"crm/entities/realtime"
	"crm/entities/report"
	stagehistory "crm/entities/stage_history"
	teammembers "crm/entities/team_members"
	"crm/entities/upsell"
	"crm/middlewares"
	"crm/pipeline"
	"crm/utils"
	"net/http"
)

// newRouter wires handlers to their dependencies and starts the background
// workers bound to ctx: the reconciliation loop and the cache invalidation.
func newRouter(ctx context.Context, a *app) http.Handler {
	automations := followupautomations.NewAutomations(a.store.FollowUpAutomations, a.store.FollowUps, a.store.Leads, a.now, a.loc)
	hooks := pipeline.Hooks{
		pipeline.HistoryHook(a.store.StageHistory),
		automations.Hook(),
	}

	reconciler := a.reconciler()
	a.feed.Subscribe(database.COLLECTION_MEETING_CONFIRMATIONS, reconciler.OnChange)
	go reconciler.Run(ctx, utils.ReconcileInterval())

	reports := report.NewReports(a.store, a.legacy, a.cache, a.now, a.loc)
	reports.InvalidateRankingOn(a.feed)

	confirmations := meetingconfirmations.NewHandler(
		a.store,
		meetingconfirmations.NewTransitions(a.store.MeetingConfirmations, a.store.Proposals, hooks, a.now),
		reconciler,
		a.now,
		a.loc,
	)
	leadsHandler := leads.NewHandler(a.store, leads.NewTransitions(a.store.Leads, a.store.MeetingConfirmations, hooks, a.now, a.loc))
	proposalsHandler := proposals.NewHandler(a.store, proposals.NewTransitions(a.store.Proposals, a.store.Leads, a.store.UpsellClients, hooks, a.now))
	reportsHandler := report.NewHandler(a.store, reports)
	members := teammembers.NewHandler(a.store)
	rules := followupautomations.NewHandler(a.store)
	tasks := followups.NewHandler(a.store)
	upsellHandler := upsell.NewHandler(a.store, hooks)
	history := stagehistory.NewHandler(a.store)
	hub := realtime.NewHub(a.feed)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/pipelines", pipelines.GetAll)
	mux.HandleFunc("GET /v1/pipelines/{pipe}/stages", pipelines.GetStages)
	mux.HandleFunc("GET /v1/stage-history", history.GetAll)

	mux.HandleFunc("GET /v1/leads", leadsHandler.GetAll)
	mux.HandleFunc("GET /v1/leads/{id}", leadsHandler.GetOne)
	mux.HandleFunc("GET /v1/leads/phone/{phone}", leadsHandler.GetOneByPhone)
	mux.HandleFunc("POST /v1/leads", leadsHandler.CreateOne)
	mux.HandleFunc("PATCH /v1/leads/{id}", leadsHandler.UpdateOne)
	mux.HandleFunc("PATCH /v1/leads/{id}/stage", leadsHandler.UpdateOneStage)
	mux.HandleFunc("DELETE /v1/leads/{id}", leadsHandler.DeleteOne)

	mux.HandleFunc("GET /v1/meeting-confirmations", confirmations.GetAll)
	mux.HandleFunc("GET /v1/meeting-confirmations/board", confirmations.GetBoard)
	mux.HandleFunc("GET /v1/meeting-confirmations/{id}", confirmations.GetOne)
	mux.HandleFunc("POST /v1/meeting-confirmations", confirmations.CreateOne)
	mux.HandleFunc("POST /v1/meeting-confirmations/reconcile", confirmations.ReconcileAll)
	mux.HandleFunc("PATCH /v1/meeting-confirmations/{id}", confirmations.UpdateOne)
	mux.HandleFunc("PATCH /v1/meeting-confirmations/{id}/stage", confirmations.UpdateOneStage)
	mux.HandleFunc("DELETE /v1/meeting-confirmations/{id}", confirmations.DeleteOne)

	mux.HandleFunc("GET /v1/proposals", proposalsHandler.GetAll)
	mux.HandleFunc("GET /v1/proposals/{id}", proposalsHandler.GetOne)
	mux.HandleFunc("POST /v1/proposals", proposalsHandler.CreateOne)
	mux.HandleFunc("PATCH /v1/proposals/{id}", proposalsHandler.UpdateOne)
	mux.HandleFunc("PATCH /v1/proposals/{id}/stage", proposalsHandler.UpdateOneStage)
	mux.HandleFunc("DELETE /v1/proposals/{id}", proposalsHandler.DeleteOne)

	mux.HandleFunc("GET /v1/team-members", members.GetAll)
	mux.HandleFunc("GET /v1/team-members/commissions", reportsHandler.GetCommissions)
	mux.HandleFunc("GET /v1/team-members/legacy/{legacy_id}", members.GetOneByLegacyID)
	mux.HandleFunc("GET /v1/team-members/{id}", members.GetOne)
	mux.HandleFunc("POST /v1/team-members", members.CreateOne)
	mux.HandleFunc("PATCH /v1/team-members/{id}", members.UpdateOne)
	mux.HandleFunc("DELETE /v1/team-members/{id}", members.DeleteOne)

	mux.HandleFunc("GET /v1/rankings", reportsHandler.GetRanking)

	mux.HandleFunc("GET /v1/goals", reportsHandler.GetAllGoals)
	mux.HandleFunc("GET /v1/goals/{id}", reportsHandler.GetOneGoal)
	mux.HandleFunc("GET /v1/goals/{id}/progress", reportsHandler.GetGoalProgress)
	mux.HandleFunc("POST /v1/goals", reportsHandler.CreateGoal)
	mux.HandleFunc("PATCH /v1/goals/{id}", reportsHandler.UpdateGoal)
	mux.HandleFunc("DELETE /v1/goals/{id}", reportsHandler.DeleteGoal)

	mux.HandleFunc("GET /v1/follow-up-automations", rules.GetAll)
	mux.HandleFunc("GET /v1/follow-up-automations/{id}", rules.GetOne)
	mux.HandleFunc("POST /v1/follow-up-automations", rules.CreateOne)
	mux.HandleFunc("PATCH /v1/follow-up-automations/{id}", rules.UpdateOne)
	mux.HandleFunc("DELETE /v1/follow-up-automations/{id}", rules.DeleteOne)

	mux.HandleFunc("GET /v1/follow-ups", tasks.GetAll)
	mux.HandleFunc("POST /v1/follow-ups", tasks.CreateOne)
	mux.HandleFunc("PATCH /v1/follow-ups/{id}/done", tasks.UpdateOneDone)
	mux.HandleFunc("DELETE /v1/follow-ups/{id}", tasks.DeleteOne)

	mux.HandleFunc("GET /v1/upsell/clients", upsellHandler.GetAllClients)
	mux.HandleFunc("GET /v1/upsell/clients/{id}", upsellHandler.GetOneClient)
	mux.HandleFunc("POST /v1/upsell/clients", upsellHandler.CreateOneClient)
	mux.HandleFunc("PATCH /v1/upsell/clients/{id}", upsellHandler.UpdateOneClient)
	mux.HandleFunc("PATCH /v1/upsell/clients/{id}/stage", upsellHandler.UpdateOneClientStage)
	mux.HandleFunc("DELETE /v1/upsell/clients/{id}", upsellHandler.DeleteOneClient)
	mux.HandleFunc("GET /v1/upsell/campaigns", upsellHandler.GetAllCampaigns)
	mux.HandleFunc("GET /v1/upsell/campaigns/{id}", upsellHandler.GetOneCampaign)
	mux.HandleFunc("POST /v1/upsell/campaigns", upsellHandler.CreateOneCampaign)
	mux.HandleFunc("POST /v1/upsell/campaigns/{id}/clients", upsellHandler.AttachClients)
	mux.HandleFunc("PATCH /v1/upsell/campaigns/{id}", upsellHandler.UpdateOneCampaign)
	mux.HandleFunc("DELETE /v1/upsell/campaigns/{id}", upsellHandler.DeleteOneCampaign)

	mux.HandleFunc("GET /v1/ws", hub.ServeWS)
	mux.HandleFunc("GET /v1/ws/{entity}", hub.ServeWS)

	return middlewares.SecurityHeaders(middlewares.Cors(middlewares.RequestLogger(middlewares.Actor(mux))))
}
