package main

import (
	"context"
	"crm/database"
	followupautomations "crm/entities/follow_up_automations"
	meetingconfirmations "crm/entities/meeting_confirmations"
	"crm/utils"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const SHUTDOWN_TIMEOUT = 15 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "crm",
		Short:         "CRM de vendas: pipes de qualificação, confirmação, propostas e upsell",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadEnvVariables()
			utils.SetupLogger()
		},
	}

	root.AddCommand(serveCommand(), reconcileCommand(), seedAutomationsCommand())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// app holds the connections shared by every command.
type app struct {
	mongo  *mongo.Client
	rdb    *redis.Client
	legacy *sql.DB
	feed   *database.ChangeFeed
	store  *database.Store
	cache  *database.Cache
	now    func() time.Time
	loc    *time.Location
}

func newApp(ctx context.Context) (*app, error) {
	client, err := database.ConnectMongo(ctx)
	if err != nil {
		return nil, err
	}

	rdb, err := database.ConnectRedis(ctx)
	if err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	legacy, err := database.OpenLegacyMySQL(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("legacy MySQL unavailable, commissions will ignore legacy sales")
		legacy = nil
	}

	feed := database.NewChangeFeed(rdb)
	return &app{
		mongo:  client,
		rdb:    rdb,
		legacy: legacy,
		feed:   feed,
		store:  database.NewMongoStore(client, feed),
		cache:  database.NewCache(rdb),
		now:    time.Now,
		loc:    utils.Location(),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if a.legacy != nil {
		a.legacy.Close()
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect failed")
	}
}

func (a *app) reconciler() *meetingconfirmations.Reconciler {
	return meetingconfirmations.NewReconciler(a.store.MeetingConfirmations, a.cache, a.now, a.loc)
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API HTTP, o websocket e a reconciliação periódica",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env := os.Getenv(utils.ENV)
			if env == utils.ENV_RELEASE {
				log.Warn().Msg("[ATENÇÃO] Rodando em ambiente de PRODUÇÃO!")
			} else {
				log.Info().Str("env", env).Msg("ambiente atual")
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			server := &http.Server{
				Addr:              fmt.Sprintf(":%s", os.Getenv(utils.PORT)),
				Handler:           newRouter(ctx, a),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go a.feed.Run(ctx)

			errs := make(chan error, 1)
			go func() {
				log.Info().Str("addr", server.Addr).Msg("servidor iniciado")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errs <- err
				}
				close(errs)
			}()

			select {
			case err := <-errs:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("encerrando servidor")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func reconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Executa uma varredura de reconciliação das confirmações de reunião",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			report, err := a.reconciler().ReconcileAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "analisadas: %d, atualizadas: %d, ignoradas: %d, falhas: %d\n",
				report.Scanned, report.Updated, report.Skipped, report.Failed)
			return nil
		},
	}
}

func seedAutomationsCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-automations",
		Short: "Cria ou atualiza regras de follow-up a partir de um arquivo YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := followupautomations.LoadSeedFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			created, updated, err := followupautomations.Seed(ctx, a.store.FollowUpAutomations, rules)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "automações criadas: %d, atualizadas: %d\n", created, updated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "automations.yaml", "arquivo YAML com as automações")
	return cmd
}
