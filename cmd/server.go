package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"synthpool/handler"
	"synthpool/handler/hc"
	"synthpool/pkg/metrics"
	"synthpool/worker/syncer"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run synthpool api server with the snapshot synchronizer",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		client := provideChainClient()
		snapshots := provideSnapshotStore()
		wallets := provideWalletSession()
		positions := providePositionService()
		actions := provideActionService(client, snapshots, positions)
		ticks := providePriceTickStore(database)

		syncWorker := syncer.New(
			cfg.App.Network,
			cfg.Sync,
			wallets,
			providePoolReader(client),
			provideAccountReader(client),
			snapshots,
		)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			// hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, snapshots))
		}

		{
			// metrics
			mux.Mount("/metrics", metrics.Handler())
		}

		{
			// restful api
			svr := handler.New(provideConfig(), snapshots, wallets, positions, actions, ticks)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		go func() {
			if err := syncWorker.Run(ctx); err != nil {
				logrus.WithError(err).Errorln("syncer stopped")
			}
		}()

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
