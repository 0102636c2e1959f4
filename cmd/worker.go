package cmd

import (
	"sync"

	"synthpool/worker"
	"synthpool/worker/pricehistory"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run the hourly price history worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		workers := []worker.Worker{
			pricehistory.New(
				cfg.PriceHistory,
				provideLocation(),
				provideTickerService(),
				providePriceTickStore(database),
				providePropertyStore(database),
			),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				if err := w.Run(ctx); err != nil {
					log.WithError(err).Errorln("worker stopped")
				}
			}(w)
		}

		wg.Wait()
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "store one price history tick and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		w := pricehistory.New(
			cfg.PriceHistory,
			provideLocation(),
			provideTickerService(),
			providePriceTickStore(database),
			providePropertyStore(database),
		)

		return w.Ingest(ctx)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(ingestCmd)
}
