package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// command for creating the price history and property tables
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate price history and property tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			logrus.WithError(err).Errorln("db.Migrate")
			return err
		}

		logrus.Infoln("database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
