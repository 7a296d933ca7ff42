package main

import (
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err == nil {
			defer sqlDB.Close()
		}
		return database.AutoMigrate(db)
	},
}
