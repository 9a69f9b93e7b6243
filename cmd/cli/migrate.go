package cli

import (
	"fmt"
	"log"

	"github.com/axellelanca/catalog/cmd"
	"github.com/axellelanca/catalog/internal/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// MigrateCmd represents the 'migrate' command.
// It creates or updates the tables of every catalog model.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `This command connects to the configured database (SQLite or Postgres)
and executes GORM automatic migrations for users, brands, channels,
products, prices and visits.`,
	Run: func(_ *cobra.Command, args []string) {
		db := openDatabase()
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		fmt.Println("Database migrations executed successfully.")
	},
}

// openDatabase connects to the configured database or exits.
func openDatabase() *gorm.DB {
	db, err := database.Open(cmd.Cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
