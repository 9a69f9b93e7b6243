package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/axellelanca/catalog/cmd"
	"github.com/axellelanca/catalog/internal/auth"
	"github.com/axellelanca/catalog/internal/database"
	"github.com/axellelanca/catalog/internal/logger"
	"github.com/axellelanca/catalog/internal/repository"
	"github.com/axellelanca/catalog/internal/services"
	"github.com/spf13/cobra"
)

var (
	adminEmailFlag     string
	adminPasswordFlag  string
	adminFirstNameFlag string
	adminLastNameFlag  string
)

// CreateAdminCmd représente la commande 'create-admin'
var CreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Crée un super-administrateur actif.",
	Long: `Cette commande crée le premier compte administrateur, celui qui pourra
ensuite gérer les autres comptes via l'API.

Exemple:
  catalog create-admin --email=admin@example.com --password=secret`,
	Run: func(_ *cobra.Command, args []string) {
		db := openDatabase()
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		accounts := services.NewAccountService(
			repository.NewUserRepository(db),
			auth.NewPasswordHasher(),
			logger.New(cmd.Cfg.Log.Level, cmd.Cfg.Log.Format),
		)
		user, err := accounts.CreateSuperuser(context.Background(), services.CreateAccountInput{
			Email:     adminEmailFlag,
			Password:  adminPasswordFlag,
			FirstName: adminFirstNameFlag,
			LastName:  adminLastNameFlag,
		})
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}

		fmt.Printf("Administrateur créé avec succès:\n")
		fmt.Printf("ID: %d\n", user.ID)
		fmt.Printf("Email: %s\n", user.Email)
	},
}

func init() {
	CreateAdminCmd.Flags().StringVar(&adminEmailFlag, "email", "", "Email address of the admin")
	CreateAdminCmd.Flags().StringVar(&adminPasswordFlag, "password", "", "Password of the admin")
	CreateAdminCmd.Flags().StringVar(&adminFirstNameFlag, "first-name", "", "First name")
	CreateAdminCmd.Flags().StringVar(&adminLastNameFlag, "last-name", "", "Last name")

	CreateAdminCmd.MarkFlagRequired("email")
	CreateAdminCmd.MarkFlagRequired("password")

	cmd.RootCmd.AddCommand(CreateAdminCmd)
}
