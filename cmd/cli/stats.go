package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/axellelanca/catalog/cmd"
	"github.com/axellelanca/catalog/internal/database"
	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/logger"
	"github.com/axellelanca/catalog/internal/repository"
	"github.com/axellelanca/catalog/internal/services"
	"github.com/spf13/cobra"
)

// StatsCmd représente la commande 'stats'
var StatsCmd = &cobra.Command{
	Use:   "stats [sku]",
	Short: "Get visit statistics for a product",
	Long:  `Get the recorded visits of the product with the given SKU, by device type and by country.`,
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats exécute la logique pour la commande stats
func runStats(_ *cobra.Command, args []string) {
	sku := args[0]

	db := openDatabase()
	defer database.Close(db)

	// Stats are read-only: no enricher is needed
	visits := services.NewVisitService(
		repository.NewProductRepository(db),
		repository.NewVisitRepository(db),
		nil,
		logger.New(cmd.Cfg.Log.Level, cmd.Cfg.Log.Format),
	)

	product, stats, err := visits.ProductStats(context.Background(), sku)
	if err != nil {
		if errors.Is(err, customerrors.ErrNotFound) {
			fmt.Printf("Error: product '%s' not found\n", sku)
		} else {
			fmt.Printf("Error retrieving statistics: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Statistiques pour le produit: %s\n", product)
	fmt.Printf("Total de visites: %d\n", stats.Total)
	printBreakdown("Par type d'appareil", stats.ByDeviceType)
	printBreakdown("Par pays", stats.ByCountry)
}

func printBreakdown(title string, counts map[string]int64) {
	fmt.Printf("%s:\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}
