// Package main provides the recommendation engine CLI entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shopsense-ai/recommendation-engine/internal/catalog"
	"github.com/shopsense-ai/recommendation-engine/internal/config"
	"github.com/shopsense-ai/recommendation-engine/internal/llm"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
	"github.com/shopsense-ai/recommendation-engine/internal/recommend"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
	store  *catalog.Store
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "recommend-cli",
	Short: "Recommendation engine CLI for catalog inspection and offline recommendations",
	Long: `recommend-cli works against the same product catalog and pipeline as the API server.

Use this tool to:
- Search and filter the product catalog
- List categories and brands
- Run the full recommendation pipeline without the HTTP layer

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       "warn",
			Format:      logFormat,
			ServiceName: "recommend-cli",
		})

		store = catalog.Load(cfg.Catalog.Path, logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newBrandsCmd())
	rootCmd.AddCommand(newRecommendCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by name, description, tags, and category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products := store.Search(args[0], limit)

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(products)
			}

			if len(products) == 0 {
				color.New(color.FgYellow).Printf("⚠ No products match %q\n", args[0])
				return nil
			}

			for _, p := range products {
				printProduct(p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}

// newFilterCmd creates the filter subcommand.
func newFilterCmd() *cobra.Command {
	var (
		categories []string
		brands     []string
		minPrice   float64
		maxPrice   float64
		minRating  float64
		inStock    bool
		tags       []string
		sortBy     string
		sortOrder  string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the catalog by category, brand, price, rating, and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := catalog.FilterSpec{
				Categories:  categories,
				Brands:      brands,
				InStockOnly: inStock,
				Tags:        tags,
				SortBy:      sortBy,
				SortOrder:   sortOrder,
				Limit:       limit,
			}
			if cmd.Flags().Changed("min-price") {
				spec.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				spec.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("min-rating") {
				spec.MinRating = &minRating
			}

			products := store.Filter(spec)

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(products)
			}

			if len(products) == 0 {
				color.New(color.FgYellow).Println("⚠ No products match the filter")
				return nil
			}

			for _, p := range products {
				printProduct(p)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "categories to include")
	cmd.Flags().StringSliceVar(&brands, "brands", nil, "brands to include")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum rating")
	cmd.Flags().BoolVar(&inStock, "in-stock", true, "only in-stock products")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "match any of these tags")
	cmd.Flags().StringVar(&sortBy, "sort-by", "rating", "sort field: price, rating, inventory, name")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "desc", "sort order: asc or desc")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}

// newCategoriesCmd creates the categories subcommand.
func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the distinct product categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := store.Categories()
			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(categories)
			}
			for _, c := range categories {
				fmt.Println(c)
			}
			return nil
		},
	}
}

// newBrandsCmd creates the brands subcommand.
func newBrandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the distinct product brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			brands := store.Brands()
			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(brands)
			}
			for _, b := range brands {
				fmt.Println(b)
			}
			return nil
		},
	}
}

// newRecommendCmd creates the recommend subcommand.
func newRecommendCmd() *cobra.Command {
	var (
		priceRange string
		categories []string
		brands     []string
		minRating  float64
		needs      string
		history    []string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the recommendation pipeline against the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required")
			}

			generator, err := llm.NewClient(llm.Config{
				APIKey:      cfg.LLM.APIKey,
				BaseURL:     cfg.LLM.BaseURL,
				Model:       cfg.LLM.Model,
				MaxTokens:   cfg.LLM.MaxTokens,
				Temperature: cfg.LLM.Temperature,
				Timeout:     cfg.LLM.Timeout,
			})
			if err != nil {
				return fmt.Errorf("create generation client: %w", err)
			}

			engine := recommend.NewEngine(store, generator, nil, logger, recommend.EngineConfig{
				MaxRecommendations:  cfg.Recommendation.MaxRecommendations,
				MaxProductsInPrompt: cfg.Recommendation.MaxProductsInPrompt,
				QualityFloor:        cfg.Recommendation.QualityFloor,
			})

			prefs := recommend.UserPreferences{
				PriceRange:    recommend.PriceRange(priceRange),
				Categories:    categories,
				Brands:        brands,
				MinRating:     minRating,
				SpecificNeeds: needs,
			}
			if !prefs.PriceRange.Valid() {
				return fmt.Errorf("invalid price range: %s", priceRange)
			}

			result := engine.Recommend(context.Background(), prefs, history)

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&priceRange, "price-range", "all", "price band: all, budget, mid, premium")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "preferred categories")
	cmd.Flags().StringSliceVar(&brands, "brands", nil, "preferred brands")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum product rating")
	cmd.Flags().StringVar(&needs, "needs", "", "specific shopping needs")
	cmd.Flags().StringSliceVar(&history, "history", nil, "browsed product IDs")
	return cmd
}

func printProduct(p catalog.Product) {
	fmt.Printf("%s  %s | %s | $%.2f | ★%.1f | %s\n", p.ID, p.Name, p.Category, p.Price, p.Rating, p.Brand)
}

func printResult(result *recommend.Result) {
	switch result.Status {
	case recommend.StatusSuccess:
		color.New(color.FgGreen).Printf("✓ %d recommendations\n", result.Count)
	case recommend.StatusPartialSuccess, recommend.StatusFallback:
		color.New(color.FgYellow).Printf("⚠ %d recommendations (%s)\n", result.Count, result.Status)
	default:
		color.New(color.FgRed).Printf("✗ %s\n", result.Error)
		return
	}

	for i, rec := range result.Recommendations {
		fmt.Printf("\n%d. ", i+1)
		printProduct(rec.Product)
		fmt.Printf("   confidence %.2f: %s\n", rec.ConfidenceScore, wrap(rec.Explanation, 76))
	}
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+len(w)+1 > width {
				b.WriteString("\n   ")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
