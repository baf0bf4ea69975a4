// Package main provides a one-shot CLI for running a prop projection from
// the command line without a database.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/propline/internal/engine"
	"github.com/yourusername/propline/internal/models"
)

var (
	playerID   int64
	propType   string
	propLine   float64
	valuesArg  string
	tierArg    int
	matchupArg float64
)

func init() {
	rootCmd.Flags().Int64Var(&playerID, "player", 0, "Player ID")
	rootCmd.Flags().StringVar(&propType, "prop", "points", "Prop type (points, rebounds, assists, ...)")
	rootCmd.Flags().Float64Var(&propLine, "line", 0, "Prop line to analyze against")
	rootCmd.Flags().StringVar(&valuesArg, "values", "", "Comma-separated season game values, oldest first")
	rootCmd.Flags().IntVar(&tierArg, "tier", 0, "Opponent defensive tier 1-5 (0 to omit)")
	rootCmd.Flags().Float64Var(&matchupArg, "matchup", 0, "Historical matchup average (0 to omit)")

	rootCmd.MarkFlagRequired("line")
	rootCmd.MarkFlagRequired("values")
}

var rootCmd = &cobra.Command{
	Use:   "propline-analyze",
	Short: "Run a single prop projection from the command line",
	Long:  `Runs the anti-recency projection methodology against a prop line using a supplied game history and prints the result as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runAnalysis() error {
	values, err := parseValues(valuesArg)
	if err != nil {
		return err
	}

	req := models.PropRequest{
		PlayerID:   playerID,
		PropType:   propType,
		PropLine:   propLine,
		GameValues: values,
	}
	if tierArg != 0 {
		req.OpponentTier = &tierArg
	}
	if matchupArg != 0 {
		req.MatchupAverage = &matchupArg
	}

	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return err
	}

	result, err := eng.AnalyzeProp(req)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// parseValues parses a comma-separated list of game values
func parseValues(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	values := make([]float64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid game value %q: %w", part, err)
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("at least one game value is required")
	}
	return values, nil
}
