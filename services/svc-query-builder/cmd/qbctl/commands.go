package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/runtime"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/services"
	"github.com/spf13/cobra"
)

var errInvalidQuery = errors.New("query is invalid")

type compiledStatement struct {
	Dialect         string `json:"dialect"`
	SQL             string `json:"sql"`
	Params          []any  `json:"params"`
	ComparisonField string `json:"comparisonField,omitempty"`
}

// NewCompileCommand prints the SQL a query document compiles to.
func NewCompileCommand() *cobra.Command {
	var (
		file    string
		dialect string
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a query document into parameterized SQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := readQuery(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			target, err := repos.DialectFor(dialect)
			if err != nil {
				return err
			}

			if result := model.Validate(query); !result.Valid {
				return model.NewValidationError(result.Errors)
			}

			statement, err := repos.NewQueryCompiler(target, logger.NewTestLogger()).Compile(query)
			if err != nil {
				return err
			}

			params := statement.Params
			if params == nil {
				params = []any{}
			}

			return writeJSON(cmd.OutOrStdout(), compiledStatement{
				Dialect:         target.Name,
				SQL:             statement.SQL,
				Params:          params,
				ComparisonField: string(statement.ComparisonField),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "query document, - reads stdin")
	cmd.Flags().StringVar(&dialect, "dialect", repos.DriverPostgres, "SQL dialect (postgres or mysql)")

	return cmd
}

// NewValidateCommand prints the validation report of a query document.
// The command fails when the query is invalid.
func NewValidateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a query document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := readQuery(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			result := model.Validate(query)
			if result.Errors == nil {
				result.Errors = []string{}
			}

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if !result.Valid {
				return errInvalidQuery
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "query document, - reads stdin")

	return cmd
}

// NewSeedCommand drops and recreates market_summary in the configured database.
func NewSeedCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Recreate the market_summary table with sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("seeding drops market_summary, rerun with --yes to continue")
			}

			cfg, err := config.Init()
			if err != nil {
				return err
			}

			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

			datastore, err := runtime.OpenDatastore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer datastore.Close()

			inserted, err := services.NewSeedService(datastore.Seeder, log).SeedSampleData(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding market_summary: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rows into %s (%s)\n", inserted, model.MarketSummaryTable, datastore.Dialect.Name)

			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the table may be dropped")

	return cmd
}

func readQuery(stdin io.Reader, file string) (model.Query, error) {
	var (
		data []byte
		err  error
	)

	if file == "" || file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}

	if err != nil {
		return model.Query{}, fmt.Errorf("reading query: %w", err)
	}

	var query model.Query
	if err := json.Unmarshal(data, &query); err != nil {
		return model.Query{}, fmt.Errorf("parsing query: %w", err)
	}

	return query, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
