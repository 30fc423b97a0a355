package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/observability"
	"github.com/jonathan/portfolio-resume/internal/schemas"
)

var schemaValidateFile string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the CandidateRecord JSON Schema, or validate a record against it",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaValidateFile, "validate", "", "Validate this CandidateRecord JSON file instead of printing the schema")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if schemaValidateFile == "" {
		schema, err := schemas.CandidateSchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
		return err
	}

	raw, err := os.ReadFile(schemaValidateFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", schemaValidateFile, err)
	}
	verr := schemas.ValidateCandidateJSON(string(raw))
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(verr)
	return verr
}
