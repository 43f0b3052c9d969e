package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/seqkit/internal/harness"
)

// FileValidation is the validation outcome of one scenario file.
type FileValidation struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationResult holds validation results for every file given.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Check scenario files without running them",
		Long: `Validate scenario files against the scenario schema and the
operation rules (which ops take pos or value, which need the linked engine).

Exit codes:
  0 - All files are valid
  1 - One or more files are invalid
  2 - Command error`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	result := ValidationResult{Valid: true}
	for _, path := range paths {
		fv := validateFile(path)
		f.VerboseLog("validated %s: valid=%t", path, fv.Valid)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if f.isJSON() {
		if !result.Valid {
			if err := f.Failure(result, ErrCodeScenarioInvalid, "one or more scenarios are invalid"); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "validation failed")
		}
		return f.Success(result)
	}

	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(f.Writer, "✓ %s\n", fv.Path)
			continue
		}
		fmt.Fprintf(f.Writer, "✗ %s\n", fv.Path)
		for _, e := range fv.Errors {
			fmt.Fprintf(f.Writer, "  %s\n", e)
		}
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

// validateFile runs the schema check first and the operation rules second,
// so structural problems are reported all at once.
func validateFile(path string) FileValidation {
	fv := FileValidation{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		fv.Errors = []string{fmt.Sprintf("failed to read file: %v", err)}
		return fv
	}

	if err := harness.ValidateSchema(raw); err != nil {
		var schemaErr *harness.SchemaError
		if errors.As(err, &schemaErr) {
			fv.Errors = schemaErr.Problems
		} else {
			fv.Errors = []string{err.Error()}
		}
		return fv
	}

	if _, err := harness.ParseScenario(raw); err != nil {
		fv.Errors = []string{err.Error()}
		return fv
	}

	fv.Valid = true
	return fv
}
