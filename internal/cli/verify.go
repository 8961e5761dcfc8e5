package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"agency_portal_backend/internal/adapters"
	countryrepo "agency_portal_backend/internal/countries/repository"
	countryservice "agency_portal_backend/internal/countries/service"
	stagerepo "agency_portal_backend/internal/stages/repository"
)

// VerifyCmd checks every stored sequence and fails when any is malformed.
func VerifyCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every representing country's stage sequence",
		Long: `Walk every representing country and report sequences whose positions are
not exactly 1..n, whose pinned stage is missing or moved, or that list a
stage twice.

Examples:
  stagectl verify            # print violations, exit 1 if any
  stagectl verify --quiet    # exit code only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pool, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := countryservice.New(
				countryrepo.New(pool),
				adapters.NewStageCatalogReader(stagerepo.New(pool)),
				e.bus,
				e.cfg,
				e.log,
			)
			out := cmd.OutOrStdout()
			if quiet {
				out = io.Discard
			}
			return runVerify(cmd.Context(), svc, out)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Exit code only")
	return cmd
}

type verifier interface {
	Verify(ctx context.Context) ([]countryservice.Violation, error)
}

func runVerify(ctx context.Context, svc verifier, out io.Writer) error {
	violations, err := svc.Verify(ctx)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		fmt.Fprintln(out, "all sequences valid")
		return nil
	}

	for _, v := range violations {
		fmt.Fprintf(out, "%s (%s)\n", v.Name, v.EntityID)
		for _, p := range v.Problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}
	return fmt.Errorf("%d representing countries have invalid sequences", len(violations))
}
