package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/doctor"
	"freckle.dev/freckle/internal/cli/helpers"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check your freckle setup for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, doctor.Action)
		},
	}
}
