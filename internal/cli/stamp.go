package cli

import (
	"fmt"

	"github.com/extbuild-labs/extbuild/internal/stamp"
	"github.com/spf13/cobra"
)

var stampAfter string

func init() {
	stampCmd.Flags().StringVar(&stampAfter, "after", "", "Fail unless the new version is newer than this one")
	rootCmd.AddCommand(stampCmd)
}

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Print the build version for the current UTC time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := stamp.Now().String()
		if stampAfter != "" {
			newer, err := stamp.IsNewer(v, stampAfter)
			if err != nil {
				return err
			}
			if !newer {
				return fmt.Errorf("version %s is not newer than %s", v, stampAfter)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}
