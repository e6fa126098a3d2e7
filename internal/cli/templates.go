package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/extbuild-labs/extbuild/internal/ruletemplate"
	"github.com/spf13/cobra"
)

var (
	templatesCampaignRules bool
	templatesJSON          bool
)

func init() {
	templatesCmd.Flags().BoolVar(&templatesCampaignRules, "campaign-rules", false, "Include campaign rule templates (overrides USE_CAMPAIGN_RULES)")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the rule templates offered when creating a campaign",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		useCampaignRules := templatesCampaignRules
		if !cmd.Flags().Changed("campaign-rules") {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			useCampaignRules = s.CampaignRules
		}

		reg := ruletemplate.Build(useCampaignRules)
		if templatesJSON {
			return printTemplatesJSON(cmd, reg.All())
		}
		return printTemplatesTable(cmd, reg.All())
	},
}

func printTemplatesTable(cmd *cobra.Command, templates []ruletemplate.Template) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDETAIL")
	for _, t := range templates {
		title, detail := t.Title, t.Detail
		if title == "" {
			title = "-"
		}
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, title, detail)
	}
	return w.Flush()
}

func printTemplatesJSON(cmd *cobra.Command, templates []ruletemplate.Template) error {
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
