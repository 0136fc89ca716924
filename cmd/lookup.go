package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foomo/editor-prevnext/service/vo"
)

var (
	lookupType   string
	lookupFormat string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Prints the navigation of a content item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[0])
		}

		a, err := newApp(appConfig, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.service.GetNavigation(cmd.Context(), vo.PageContext{ItemID: vo.ItemID(id), Type: lookupType})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch lookupFormat {
		case "html":
			_, err = fmt.Fprintln(out, doc.HTML)
		case "markdown":
			_, err = fmt.Fprintln(out, doc.Markdown)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(doc)
		default:
			err = fmt.Errorf("unknown format %q", lookupFormat)
		}
		return err
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupType, "type", "", "content type to navigate within (default: the item's type)")
	lookupCmd.Flags().StringVar(&lookupFormat, "format", "html", "output format: html, markdown or json")
	rootCmd.AddCommand(lookupCmd)
}
