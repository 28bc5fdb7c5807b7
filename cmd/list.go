package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kalekundert/sgrna/internal/sensor"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every design in the catalog",
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "name\taliases\targs\tdescription")
	for _, d := range sensor.Designs() {
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\n",
			d.Name,
			strings.Join(d.Aliases, ","),
			strings.Join(d.Params, ","),
			d.Summary,
		)
	}
}
