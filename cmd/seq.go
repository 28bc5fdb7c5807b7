package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kalekundert/sgrna/config"
	"github.com/kalekundert/sgrna/internal/sensor"
	"github.com/spf13/cobra"
)

// seqCmd represents the seq command
var seqCmd = &cobra.Command{
	Use:   "seq [name...]",
	Short: "Print the sequence of one or more designs",
	Long: `Print the sequence of one or more designs, specified by name.

Names are a design abbreviation followed by its arguments, e.g. "us(4)",
"cb/wo", or "sh 6".  Parentheses, commas, slashes, dashes, underscores, and
spaces are all accepted as separators, so the names work unquoted in shells,
filenames, and spreadsheets.  A ligand prefix like "tet/cb" overrides the
default theophylline aptamer.

Each design is printed on one line with its canonical name, so the output
can be piped into ordering forms or folding tools`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSeq,
}

// set flags
func init() {
	rootCmd.AddCommand(seqCmd)

	seqCmd.Flags().BoolP("dna", "d", false, "print the DNA sequence (U becomes T)")
	seqCmd.Flags().BoolP("fold", "f", false, "also print the expected secondary structure")
	seqCmd.Flags().BoolP("t7", "T", false, "prepend a T7 promoter for in vitro transcription")
	seqCmd.Flags().BoolP("spacerless", "s", false, "leave out the spacer sequence")
}

func runSeq(cmd *cobra.Command, args []string) {
	c := config.New()
	dna, _ := cmd.Flags().GetBool("dna")
	fold, _ := cmd.Flags().GetBool("fold")
	t7, _ := cmd.Flags().GetBool("t7")
	spacerless, _ := cmd.Flags().GetBool("spacerless")

	opts := sensor.Options{
		Ligand:     c.Ligand,
		Target:     c.Target,
		Spacerless: spacerless || c.Spacerless,
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, name := range args {
		construct, err := sensor.Build(name, opts)
		if err != nil {
			stderr.Fatalf("%v", err)
		}

		seq := construct.Seq()
		structure := construct.ExpectedFold()
		if t7 {
			promoter, err := sensor.T7Promoter("briner")
			if err != nil {
				stderr.Fatalf("%v", err)
			}
			seq = promoter.Seq() + seq
			structure = strings.Repeat(".", promoter.Len()) + structure
		}
		if dna {
			seq = toDNA(seq)
		}

		fmt.Fprintf(w, "%s\t%s\n", construct.Name, seq)
		if fold {
			fmt.Fprintf(w, "\t%s\n", structure)
		}

		if c.Verbose {
			stderr.Printf("%s: %d nt", construct.Name, len(seq))
		}
	}
}

// toDNA rewrites an RNA sequence as the DNA that encodes it.
func toDNA(seq string) string {
	return strings.ReplaceAll(seq, "U", "T")
}
