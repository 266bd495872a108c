package cmd

import (
	"github.com/spf13/cobra"
)

// saveasCmd represents the saveas command
var saveasCmd = &cobra.Command{
	Use:   "saveas <path>",
	Short: "Write the database to another file",
	Long: `Write the loaded database to a different path. The original file
is left untouched.

Example:
  dbckit saveas Item.patched.dbc -f Item.dbc -s item.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := st.WriteTo(args[0]); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveasCmd)
}
