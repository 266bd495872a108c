package cmd

import (
	"github.com/spf13/cobra"
)

// headerCmd represents the header command
var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Print the DBC header",
	Long: `Print the header of the loaded DBC file.

Example:
  dbckit header -f Item.dbc -s item.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		h := st.Header()
		cmd.Printf("magic:             %q\n", string(h.Magic[:]))
		cmd.Printf("record_count:      %d\n", h.RecordCount)
		cmd.Printf("field_count:       %d\n", h.FieldCount)
		cmd.Printf("record_size:       %d\n", h.RecordSize)
		cmd.Printf("string_block_size: %d\n", h.StringBlockSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
