package cmd

import (
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/wowtools/dbckit/pkg/archive"
)

// snapshotCmd groups the snapshot subcommands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage archived database snapshots",
	Long: `Manage point-in-time snapshots of the database image in a local
archive.

Examples:
  dbckit snapshot save -f Item.dbc -s item.yaml
  dbckit snapshot list -f Item.dbc -s item.yaml
  dbckit snapshot restore 2bVxyz... -f Item.dbc -s item.yaml`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Archive the current database image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		arc, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer arc.Close()

		id, err := arc.Save(st.Encode())
		if err != nil {
			return err
		}
		cmd.Printf("snapshot %s saved\n", id)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		arc, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer arc.Close()

		entries, err := arc.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			cmd.Printf("%s  %d bytes\n", e.ID, e.Size)
		}
		cmd.Printf("%d snapshot(s)\n", len(entries))
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a snapshot over the data file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return err
		}

		arc, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer arc.Close()

		image, err := arc.Load(id)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		if err := os.WriteFile(file, image, 0600); err != nil {
			return err
		}
		cmd.Printf("restored snapshot %s to %s\n", id, file)
		return nil
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return err
		}

		arc, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer arc.Close()

		if err := arc.Delete(id); err != nil {
			return err
		}
		cmd.Printf("deleted snapshot %s\n", id)
		return nil
	},
}

func openArchive(cmd *cobra.Command) (*archive.Archive, error) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	return archive.Open(dir)
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	snapshotCmd.PersistentFlags().String("archive-dir", "./archive", "Directory holding the snapshot archive")
}
