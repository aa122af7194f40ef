package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/storage"
)

func newBackupsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backups [FILE]",
		Short: "List the backups the editor wrote, for one file or all files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bm  *storage.BackupManager
				err error
			)
			if dir != "" {
				bm, err = storage.NewBackupManagerIn(dir)
			} else {
				bm, err = storage.NewBackupManager()
			}
			if err != nil {
				return fmt.Errorf("failed to initialize backup manager: %w", err)
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			backups, err := bm.FindBackupsForFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				color.New(color.Faint, color.Italic).Fprintln(out, "no backups")
				return nil
			}
			when := color.New(color.FgHiYellow)
			session := color.New(color.Faint)
			for _, b := range backups {
				when.Fprint(out, b.Timestamp.Format("2006-01-02 15:04:05"))
				session.Fprintf(out, " %s ", b.SessionID)
				fmt.Fprintln(out, b.OriginalFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default ~/.local/share/outline-engine/backups)")
	return cmd
}
