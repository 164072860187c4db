package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/siddarth709/Portfolio/internal/mirror"
	"github.com/siddarth709/Portfolio/internal/store"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Overwrite local data documents with the copies on the remote mirror",
	Long: `Fetch every data document (data/<name>.json) from the configured remote
mirror and overwrite the local copy. Documents missing on the remote are left
untouched. Runs the same restore the API performs at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		report := e.mirror.Restore(cmd.Context(), store.RelPaths())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "backend: %s\n", e.mirror.Name())
		for _, p := range report.Restored {
			fmt.Fprintf(out, "restored  %s\n", p)
		}
		for _, p := range report.Missing {
			fmt.Fprintf(out, "missing   %s\n", p)
		}
		failed := make([]string, 0, len(report.Failed))
		for p := range report.Failed {
			failed = append(failed, p)
		}
		sort.Strings(failed)
		for _, p := range failed {
			fmt.Fprintf(out, "failed    %s: %v\n", p, report.Failed[p])
		}
		return report.Err()
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Commit and push all local changes to the remote mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		message, _ := cmd.Flags().GetString("message")
		change := mirror.Change{Message: message}
		if e.mirror.Name() != "git" {
			// 对象存储后端只上传显式列出的文件。
			change.Paths = store.RelPaths()
		}
		res := e.mirror.Push(cmd.Context(), change)
		switch {
		case res.Err != nil:
			return res.Err
		case res.Skipped:
			fmt.Fprintln(cmd.OutOrStdout(), "remote sync is not configured, nothing pushed")
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "pushed via %s\n", res.Backend)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().StringP("message", "m", mirror.DefaultMessage, "Commit message")
}
