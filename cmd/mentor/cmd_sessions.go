package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sessionsExportDir    string
	sessionsExportFormat string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list [character]",
	Short: "List a character's chat sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsList,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsExportCmd.Flags().StringVar(&sessionsExportDir, "dir", "", "Directory to write the transcript to (default: workspace root)")
	sessionsExportCmd.Flags().StringVar(&sessionsExportFormat, "format", "md", "Export format: md or json")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.SessionsForCharacter(args[0])
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println(mutedStyle.Render("No sessions for " + args[0] + "."))
		return nil
	}

	fmt.Println(headerStyle.Render("Sessions for " + args[0]))
	for _, s := range sessions {
		fmt.Printf("  %-34s %s  %s\n",
			s.ID, s.Title, mutedStyle.Render(s.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	path, err := exportSession(db, args[0], sessionsExportDir, sessionsExportFormat)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Saved " + path))
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteSession(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted session " + args[0])
	return nil
}
