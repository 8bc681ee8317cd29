package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artimentor/internal/archive"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage archived scan folders",
	Long: `Archived scans live under .mentor/scans/, one folder per scan.
Folders are recognized by their raw.json or characters_v1.csv marker;
anything else in the directory is left alone.`,
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived scans, newest first",
	RunE:  runDataList,
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete one archived scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataDelete,
}

var dataRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename an archived scan",
	Args:  cobra.ExactArgs(2),
	RunE:  runDataRename,
}

var dataClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every archived scan",
	RunE:  runDataClear,
}

var dataWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the archive for changes until interrupted",
	RunE:  runDataWatch,
}

func init() {
	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataDeleteCmd)
	dataCmd.AddCommand(dataRenameCmd)
	dataCmd.AddCommand(dataClearCmd)
	dataCmd.AddCommand(dataWatchCmd)
}

func openArchive() (*archive.Manager, error) {
	root, err := scansRoot()
	if err != nil {
		return nil, err
	}
	return archive.NewManager(root), nil
}

func runDataList(cmd *cobra.Command, args []string) error {
	mgr, err := openArchive()
	if err != nil {
		return err
	}

	folders, err := mgr.List()
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		fmt.Println(mutedStyle.Render("No archived scans."))
		return nil
	}

	fmt.Println(headerStyle.Render("Archived scans"))
	for _, f := range folders {
		fmt.Printf("  %-40s %s\n", f.Name, mutedStyle.Render(f.Modified.Format("2006-01-02 15:04")))
	}
	return nil
}

func runDataDelete(cmd *cobra.Command, args []string) error {
	mgr, err := openArchive()
	if err != nil {
		return err
	}
	if err := mgr.Delete(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted " + args[0])
	return nil
}

func runDataRename(cmd *cobra.Command, args []string) error {
	mgr, err := openArchive()
	if err != nil {
		return err
	}
	if err := mgr.Rename(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Renamed %s to %s\n", args[0], args[1])
	return nil
}

func runDataClear(cmd *cobra.Command, args []string) error {
	mgr, err := openArchive()
	if err != nil {
		return err
	}
	n, err := mgr.ClearAll()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d archived scan(s)\n", n)
	return nil
}

func runDataWatch(cmd *cobra.Command, args []string) error {
	mgr, err := openArchive()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan archive.Event, 16)
	go func() {
		for ev := range events {
			fmt.Printf("%s %s\n", mutedStyle.Render(ev.Op), ev.Name)
		}
	}()

	fmt.Println(mutedStyle.Render("Watching " + mgr.Root() + " (ctrl-c to stop)"))
	err = mgr.Watch(ctx, events)
	close(events)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
