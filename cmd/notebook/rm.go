// ABOUTME: Remove command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a note",
	Long:  `Delete a note. Asks for confirmation unless --force is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		note, err := nb.FindNote(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		if !force {
			ok, err := confirm(fmt.Sprintf("Delete note %q (%s)?", note.Title, note.ShortID()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := nb.DeleteNote(note.ID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted note %s", note.ShortID())))
		return nil
	},
}

// confirm uses a huh dialog on a terminal and a plain y/N prompt on
// piped input.
func confirm(question string) (bool, error) {
	if interactive() {
		return ui.Confirm(question)
	}

	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
