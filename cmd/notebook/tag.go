// ABOUTME: Tag command for managing the tag registry.
// ABOUTME: Provides list, add, rename, rm, prune, and an interactive editor.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `List, add, rename, or remove tags. A rename shows up on every note carrying the tag.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := tagCounts()
		if len(counts) == 0 {
			fmt.Println("No tags found.")
		} else {
			fmt.Print(ui.FormatTagList(counts))
		}
		fmt.Print(ui.FormatStaleRefs(nb.StaleRefs()))
		return nil
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <label>...",
	Short: "Register new tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, label := range args {
			if existing, err := nb.FindTag(label); err == nil {
				fmt.Println(ui.Warning(fmt.Sprintf("Tag %q already exists", existing.Label)))
				continue
			}
			tag := models.NewTag(label)
			if err := nb.AddTag(*tag); err != nil {
				return fmt.Errorf("failed to add tag %q: %w", label, err)
			}
			fmt.Println(ui.Success(fmt.Sprintf("Added tag %q", tag.Label)))
		}
		return nil
	},
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename <tag> <new-label>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := nb.FindTag(args[0])
		if err != nil {
			return err
		}
		return renameTag(tag, args[1])
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <tag>",
	Short: "Remove a tag",
	Long:  `Remove a tag from the registry. Notes stop showing it; run "tag prune" to drop the leftover references.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		tag, err := nb.FindTag(args[0])
		if err != nil {
			return err
		}

		if !force {
			ok, err := confirm(fmt.Sprintf("Delete tag %q?", tag.Label))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		return deleteTag(tag)
	},
}

var tagPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove references to deleted tags from notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := nb.PruneTagRefs()
		if err != nil {
			return fmt.Errorf("failed to prune tags: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed %d stale tag reference(s)", removed)))
		return nil
	},
}

var tagEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Rename or delete tags interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !interactive() {
			return fmt.Errorf("tag edit needs a terminal; use tag rename or tag rm")
		}

		res, err := ui.RunTagDialog(tagCounts())
		if errors.Is(err, ui.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		tag, err := nb.FindTag(res.TagID)
		if err != nil {
			return err
		}
		switch res.Action {
		case ui.TagRename:
			return renameTag(tag, res.Label)
		case ui.TagDelete:
			ok, err := ui.Confirm(fmt.Sprintf("Delete tag %q?", tag.Label))
			if err != nil || !ok {
				return err
			}
			return deleteTag(tag)
		default:
			return fmt.Errorf("unknown tag action %q", res.Action)
		}
	},
}

func renameTag(tag *models.Tag, label string) error {
	if err := nb.UpdateTag(tag.ID, label); err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Renamed tag %q to %q", tag.Label, label)))
	return nil
}

func deleteTag(tag *models.Tag) error {
	if err := nb.DeleteTag(tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Deleted tag %q", tag.Label)))
	fmt.Print(ui.FormatStaleRefs(nb.StaleRefs()))
	return nil
}

func tagCounts() []ui.TagCount {
	var out []ui.TagCount
	for _, c := range nb.TagCounts() {
		out = append(out, ui.TagCount{ID: c.Tag.ID, Label: c.Tag.Label, Count: c.Count})
	}
	return out
}

func init() {
	tagRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagPruneCmd)
	tagCmd.AddCommand(tagEditCmd)
	rootCmd.AddCommand(tagCmd)
}
