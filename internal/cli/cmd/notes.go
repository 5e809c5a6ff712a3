package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/domain/entity"
)

var (
	noteTitleFlag   string
	noteContentFlag string
	noteRaw         bool
	noteYes         bool
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage quick notes",
	Long: `Quick notes are shown on the page when the quickNotes widget is
visible. Content is Markdown. Content read from stdin when given as "-".`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runNotesList,
}

var notesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesShow,
}

var notesAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a note",
	Long: `Add a note. A blank title becomes "Untitled Note".

Examples:
  newtab notes add --title Groceries "milk, eggs"
  echo "- [ ] ship it" | newtab notes add --title Todo -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotesAdd,
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the title or content of a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesUpdate,
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesDelete,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesAddCmd, notesUpdateCmd, notesDeleteCmd)

	notesShowCmd.Flags().BoolVar(&noteRaw, "raw", false, "print the Markdown source")
	notesAddCmd.Flags().StringVarP(&noteTitleFlag, "title", "t", "", "note title")
	notesUpdateCmd.Flags().StringVarP(&noteTitleFlag, "title", "t", "", "new title")
	notesUpdateCmd.Flags().StringVarP(&noteContentFlag, "content", "c", "", `new content, "-" reads stdin`)
	notesDeleteCmd.Flags().BoolVarP(&noteYes, "yes", "y", false, "skip confirmation prompt")
}

func runNotesList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	notes := app.Notes().List()
	out := cmd.OutOrStdout()
	if len(notes) == 0 {
		fmt.Fprintln(out, app.Theme.Subtle.Render("No notes. Add one with `newtab notes add`."))
		return nil
	}

	now := time.Now()
	rows := make([]table.Row, 0, len(notes))
	for _, n := range notes {
		edited := "never"
		if n.UpdatedAt > 0 {
			edited = styles.RelativeTime(time.UnixMilli(n.UpdatedAt), now)
		}
		rows = append(rows, table.Row{n.ID, n.Title, edited})
	}
	fmt.Fprintln(out, app.Theme.RenderTable(styles.NoteTableColumns(), rows))
	return nil
}

func runNotesShow(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	note, err := app.Notes().Get(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if noteRaw {
		fmt.Fprintln(out, note.Content)
		return nil
	}

	dark := entity.ResolveAppearance(app.Settings().Get()).Dark
	body, err := styles.RenderMarkdown(note.Content, dark)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s  %s\n%s",
		app.Theme.Highlight.Render(styles.IconNote),
		app.Theme.Title.Render(note.Title),
		app.Theme.NoteBadge(note.UpdatedAt, time.Now()),
		body,
	)
	return nil
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	content := ""
	if len(args) == 1 {
		content, err = readContent(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
	}

	note := app.Notes().Add(app.Ctx(), usecase.NoteInput{Title: noteTitleFlag, Content: content})
	printNote(cmd.OutOrStdout(), app.Theme, note)
	return nil
}

func runNotesUpdate(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	uc := app.Notes()
	current, err := uc.Get(args[0])
	if err != nil {
		return err
	}
	input := usecase.NoteInput{Title: current.Title, Content: current.Content}
	if cmd.Flags().Changed("title") {
		input.Title = noteTitleFlag
	}
	if cmd.Flags().Changed("content") {
		input.Content, err = readContent(cmd.InOrStdin(), noteContentFlag)
		if err != nil {
			return err
		}
	}

	note, err := uc.Update(app.Ctx(), current.ID, input)
	if err != nil {
		return err
	}
	printNote(cmd.OutOrStdout(), app.Theme, *note)
	return nil
}

func runNotesDelete(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	uc := app.Notes()
	note, err := uc.Get(args[0])
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Delete note %q?", note.Title)
	return confirmAndRun(cmd.OutOrStdout(), app.Theme, noteYes, question, func() (string, error) {
		if err := uc.Delete(app.Ctx(), note.ID); err != nil {
			return "", err
		}
		return app.Theme.SuccessStyle.Render(styles.IconCheck + " Deleted " + note.Title), nil
	})
}

// readContent returns arg, or stdin when arg is "-".
func readContent(stdin io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func printNote(out io.Writer, theme *styles.Theme, note entity.Note) {
	fmt.Fprintf(out, "%s %s %s\n",
		theme.SuccessStyle.Render(styles.IconCheck),
		theme.Highlight.Render(note.Title),
		theme.Subtle.Render(note.ID),
	)
}
