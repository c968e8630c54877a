package main

import (
	"fmt"
	"io"
	"lofi/registry"
	"lofi/ui"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// openRegistry loads the environment and the channel registry on top of it.
func openRegistry() (*registry.Registry, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Open(e.catalog, registry.NewStorage(e.appState))
	if err != nil {
		return nil, fmt.Errorf("failed to open channel registry: %w", err)
	}
	return reg, nil
}

// parseChannelNumber turns a 1-based channel number into a list index.
func parseChannelNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid channel number %q", arg)
	}
	return n - 1, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printChannels(w io.Writer, reg *registry.Registry) {
	styled := isTerminal(w)
	s := ui.DefaultStyles()
	selected := reg.SelectedIndex()
	for i, ch := range reg.Visible() {
		if !styled {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", i+1, ch.Name, ch.URL, ch.IsCustom)
			continue
		}
		marker := " "
		if i == selected {
			marker = s.Accent.Render(ui.IconNow)
		}
		name := s.Text.Render(ch.Name)
		if ch.IsCustom {
			name += " " + s.Muted.Render(ui.IconCustom)
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			marker, " ", s.Badge.Render(ui.ChannelLabel(i)), " ", name, "  ", s.Muted.Render(ch.URL)))
	}
}

func printSelected(w io.Writer, reg *registry.Registry) {
	ch := reg.Selected()
	fmt.Fprintf(w, "%s %s\n", ui.ChannelLabel(reg.SelectedIndex()), ch.Name)
}

type draftFlags struct {
	name, url, description, creator string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "channel name")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "stream url")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "channel description")
	cmd.Flags().StringVarP(&f.creator, "creator", "c", "", "who runs the stream")
}

// apply overwrites the fields of d whose flags were given.
func (f *draftFlags) apply(cmd *cobra.Command, d registry.Draft) registry.Draft {
	if cmd.Flags().Changed("name") {
		d.Name = f.name
	}
	if cmd.Flags().Changed("url") {
		d.URL = f.url
	}
	if cmd.Flags().Changed("description") {
		d.Description = f.description
	}
	if cmd.Flags().Changed("creator") {
		d.Creator = f.creator
	}
	return d
}

func channelCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the visible channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			printChannels(cmd.OutOrStdout(), reg)
			return nil
		},
	}

	var addFlags draftFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			ch, err := reg.Add(addFlags.apply(cmd, registry.Draft{}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", ch.Name, ch.ID)
			return nil
		},
	}
	addFlags.register(addCmd)

	var editFlags draftFlags
	editCmd := &cobra.Command{
		Use:   "edit CHANNEL",
		Short: "Edit a channel; built-in channels are replaced by a custom copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseChannelNumber(args[0])
			if err != nil {
				return err
			}
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			current, err := reg.At(idx)
			if err != nil {
				return err
			}
			ch, err := reg.Edit(idx, editFlags.apply(cmd, registry.DraftOf(current)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", ch.Name)
			return nil
		},
	}
	editFlags.register(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete CHANNEL",
		Short: "Delete a custom channel or hide a built-in one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseChannelNumber(args[0])
			if err != nil {
				return err
			}
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			ch, err := reg.Delete(idx)
			if err != nil {
				return err
			}
			verb := "Hid"
			if ch.IsCustom {
				verb = "Deleted"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, ch.Name)
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select CHANNEL",
		Short: "Select the channel to play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseChannelNumber(args[0])
			if err != nil {
				return err
			}
			reg, err := openRegistry()
			if err != nil {
				return err
			}
			if _, err := reg.Select(idx); err != nil {
				return err
			}
			printSelected(cmd.OutOrStdout(), reg)
			return nil
		},
	}

	advance := func(cmd *cobra.Command, dir registry.Direction) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if _, err := reg.Advance(dir); err != nil {
			return err
		}
		printSelected(cmd.OutOrStdout(), reg)
		return nil
	}

	advanceCmd := &cobra.Command{
		Use:       "advance next|prev",
		Short:     "Step the selection, wrapping around the list",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{registry.Next.String(), registry.Prev.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := registry.ParseDirection(args[0])
			if err != nil {
				return err
			}
			return advance(cmd, dir)
		},
	}

	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Select the next channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return advance(cmd, registry.Next)
		},
	}

	prevCmd := &cobra.Command{
		Use:   "prev",
		Short: "Select the previous channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return advance(cmd, registry.Prev)
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the built-in channel catalog",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the catalog as YAML, a starting point for catalog_path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			data, err := e.catalog.Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d channels to %s\n", e.catalog.Len(), args[0])
			return nil
		},
	})

	return []*cobra.Command{
		listCmd, addCmd, editCmd, deleteCmd, selectCmd,
		advanceCmd, nextCmd, prevCmd, catalogCmd,
	}
}
