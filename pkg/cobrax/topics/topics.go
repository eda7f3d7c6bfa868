// Package topics serves documentation pages for cobra applications.
// Pages are markdown or plain-text files loaded from an fs.FS, usually
// one embedded in the binary, so the manual ships with the tool and
// needs no install step. A loaded Manager can back a dedicated docs
// command and extend the root help command so "app help <topic>" works
// alongside "app help <command>".
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one documentation page.
type Topic struct {
	Name    string // file name without extension
	Ext     string // file extension, drives rendering
	Content string
}

// Title returns the page's first markdown heading, or the topic name
// when the page has none.
func (t *Topic) Title() string {
	for _, line := range strings.Split(t.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return t.Name
}

// Manager holds the loaded pages of one application.
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Options configure topic loading.
type Options struct {
	// Extensions lists the file extensions treated as topic pages.
	// Defaults to ".md" and ".txt".
	Extensions []string

	// Renderer formats page content for display. Defaults to
	// PlainRenderer.
	Renderer Renderer
}

// Load reads every topic page under root in fsys. Files with other
// extensions are ignored, subdirectories are descended into, and page
// names must be unique across the whole tree.
func Load(fsys fs.FS, root string, opts Options) (*Manager, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".md", ".txt"}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = &PlainRenderer{}
	}

	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		supported := false
		for _, e := range exts {
			if ext == e {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		if _, exists := m.topics[name]; exists {
			return fmt.Errorf("duplicate topic name %q", name)
		}
		m.topics[name] = &Topic{
			Name:    name,
			Ext:     ext,
			Content: string(content),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	return m, nil
}

// Get retrieves a page by name.
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// Names returns all page names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the rendered content of the named page. The second
// return is false when no such page exists.
func (m *Manager) Render(name string) (string, bool) {
	t, ok := m.topics[name]
	if !ok {
		return "", false
	}
	return m.renderer.Render(t.Content, t.Ext), true
}

// Install extends rootCmd's help system with the manager's pages.
// "app help <topic>" renders the page when one matches and falls back
// to cobra's regular help otherwise. Command names always win over
// topic names, so a page cannot shadow a command.
func Install(rootCmd *cobra.Command, m *Manager) {
	originalHelp := rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help provides help for any command or documentation topic.
Type %[1]s help <command> for command usage, or %[1]s help <topic> to
read a documentation page.`, rootCmd.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var completions []string
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = rootCmd.Help()
				return
			}
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				_ = target.Help()
				return
			}
			if rendered, ok := m.Render(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return
			}
			originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 && cmd == rootCmd {
			if rendered, ok := m.Render(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return
			}
		}
		originalHelp(cmd, args)
	})
}
