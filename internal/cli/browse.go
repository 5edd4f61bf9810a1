package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/source/fs"
	"github.com/matzehuels/arbor/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive tree browser
// =============================================================================

type browseRow struct {
	node  *tree.Node[fs.Entry]
	depth int
}

// BrowseModel is the bubbletea model for the interactive browser. Directories
// expand and collapse in place; enter on a file selects it and quits.
type BrowseModel struct {
	Root     *tree.Node[fs.Entry]
	Cursor   int
	Offset   int
	Height   int
	Selected *tree.Node[fs.Entry]

	expanded map[*tree.Node[fs.Entry]]bool
	rows     []browseRow
}

// NewBrowseModel creates a browser with the root expanded.
func NewBrowseModel(root *tree.Node[fs.Entry]) BrowseModel {
	m := BrowseModel{
		Root:     root,
		Height:   20,
		expanded: map[*tree.Node[fs.Entry]]bool{root: true},
	}
	m.refresh()
	return m
}

// refresh rebuilds the list of visible rows.
func (m *BrowseModel) refresh() {
	m.rows = m.rows[:0]
	stack := []browseRow{{m.Root, 0}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m.rows = append(m.rows, r)
		if !m.expanded[r.node] {
			continue
		}
		children := r.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, browseRow{children[i], r.depth + 1})
		}
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

// Current returns the node under the cursor.
func (m BrowseModel) Current() *tree.Node[fs.Entry] {
	return m.rows[m.Cursor].node
}

func (m *BrowseModel) moveTo(n *tree.Node[fs.Entry]) {
	for i, r := range m.rows {
		if r.node == n {
			m.Cursor = i
			break
		}
	}
	m.scroll()
}

func (m *BrowseModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cur := m.Current()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.rows) - 1
		case "right", "l":
			if cur.HasChildren() && !m.expanded[cur] {
				m.expanded[cur] = true
				m.refresh()
			}
		case "left", "h":
			if m.expanded[cur] && cur != m.Root {
				delete(m.expanded, cur)
				m.refresh()
			} else if p := cur.Parent(); p != nil {
				m.moveTo(p)
			}
		case "p":
			if p := cur.Parent(); p != nil {
				m.moveTo(p)
			}
		case "enter", " ":
			if !cur.HasChildren() {
				if !cur.Value().Dir {
					m.Selected = cur
					return m, tea.Quit
				}
				break
			}
			if cur == m.Root {
				break
			}
			if m.expanded[cur] {
				delete(m.expanded, cur)
			} else {
				m.expanded[cur] = true
			}
			m.refresh()
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Root.Value().Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ collapse/expand  p parent  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		n := r.node

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "  "
		if n.HasChildren() {
			marker = "+ "
			if m.expanded[n] {
				marker = "- "
			}
		}

		label := n.Value().String()
		if i == m.Cursor {
			label = listSelectedStyle.Render(label)
		} else {
			label = entryStyle(n).Render(label)
		}
		line := cursor + strings.Repeat("  ", r.depth) + listDimStyle.Render(marker) + label
		if n.HasChildren() && !m.expanded[n] {
			line += listDimStyle.Render(fmt.Sprintf(" (%d)", n.CountDescendants()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	cur := m.Current().Value()
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %s  %s", m.Cursor+1, len(m.rows), cur.Path, formatSize(cur.Size))))

	return b.String()
}

// browseCommand creates the "browse" command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Explore a directory tree interactively",
		Long: `Explore a directory tree in the terminal. Pressing enter on a file prints
its path to stdout and exits, so the browser can be used in scripts:

  $EDITOR "$(arbor browse)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			root, err := c.scan(cmd, dir, &flags)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewBrowseModel(root),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
				tea.WithAltScreen(),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok && m.Selected != nil {
				fmt.Fprintln(cmd.OutOrStdout(), joinRoot(dir, m.Selected.Value().Path))
			}
			return nil
		},
	}

	addScanFlags(cmd, &flags)
	return cmd
}

func joinRoot(dir, rel string) string {
	if rel == "." {
		return dir
	}
	if dir == "." {
		return rel
	}
	return strings.TrimSuffix(dir, "/") + "/" + rel
}
