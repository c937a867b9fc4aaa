package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TerminalUI implements UI over line based input and output streams.
type TerminalUI struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewTerminalUI provides an instance of TerminalUI. When assumeYes is set
// every confirmation is accepted without reading the input.
func NewTerminalUI(in io.Reader, out io.Writer, assumeYes bool) *TerminalUI {
	return &TerminalUI{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (t *TerminalUI) Alert(message string) {
	fmt.Fprintf(t.out, "[!] %s\n", message)
}

func (t *TerminalUI) Confirm(message string) bool {
	if t.assumeYes {
		return true
	}
	fmt.Fprintf(t.out, "%s [y/N]: ", message)
	line, ok := t.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *TerminalUI) Prompt(message, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(t.out, "%s ", message)
	}
	line, ok := t.readLine()
	if !ok {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}

// readLine returns the next trimmed line. ok is false once the input is exhausted.
func (t *TerminalUI) readLine() (string, bool) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// presetPromptUI answers every prompt with a fixed value. It serves
// the one-shot edit command where the new title comes from a flag.
type presetPromptUI struct {
	UI
	value string
}

func (p presetPromptUI) Prompt(_, _ string) (string, bool) {
	return p.value, p.value != ""
}

const shellHelp = `commands:
  list                  show the movies matching the current search
  search [term]         set the search term (empty clears it)
  add                   fill the add form and submit it
  edit <id>             change the title of a movie
  rent <id>             rent a movie
  return <id>           return a rented movie
  delete <id>           delete a movie
  help                  show this message
  quit                  leave the shell`

// Shell is the interactive loop of the catalog client.
type Shell struct {
	catalog *Catalog
	ui      *TerminalUI
	out     io.Writer
}

// NewShell provides an instance of Shell.
func NewShell(catalog *Catalog, ui *TerminalUI, out io.Writer) *Shell {
	return &Shell{catalog: catalog, ui: ui, out: out}
}

// Run mounts the catalog then executes commands until quit or end of input.
// Action failures are already reported to the user so they do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Movies Manager. Type help for the list of commands.")
	_ = s.catalog.Mount(ctx)
	_ = s.catalog.Render(s.out)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(s.out, "> ")
		line, ok := s.ui.readLine()
		if !ok {
			return nil
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(s.out, shellHelp)
			continue
		case "list":
			_ = s.catalog.Mount(ctx)
		case "search":
			_ = s.catalog.SetSearch(ctx, arg)
		case "add":
			s.fillForm()
			_ = s.catalog.Submit(ctx)
		case "edit", "rent", "return", "delete":
			if arg == "" {
				s.ui.Alert("A movie id is required.")
				continue
			}
			_ = s.action(cmd)(ctx, arg)
		default:
			s.ui.Alert(fmt.Sprintf("Unknown command %q. Type help.", cmd))
			continue
		}
		_ = s.catalog.Render(s.out)
	}
}

func (s *Shell) action(cmd string) func(context.Context, string) error {
	switch cmd {
	case "edit":
		return s.catalog.Edit
	case "rent":
		return s.catalog.Rent
	case "return":
		return s.catalog.Return
	default:
		return s.catalog.Delete
	}
}

// fillForm reads the add form fields. A non numeric year leaves it to zero
// so the form check rejects it.
func (s *Shell) fillForm() {
	form := &s.catalog.Form
	if v, ok := s.ui.Prompt("Title:", form.Title); ok {
		form.Title = v
	}
	if v, ok := s.ui.Prompt("Director:", form.Director); ok {
		form.Director = v
	}
	if v, ok := s.ui.Prompt("Year:", strconv.Itoa(form.Year)); ok {
		year, err := strconv.Atoi(v)
		if err != nil {
			year = 0
		}
		form.Year = year
	}
}
