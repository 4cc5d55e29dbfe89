package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/textstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet("todolist", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { printUsage(errOut, fs) }

	file := fs.StringP("file", "f", "", "task data file (default \""+textstore.DefaultFileName+"\")")
	configPath := fs.StringP("config", "c", "", "YAML config file (default $"+config.EnvVar+" or "+config.FileName+" in the user config dir)")
	plain := fs.Bool("plain", false, "read commands line by line, even on a terminal")
	group := fs.Bool("group", false, "group list output by pending/done")
	theme := fs.String("theme", "", "color theme: classic, neon or mono")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	errP := ui.NewPrinter(errOut, ui.ThemeByName(""))

	cfg, err := config.Load(*configPath)
	if err != nil {
		errP.Fail(err.Error())
		return exitUsage
	}
	if fs.Changed("file") {
		cfg.File = *file
	}
	if fs.Changed("plain") {
		cfg.Plain = *plain
	}
	if fs.Changed("group") {
		cfg.Group = *group
	}
	if fs.Changed("theme") {
		cfg.Theme = *theme
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		errP.Fail(err.Error())
		return exitUsage
	}

	lvl, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	logger.Debug("config", "path", cfg.Path, "file", cfg.File, "theme", cfg.Theme)

	sub := "session"
	if rest := fs.Args(); len(rest) > 0 {
		sub = rest[0]
		if len(rest) > 1 {
			errP.Fail("too many arguments")
			fs.Usage()
			return exitUsage
		}
	}
	if sub != "session" && sub != "browse" {
		errP.Fail("unknown subcommand: " + sub)
		fs.Usage()
		return exitUsage
	}

	store := model.NewStore()
	bad, err := textstore.Load(cfg.File, store, logger)
	if err != nil {
		errP.Fail("load: " + err.Error())
		return exitIO
	}

	th := ui.ThemeByName(cfg.Theme)
	interactive := isTerminal(in) && isTerminal(out)

	if sub == "browse" {
		return browse(store, bad, cfg.File, th, interactive, in, out, errP, logger)
	}

	s := cli.NewSession(store, cfg.File, ui.NewPrinter(out, th), logger)
	s.SetGroupedList(cfg.Group)
	s.Welcome(bad)
	if cfg.Plain || !interactive {
		err = cli.RunLines(in, s)
	} else {
		err = cli.RunPrompt(s, tea.WithInput(in), tea.WithOutput(out))
	}
	if err != nil {
		errP.Fail(err.Error())
		return exitIO
	}
	return exitOK
}

func browse(store *model.Store, bad []*textstore.LineError, path string, th ui.Theme, interactive bool, in io.Reader, out io.Writer, errP *ui.Printer, logger *slog.Logger) int {
	if !interactive {
		errP.Fail("browse: needs a terminal")
		return exitUsage
	}
	for _, le := range bad {
		errP.Fail(fmt.Sprintf("skipped line %d: %v", le.Line, le.Err))
	}

	res, err := ui.Browse(store.All(), th, tea.WithInput(in), tea.WithOutput(out))
	if err != nil {
		errP.Fail(err.Error())
		return exitIO
	}
	p := ui.NewPrinter(out, th)
	if !res.Changed() {
		p.Muted("no changes")
		return exitOK
	}
	res.Apply(store)
	if err := textstore.Save(path, store, logger); err != nil {
		errP.Fail("save: " + err.Error())
		return exitIO
	}
	p.OK("saved (" + res.String() + ")")
	return exitOK
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `todolist - a tiny task tracker

Usage:
  todolist [flags]          interactive session (type 'help' inside)
  todolist browse [flags]   browse tasks; space marks done, d deletes, q saves and quits

Flags:
%s`, fs.FlagUsages())
}
