// Package cli runs the interactive shell.
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"

	"github.com/retrolang/dawbasic/basic"
	"github.com/retrolang/dawbasic/object"
	"github.com/retrolang/dawbasic/settings"
	"github.com/retrolang/dawbasic/terminal"
)

// Start begins interacting with the user and returns when the session
// ends, via QUIT, EXIT or end of input.  Piped input skips the banner
// and the line editor and just feeds lines through.
func Start(cfg settings.Settings) {
	term := terminal.New(os.Stdout)
	interp := basic.New(term)

	if !terminal.IsInteractive() {
		feed(interp, os.Stdin)
		return
	}

	banner(term)
	runLoop(interp, cfg)
}

// banner announces the dialect before the first prompt.
func banner(term object.Console) {
	term.Println("DAW BASIC v0.1")
	term.Println("READY")
}

// feed pushes lines from r into the interpreter.  The bool reports
// whether the session was still alive at end of input.
func feed(interp *basic.Interpreter, r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !interp.ParseLine(scanner.Text()) {
			return false
		}
	}
	return true
}

func runLoop(interp *basic.Interpreter, cfg settings.Settings) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	loadHistory(ln, cfg.HistoryFile)
	defer saveHistory(ln, cfg.HistoryFile)

	for {
		line, err := ln.Prompt(cfg.Prompt)
		switch {
		case err == liner.ErrPromptAborted:
			// Ctrl-C abandons the line, not the session
			continue
		case err == io.EOF:
			return
		case err != nil:
			log.Error().Err(err).Msg("terminal read failed")
			return
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !interp.ParseLine(line) {
			return
		}
	}
}

func loadHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("history not loaded")
	}
}

func saveHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("history not saved")
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("history not saved")
	}
}
