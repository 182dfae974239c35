// Command accessnav replays key presses against the input core without a
// terminal and prints every announcement. It is meant for scripting and for
// checking what a screen reader user would hear.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"accessnav/internal/config"
	"accessnav/internal/domain"
	"accessnav/internal/speech"
	"accessnav/internal/ui"
	"accessnav/internal/ui/input/types"
)

func main() {
	var configPath, logPath, keys string
	var ticks int
	flag.StringVar(&configPath, "config", "", "Configuration file (default: built-in catalog)")
	flag.StringVar(&logPath, "log", "", "Log file (default: no log)")
	flag.StringVar(&keys, "keys", "", `Space separated key names, e.g. "i down enter". Read from stdin when empty.`)
	flag.IntVar(&ticks, "ticks", 1, "Frames to advance before each key")
	flag.Parse()

	log.SetOutput(io.Discard)
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.NewConfigService().LoadFromPath(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	printer := speech.Func(func(text string, priority domain.Priority) {
		fmt.Fprintf(out, "  %-6s %s\n", priority, text)
	})
	session, err := ui.NewSession(cfg, nil, printer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var src io.Reader = os.Stdin
	if keys != "" {
		src = strings.NewReader(keys)
	}
	if err := run(session, src, out, ticks); err != nil {
		out.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run presses every key name read from src until input ends or a key quits
func run(session *ui.Session, src io.Reader, out io.Writer, ticks int) error {
	scanner := bufio.NewScanner(src)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		name := scanner.Text()
		ev, err := types.ParseKey(name)
		if err != nil {
			return err
		}
		for i := 0; i < ticks; i++ {
			session.Tick()
		}

		fmt.Fprintf(out, "> %s\n", name)
		switch session.Press(ev) {
		case ui.CommandQuit:
			fmt.Fprintln(out, "quit")
			return nil
		case ui.CommandNone:
			fmt.Fprintln(out, "  (unused)")
		case ui.CommandTranscript:
			for _, u := range session.History() {
				fmt.Fprintf(out, "  | %s\n", u.Text)
			}
		case ui.CommandCopy:
			if text, ok := session.LastAnnouncement(); ok {
				fmt.Fprintf(out, "  copy: %s\n", text)
			}
		}
		fmt.Fprintf(out, "  [%s] cursor %s\n", session.Focus(), session.State().Cursor)
	}
	return scanner.Err()
}
