package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"accessnav/internal/config"
	"accessnav/internal/eventbus"
	"accessnav/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, logPath string
	flag.StringVar(&configPath, "config", "", "Configuration file (default ./"+config.FileName+" or the user config)")
	flag.StringVar(&configPath, "c", "", "Configuration file (shorthand)")
	flag.StringVar(&logPath, "log", "", "Log file (overrides log_file from the config)")
	flag.Parse()

	// Create event bus
	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(configSvc, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel, err := ui.NewModel(bus, cfg)
	if err != nil {
		log.Printf("Error creating UI: %v", err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventDispatchFault,
		eventbus.EventSelectionCommitted,
		eventbus.EventItemActivated,
	} {
		bus.Subscribe(t, forwardEvent)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Cleanup: drain the bus before closing the channel it feeds
	bus.Close()
	close(eventChan)
}

// loadConfig reads the explicit path, then ./.accessnav.toml, then the user config
func loadConfig(configSvc config.ConfigService, path string) (*config.Config, error) {
	if path != "" {
		return configSvc.LoadFromPath(path)
	}
	if _, err := os.Stat(config.FileName); err == nil {
		cfg, err := configSvc.LoadFromPath(config.FileName)
		if err == nil {
			log.Printf("Loaded config from %s", config.FileName)
		}
		return cfg, err
	}
	return configSvc.Load()
}
