// cmd/linkmon/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/quadlink/linkmon/internal/config"
	"github.com/quadlink/linkmon/internal/discovery"
	"github.com/quadlink/linkmon/internal/dispatcher"
	"github.com/quadlink/linkmon/internal/link/tello"
	"github.com/quadlink/linkmon/internal/logging"
	"github.com/quadlink/linkmon/internal/monitor"
	"github.com/quadlink/linkmon/internal/serialio"
	"github.com/quadlink/linkmon/internal/status"
)

func main() {
	// Config file is optional: linkmon [config.yaml]
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	lg := logging.New(cfg.Monitor.LogFile)

	banner()

	// --------------------
	// Discovery
	// --------------------

	drv := &tello.Driver{}
	if err := drv.Init(); err != nil {
		lg.Errorf("failed to initialize flight link driver: %v", err)
		os.Exit(1)
	}

	board := &status.Board{}
	probeTimeout := time.Duration(cfg.Monitor.Serial.ProbeTimeoutSec) * time.Second
	sup := monitor.New(lg, board, drv, openSerial, probeTimeout)

	linkEps := discovery.LinkEndpoints(drv, lg)
	if len(linkEps) == 0 {
		lg.Errorf("no flight link endpoints found")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("1. Make sure the flight controller is powered on")
		fmt.Println("2. Check the radio connection")
		fmt.Println("3. Move closer to the flight controller")
		os.Exit(1)
	}

	serialEps := discovery.SerialEndpoints(serialio.Lister{}, lg)
	if len(serialEps) == 0 {
		lg.Warnf("no serial ports found")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("1. Make sure the board is connected via USB")
		fmt.Println("2. Check that the board is powered on")
		fmt.Println("3. Try a different USB cable")
	}

	// --------------------
	// Connect (link is required, serial is not)
	// --------------------

	connectTimeout := time.Duration(cfg.Monitor.Link.ConnectTimeoutSec) * time.Second
	if !sup.ConnectLink(linkEps[0].ID, connectTimeout) {
		lg.Errorf("failed to connect to flight link")
		os.Exit(1)
	}

	if len(serialEps) > 0 {
		if !sup.ConnectSerial(serialEps[0].ID, cfg.Monitor.Serial.BaudRate) {
			lg.Warnf("continuing without the serial peripheral")
		}
	}

	// --------------------
	// Monitoring loop + operator commands
	// --------------------

	ctx, cancel := context.WithCancel(context.Background())
	go sup.Run(ctx, time.Duration(cfg.Monitor.StatusIntervalSec)*time.Second)

	fmt.Println("\nPress Ctrl+C or type 'quit' to stop")
	fmt.Println(strings.Repeat("-", 60))

	done := make(chan struct{})
	go func() {
		dispatcher.Run(os.Stdin, os.Stdout, sup)
		close(done)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
	case <-sig:
		fmt.Println("\nStopping monitor...")
	}

	cancel()
	sup.Close()
	fmt.Println("Monitor stopped.")
}

func openSerial(name string, baudRate int) (serialio.Port, error) {
	return serialio.Open(name, baudRate)
}

func banner() {
	line := strings.Repeat("=", 60)
	fmt.Println(line)
	fmt.Println("Flight Link / Serial Bridge Connection Monitor")
	fmt.Println(line)
	fmt.Println("Supervises the radio link to the flight controller and the")
	fmt.Println("serial connection to the bridge board, and reports their")
	fmt.Println("health until told to quit.")
	fmt.Println(line)
}
