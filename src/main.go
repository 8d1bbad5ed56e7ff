package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"singlevator/lib/network-go/network/status"
	"singlevator/src/config"
	"singlevator/src/console"
	"singlevator/src/elev"
	"singlevator/src/executor"
	"singlevator/src/panel"
	"singlevator/src/types"
	"singlevator/src/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	envPath := flag.String("env", config.DefaultEnvFile, "Path to an env file with ELEVATOR_* overrides")
	useConsole := flag.Bool("console", false, "Drive the car from the keyboard")
	monitor := flag.Bool("monitor", false, "Print status broadcasts instead of running a car")
	panelAddr := flag.String("panel", "", "Elevator server address, overrides panel_addr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		err = cfg.LoadEnv(*envPath)
	}
	if err == nil {
		if *panelAddr != "" {
			cfg.PanelAddr = *panelAddr
		}
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	logCloser, err := elev.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *monitor {
		err = runMonitor(ctx, cfg)
	} else {
		err = runCar(ctx, cfg, *useConsole)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Elevator stopped", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func runCar(ctx context.Context, cfg config.Config, useConsole bool) error {
	ctrl, err := elev.New(cfg.NumFloors, cfg.WeightLimit, slog.Default())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver := executor.New(ctrl, cfg, slog.Default())
	var wg sync.WaitGroup
	spawn := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Component stopped", "component", name, "error", err)
			}
		}()
	}

	if cfg.PanelAddr != "" {
		spawn("panel", func() error {
			return panel.Run(ctx, cfg.PanelAddr, cfg.NumFloors, cfg.SensorPollRate, driver)
		})
	}
	if cfg.BeaconPort > 0 {
		snaps := driver.Subscribe()
		spawn("beacon", func() error {
			return status.Transmitter(ctx, status.BroadcastAddr(cfg.BeaconPort), cfg.BeaconInterval, snaps)
		})
	}
	if useConsole {
		spawn("console", func() error {
			defer cancel()
			return console.Run(ctx, driver, os.Stdout)
		})
	}

	slog.Info("Elevator started", "floors", cfg.NumFloors, "weightLimit", cfg.WeightLimit)
	err = driver.Run(ctx)
	cancel()
	wg.Wait()
	return err
}

func runMonitor(ctx context.Context, cfg config.Config) error {
	if cfg.BeaconPort <= 0 {
		return errors.New("monitor needs beacon_port")
	}
	snaps := make(chan types.Snapshot)
	errCh := make(chan error, 1)
	go func() { errCh <- status.Receiver(ctx, cfg.BeaconPort, snaps) }()

	slog.Info("Monitoring status broadcasts", "port", cfg.BeaconPort)
	for {
		select {
		case err := <-errCh:
			return err
		case snap := <-snaps:
			fmt.Print("\033[H\033[2J")
			fmt.Print(utils.FormatShaft(snap))
			fmt.Println(utils.FormatStatus(snap))
		}
	}
}
