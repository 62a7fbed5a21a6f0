// Command ups-trap-monitor receives SNMP traps from a UPS/ATS, drives the
// alarm panel, and forwards alerts over email and MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
	"github.com/sweeney/ups-trap-monitor/internal/config"
	"github.com/sweeney/ups-trap-monitor/internal/monitor"
	"github.com/sweeney/ups-trap-monitor/internal/mqtt"
	"github.com/sweeney/ups-trap-monitor/internal/notify"
	"github.com/sweeney/ups-trap-monitor/internal/panel"
	"github.com/sweeney/ups-trap-monitor/internal/snmp"
	"github.com/sweeney/ups-trap-monitor/internal/status"
	"github.com/sweeney/ups-trap-monitor/internal/store"
	"github.com/sweeney/ups-trap-monitor/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (empty for defaults)")
	listenAddr := flag.String("listen", "", "Trap listener address override (host:port)")
	broker := flag.String("broker", "", "MQTT broker override (implies mqtt enabled)")
	httpAddr := flag.String("http", "", "HTTP status address override")
	dbPath := flag.String("db", "", "SQLite database path override")
	printCatalog := flag.Bool("print-catalog", false, "Print the condition catalog and exit")

	flag.Parse()

	if *printCatalog {
		printConditionCatalog()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *listenAddr != "" {
		cfg.SNMP.ListenAddr = *listenAddr
	}
	if *broker != "" {
		cfg.MQTT.Enabled = true
		cfg.MQTT.Broker = *broker
	}
	if *httpAddr != "" {
		cfg.HTTP.Addr = *httpAddr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		log.Printf("no config file given, using defaults")
		return config.Default(), nil
	}
	return config.Load(path)
}

func printConditionCatalog() {
	for _, d := range catalog.Default().Definitions() {
		resume := "-"
		if d.Resumption != "" {
			resume = d.Resumption
		}
		fmt.Printf("%3d  %-10s %-8s %-34s clears-via=%s\n", d.Code, d.Type, d.Severity, d.Identifier, resume)
	}
}

func run(cfg *config.Config) error {
	cat := catalog.Default()

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	outputs, err := openOutputs(cfg)
	if err != nil {
		return fmt.Errorf("init panel: %w", err)
	}
	defer outputs.Close()

	var sender notify.Sender
	var gate *notify.Gate
	if cfg.Email.Enabled {
		sender = notify.NewRealSender(notify.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			UseSSL:   cfg.Email.UseSSL,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		})
		defer sender.Close()
		gate = notify.NewGate(cfg.Email.Cooldown)
		log.Printf("email alerts to %v via %s:%d, cooldown %v", cfg.Email.To, cfg.Email.Host, cfg.Email.Port, cfg.Email.Cooldown)
	}

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Enabled {
		real, err := mqtt.NewRealPublisher(cfg.MQTT.Broker)
		if err != nil {
			return fmt.Errorf("connect mqtt: %w", err)
		}
		defer real.Close()
		publisher = real
		mqttStatus = real
		log.Printf("publishing to %s", cfg.MQTT.Broker)
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		ListenAddr:      cfg.SNMP.ListenAddr,
		Community:       cfg.SNMP.Community,
		Broker:          cfg.MQTT.Broker,
		HTTPAddr:        cfg.HTTP.Addr,
		CooldownSeconds: int64(cfg.Email.CooldownSeconds),
		DBPath:          cfg.Database.Path,
	})

	mon, err := monitor.New(monitor.Options{
		Catalog:   cat,
		Store:     st,
		Outputs:   outputs,
		Gate:      gate,
		Sender:    sender,
		Publisher: publisher,
		Tracker:   tracker,
	})
	if err != nil {
		return err
	}

	buttons, err := openButtons(cfg, mon)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	if buttons != nil {
		defer buttons.Close()
	}

	if publisher != nil {
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
		snap := tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	if cfg.HTTP.Enabled {
		srv := web.New(cfg.HTTP.Addr, tracker, mon)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	listener := snmp.NewListener(cfg.SNMP.ListenAddr, cfg.SNMP.Community, mon.HandleTrap)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- listener.Listen()
	}()
	defer listener.Close()

	log.Printf("started: listen=%s community=%q heartbeat=%v", cfg.SNMP.ListenAddr, cfg.SNMP.Community, cfg.Heartbeat.Interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var heartbeat <-chan time.Time
	if cfg.Heartbeat.Interval > 0 {
		ticker := time.NewTicker(cfg.Heartbeat.Interval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	return runLoop(publisher, mqttStatus, tracker, heartbeat, listenErr, sigCh)
}

// runLoop waits for heartbeat ticks, listener failure, or a shutdown
// signal. Factored out of run so tests can drive the channels directly.
func runLoop(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat <-chan time.Time, listenErr <-chan error, sig <-chan os.Signal) error {
	for {
		select {
		case err := <-listenErr:
			return fmt.Errorf("trap listener: %w", err)

		case <-heartbeat:
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
			snap := tracker.Snapshot()
			log.Printf("heartbeat: uptime=%v active=%d muted=%v", snap.Uptime().Truncate(time.Second), len(snap.Alarms), snap.Muted)
			if publisher != nil {
				hb := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hb); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if publisher != nil {
				signalName := "UNKNOWN"
				if s == syscall.SIGINT {
					signalName = "SIGINT"
				} else if s == syscall.SIGTERM {
					signalName = "SIGTERM"
				}
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				shutdown := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "SHUTDOWN",
					Reason:     signalName,
					Retained:   true,
					RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
				}
				if err := publisher.PublishSystem(shutdown); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil
		}
	}
}

// openOutputs returns the GPIO panel driver, or a no-op fake when the
// panel is disabled (e.g. running off-device).
func openOutputs(cfg *config.Config) (panel.Outputs, error) {
	if !cfg.Panel.Enabled {
		log.Printf("panel disabled, using simulated outputs")
		return panel.NewFakeOutputs(), nil
	}
	return panel.NewRealOutputs(cfg.Panel.OutputPins())
}

func openButtons(cfg *config.Config, mon *monitor.Monitor) (panel.Buttons, error) {
	if !cfg.Panel.Enabled {
		return nil, nil
	}
	return panel.NewRealButtons(cfg.Panel.MuteButtonPin, cfg.Panel.ResetButtonPin, cfg.Panel.Debounce, mon.OnMutePress, mon.OnResetPress)
}
