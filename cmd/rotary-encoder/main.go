// Command rotary-encoder polls a quadrature rotary encoder on GPIO, prints a
// status line on every change and publishes rotation and button events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/rotary-encoder/internal/console"
	"github.com/sweeney/rotary-encoder/internal/gpio"
	"github.com/sweeney/rotary-encoder/internal/logic"
	"github.com/sweeney/rotary-encoder/internal/mqtt"
	"github.com/sweeney/rotary-encoder/internal/status"
	"github.com/sweeney/rotary-encoder/internal/web"
	"github.com/sweeney/rotary-encoder/rotary"
)

type options struct {
	poll       time.Duration
	chip       string
	pinCLK     int
	pinDT      int
	pinSW      int
	pinLED     int
	counter    int64
	min, max   int64
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	serial     string
	baud       int
	printState bool
}

func main() {
	var o options
	flag.DurationVar(&o.poll, "poll", 20*time.Millisecond, "Encoder polling interval")
	flag.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO chip name")
	flag.IntVar(&o.pinCLK, "pin-clk", gpio.DefaultPinCLK, "BCM pin number for CLK (A)")
	flag.IntVar(&o.pinDT, "pin-dt", gpio.DefaultPinDT, "BCM pin number for DT (B)")
	flag.IntVar(&o.pinSW, "pin-sw", gpio.DefaultPinSW, "BCM pin number for the push switch (-1 if not wired)")
	flag.IntVar(&o.pinLED, "pin-led", gpio.DefaultPinLED, "BCM pin number for a button indicator LED (-1 if not fitted)")
	flag.Int64Var(&o.counter, "counter", 0, "Initial counter value")
	flag.Int64Var(&o.min, "min", math.MinInt64, "Lowest counter value (decrements stop here)")
	flag.Int64Var(&o.max, "max", math.MaxInt64, "Highest counter value (increments wrap to 0 past it)")
	flag.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&o.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&o.serial, "serial", "", "Serial device for status lines (empty for stdout)")
	flag.IntVar(&o.baud, "baud", 115200, "Serial baud rate")
	flag.BoolVar(&o.printState, "print-state", false, "Print current state and exit")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	lines, err := gpio.OpenLines(o.chip, o.pinCLK, o.pinDT, o.pinSW, o.pinLED)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer lines.Close()

	enc, err := newPoller(lines, o.counter, rotary.Limits[int64]{Min: o.min, Max: o.max})
	if err != nil {
		return err
	}

	if o.printState {
		_, pressed, err := enc.Poll()
		if err != nil {
			return fmt.Errorf("read encoder: %w", err)
		}
		fmt.Println(console.FormatLine(pressed, enc.Direction(), enc.Counter()))
		return nil
	}

	var w io.Writer = os.Stdout
	if o.serial != "" {
		port, err := console.OpenSerial(o.serial, o.baud)
		if err != nil {
			return err
		}
		defer port.Close()
		w = port
	}
	out := console.NewWriter(w)

	var publisher interface {
		mqtt.Publisher
		mqtt.ConnectionStatus
	} = discardPublisher{}
	if o.broker != "" {
		clientID := "rotary-encoder"
		if host, err := os.Hostname(); err == nil {
			clientID += "-" + host
		}
		p, err := mqtt.NewRealPublisher(o.broker, clientID)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = p
	}
	defer publisher.Close()

	// Tracker first so STARTUP carries a full snapshot.
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      o.poll.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Broker:      o.broker,
		HTTPAddr:    o.httpAddr,
		Serial:      o.serial,
		CounterMin:  o.min,
		CounterMax:  o.max,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else if o.broker != "" {
		log.Printf("published startup event")
	}

	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", o.httpAddr)
	}

	if err := out.WriteBanner(fmt.Sprintf("rotary encoder ready (CLK=%d DT=%d SW=%d)", o.pinCLK, o.pinDT, o.pinSW)); err != nil {
		log.Printf("console: %v", err)
	}
	log.Printf("started: poll=%v broker=%q heartbeat=%v range=[%d, %d]", o.poll, o.broker, o.heartbeat, o.min, o.max)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(enc, lines.LED, publisher, publisher, tracker, out, o.heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(enc poller, led gpio.Output, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, out *console.Writer, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	detector := logic.NewDetector(startTime)
	indicator := newIndicator(led)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				setMQTT(tracker, mqttStatus)
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			indicator.set(false)
			return nil

		case <-tick:
			t := now()
			changed, pressed, err := enc.Poll()
			if err != nil {
				// Keep heartbeats going so a dead line shows up remotely.
				log.Printf("encoder read error: %v", err)
				if tracker != nil {
					tracker.ReadFailed(err)
				}
			} else {
				indicator.set(pressed)

				events := detector.Process(logic.Input{
					Changed:   changed,
					Pressed:   pressed,
					Direction: enc.Direction(),
					Counter:   enc.Counter(),
					Time:      t,
				})

				if changed && out != nil {
					if err := out.WriteStatus(pressed, enc.Direction(), enc.Counter()); err != nil {
						log.Printf("console: %v", err)
					}
				}

				for _, event := range events {
					if err := publisher.Publish(event); err != nil {
						log.Printf("publish error: %v", err)
					}
				}
			}

			if hbData := detector.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v counter=%d cw=%d ccw=%d press=%d release=%d",
					hbData.Uptime, hbData.Counter, hbData.Counts.StepCW, hbData.Counts.StepCCW, hbData.Counts.Press, hbData.Counts.Release)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					updateTracker(tracker, detector, mqttStatus)
					hbEvent.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			if tracker != nil {
				updateTracker(tracker, detector, mqttStatus)
			}
		}
	}
}

func updateTracker(tracker *status.Tracker, detector *logic.Detector, mqttStatus mqtt.ConnectionStatus) {
	button, dir, counter := detector.CurrentState()
	tracker.Update(button, dir, counter, detector.IsBaselined(), detector.EventCountsSnapshot())
	setMQTT(tracker, mqttStatus)
}

func setMQTT(tracker *status.Tracker, mqttStatus mqtt.ConnectionStatus) {
	if mqttStatus != nil {
		tracker.SetMQTT(mqttStatus.IsConnected(), mqttStatus.Buffered())
	}
}

// discardPublisher stands in when MQTT is disabled.
type discardPublisher struct{}

func (discardPublisher) Publish(logic.Event) error { return nil }
func (discardPublisher) PublishSystem(mqtt.SystemEvent) error { return nil }
func (discardPublisher) Close() error { return nil }
func (discardPublisher) IsConnected() bool { return false }
func (discardPublisher) Buffered() int { return 0 }

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
