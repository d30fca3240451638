package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/rotary-encoder/internal/logic"
)

// bufferCapacity bounds how many messages are kept while offline.
const bufferCapacity = 256

// client is the part of paho.Client the publisher uses.
type client interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// RealPublisher publishes to an actual MQTT broker.
// Messages published while disconnected are buffered and replayed on
// reconnect, ahead of anything published after the reconnect.
type RealPublisher struct {
	client client

	mu        sync.Mutex
	buf       *ringBuffer
	replaying bool
}

// NewRealPublisher creates a publisher for the given broker. A broker that is
// not reachable yet is not an error: the client keeps retrying in the
// background and events are buffered meanwhile.
func NewRealPublisher(broker, clientID string) (*RealPublisher, error) {
	p := &RealPublisher{buf: newRingBuffer(bufferCapacity)}

	will, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "MQTT_DISCONNECT",
	})
	if err != nil {
		return nil, fmt.Errorf("format will payload: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetBinaryWill(TopicSystem, will, 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c := paho.NewClient(opts)
	p.client = c
	token := c.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		log.Printf("mqtt: broker %s not reachable yet, buffering events", broker)
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// onConnect replays anything buffered while the connection was down.
func (p *RealPublisher) onConnect(paho.Client) {
	p.replay()
}

// replay publishes buffered messages oldest first. New messages keep going
// to the buffer until it is empty, so they cannot overtake older ones.
func (p *RealPublisher) replay() {
	p.mu.Lock()
	if p.replaying {
		p.mu.Unlock()
		return
	}
	p.replaying = true
	for {
		msgs, dropped := p.buf.drainAll()
		if len(msgs) == 0 {
			p.replaying = false
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		log.Printf("mqtt: connected, replaying %d buffered messages (%d dropped)", len(msgs), dropped)
		for _, m := range msgs {
			if err := p.publish(m.topic, m.qos, m.retained, m.payload); err != nil {
				log.Printf("mqtt: replay failed: %v", err)
			}
		}
		p.mu.Lock()
	}
}

func (p *RealPublisher) send(topic string, qos byte, retained bool, payload []byte) error {
	p.mu.Lock()
	if p.replaying || !p.client.IsConnectionOpen() {
		p.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	return p.publish(topic, qos, retained, payload)
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Publish sends an encoder event to the MQTT broker.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	return p.send(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) so lifecycle events are not lost
	return p.send(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the broker connection is currently up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Buffered returns the number of messages waiting for a connection.
func (p *RealPublisher) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.len()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
