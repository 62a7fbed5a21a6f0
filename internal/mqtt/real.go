package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// bufferCapacity bounds how many messages are held while disconnected.
const bufferCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages that cannot
// be delivered while the connection is down are buffered and replayed on
// reconnect, oldest first.
type RealPublisher struct {
	client paho.Client

	mu     sync.Mutex
	buffer *ringBuffer
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{
		buffer: newRingBuffer(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("ups-trap-monitor").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			p.drainBuffer()
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// Publish sends a classified alarm event to the MQTT broker.
func (p *RealPublisher) Publish(event AlarmEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 1 (at-least-once), not retained
	return p.send(Topic, 1, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	return p.send(TopicSystem, 1, event.Retained, payload)
}

// send delivers one message, buffering it if the connection is down or
// the publish fails.
func (p *RealPublisher) send(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.bufferMsg(topic, qos, retained, payload)
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		p.bufferMsg(topic, qos, retained, payload)
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		p.bufferMsg(topic, qos, retained, payload)
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

func (p *RealPublisher) bufferMsg(topic string, qos byte, retained bool, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
}

// drainBuffer replays buffered messages after a reconnect.
func (p *RealPublisher) drainBuffer() {
	p.mu.Lock()
	msgs := p.buffer.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}

	log.Printf("mqtt: replaying %d buffered messages", len(msgs))
	for _, m := range msgs {
		token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout, message dropped")
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
		}
	}
}

// IsConnected reports whether the MQTT connection is active.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
