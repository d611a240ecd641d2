package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/models"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	DefaultTopic   = "irrigation"
	DefaultTimeout = 3 * time.Second

	qosAtMostOnce  byte = 0
	qosAtLeastOnce byte = 1
)

var ErrTimeout = errors.New("mqtt: timed out")

// client is the part of paho.Client the publisher uses.
type client interface {
	Connect() paho.Token
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// Options configure the broker connection. Broker is a URL such as tcp://host:1883.
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	Timeout  time.Duration
}

// Publisher mirrors panel snapshots (retained) and notifications onto an MQTT broker.
type Publisher struct {
	client  client
	topic   string
	timeout time.Duration
	log     *logger.Logger

	last []byte
}

func NewPublisher(opts Options, log *logger.Logger) *Publisher {
	if opts.ClientID == "" {
		opts.ClientID = fmt.Sprintf("%v%v", path.Base(os.Args[0]), os.Getpid())
	}
	po := paho.NewClientOptions()
	po.AddBroker(opts.Broker)
	po.SetClientID(opts.ClientID)
	po.SetUsername(opts.Username)
	po.SetPassword(opts.Password)
	po.SetAutoReconnect(true)
	po.SetConnectRetry(true)
	return newPublisher(paho.NewClient(po), opts, log)
}

func newPublisher(c client, opts Options, log *logger.Logger) *Publisher {
	topic := strings.Trim(opts.Topic, "/")
	if topic == "" {
		topic = DefaultTopic
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Publisher{client: c, topic: topic, timeout: timeout, log: log}
}

func StateTopic(prefix string) string        { return prefix + "/state" }
func NotificationTopic(prefix string) string { return prefix + "/notifications" }

// Connect dials the broker, waiting at most the configured timeout.
func (p *Publisher) Connect() error {
	if p.client.IsConnected() {
		return nil
	}
	if err := p.wait(p.client.Connect()); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	if p.log != nil {
		p.log.Infow("mqtt_connected", "topic", p.topic)
	}
	return nil
}

// PublishSnapshot publishes s as the retained state message. Unchanged
// snapshots are skipped.
func (p *Publisher) PublishSnapshot(s models.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if bytes.Equal(payload, p.last) {
		return nil
	}
	if err := p.wait(p.client.Publish(StateTopic(p.topic), qosAtLeastOnce, true, payload)); err != nil {
		return fmt.Errorf("mqtt publish state: %w", err)
	}
	p.last = payload
	return nil
}

// Notify forwards a notification without waiting for the broker.
func (p *Publisher) Notify(n models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	token := p.client.Publish(NotificationTopic(p.topic), qosAtMostOnce, false, payload)
	go func() {
		if err := p.wait(token); err != nil && p.log != nil {
			p.log.Errorw("mqtt_notify_failed", "err", err)
		}
	}()
}

// Run publishes the snapshot returned by source every interval until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context, interval time.Duration, source func() models.Snapshot) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := p.PublishSnapshot(source()); err != nil && p.log != nil {
			p.log.Errorw("mqtt_publish_failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250 /* milliseconds */)
	}
}

func (p *Publisher) wait(t paho.Token) error {
	if !t.WaitTimeout(p.timeout) {
		return ErrTimeout
	}
	return t.Error()
}
