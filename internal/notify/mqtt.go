package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/model"
)

const notificationTopic = "miqat/notifications"

// MQTTSink publishes notifications to the broker topic subscribed by
// display clients. Permission mirrors broker connectivity: default until
// a connection is attempted, granted while connected, denied after a
// failed connect.
type MQTTSink struct {
	mu         sync.RWMutex
	client     mqtt.Client
	permission model.Permission
}

var _ Sink = (*MQTTSink)(nil)

// connection handlers

func onConnect(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

func onConnectionLost(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTSink connects to the broker. A failed connect is not fatal: the
// sink is returned in the denied state and every Notify reports the
// failure without crashing the scheduler.
func NewMQTTSink(brokerURL, clientID string) *MQTTSink {
	s := &MQTTSink{permission: model.PermissionDefault}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = onConnect
	opts.OnConnectionLost = onConnectionLost

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("broker", brokerURL).Msg("failed to connect to MQTT broker")
		s.setPermission(model.PermissionDenied)
		return s
	}

	s.setPermission(model.PermissionGranted)
	return s
}

func (s *MQTTSink) setPermission(p model.Permission) {
	s.mu.Lock()
	s.permission = p
	s.mu.Unlock()
}

func (s *MQTTSink) Permission() model.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permission
}

func (s *MQTTSink) Notify(ctx context.Context, n Notification) error {
	if n.DismissAfterSeconds == 0 {
		n.DismissAfterSeconds = DismissAfter
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	token := s.client.Publish(notificationTopic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		s.setPermission(model.PermissionDenied)
		return fmt.Errorf("publish notification: %w", token.Error())
	}

	s.setPermission(model.PermissionGranted)
	return nil
}

// Close disconnects from the broker, allowing in-flight messages 250ms
// to drain.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
