// Package notify pushes reload notices to paired display devices over MQTT.
// Displays subscribe to their own command topic when they come online;
// publishing there wakes devices whose websocket connection is down (standby,
// flaky venue networks) so they re-sync on power-on.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const broadcastTopic = "displays/all/commands"

type reloadCommand struct {
	Command      string    `json:"command"`
	SlideshowIDs []int     `json:"slideshow_ids,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// MQTTNotifier satisfies live.Notifier.
type MQTTNotifier struct {
	client mqtt.Client
}

func NewMQTTNotifier(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTNotifier{client: client}, nil
}

// NotifyContentChanged publishes a reload command to all listening displays.
func (n *MQTTNotifier) NotifyContentChanged(slideshowIDs []int) {
	payload, err := json.Marshal(reloadCommand{
		Command:      "reload",
		SlideshowIDs: slideshowIDs,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal reload command failed")
		return
	}

	token := n.client.Publish(broadcastTopic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Msg("failed to publish reload command")
		return
	}
	log.Debug().Ints("slideshow_ids", slideshowIDs).Msg("reload command published")
}

// NotifyDevice publishes a reload command to one device's topic.
func (n *MQTTNotifier) NotifyDevice(deviceID string) error {
	payload, err := json.Marshal(reloadCommand{Command: "reload", Timestamp: time.Now()})
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("displays/%s/commands", deviceID)
	token := n.client.Publish(topic, 1, false, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
