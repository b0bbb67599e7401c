package analytics

import (
	"context"
	"sync"

	"github.com/dukex/mixpanel"
	"github.com/savaki/amplitude-go"
	log "github.com/sirupsen/logrus"
)

type EventName string

const EventSubmissionEvaluated EventName = "Submission evaluated"

type Tracker interface {
	Track(ctx context.Context, event EventName)
}

type Settings struct {
	MixpanelToken   string
	AmplitudeAPIKey string
}

var (
	settings     Settings
	clientsOnce  sync.Once
	amplitudeCli *amplitude.Client
	mixpanelCli  mixpanel.Mixpanel
)

// Setup must be called before the first Track, later calls are ignored by clients.
func Setup(s Settings) {
	settings = s
}

func initClients() {
	clientsOnce.Do(func() {
		if settings.AmplitudeAPIKey != "" {
			amplitudeCli = amplitude.New(settings.AmplitudeAPIKey)
		}
		if settings.MixpanelToken != "" {
			mixpanelCli = mixpanel.New(settings.MixpanelToken, "")
		}
	})
}

func getAmplitudeClient() *amplitude.Client {
	initClients()
	return amplitudeCli
}

func getMixpanelClient() mixpanel.Mixpanel {
	initClients()
	return mixpanelCli
}

type amplitudeMixpanelTracker struct{}

func GetTracker(_ context.Context) Tracker {
	return amplitudeMixpanelTracker{}
}

func (t amplitudeMixpanelTracker) Track(ctx context.Context, eventName EventName) {
	trackingProps := getTrackingProps(ctx)
	userID, _ := trackingProps["submitter"].(string)

	eventProps := map[string]interface{}{}
	for k, v := range trackingProps {
		if k != "submitter" {
			eventProps[k] = v
		}
	}

	for k, v := range getEventProps(ctx, eventName) {
		eventProps[k] = v
	}
	log.Debugf("track event %s with props %+v", eventName, eventProps)

	ac := getAmplitudeClient()
	if ac != nil {
		ac.Publish(amplitude.Event{
			UserId:          userID,
			EventType:       string(eventName),
			EventProperties: eventProps,
		})
	}

	mp := getMixpanelClient()
	if mp != nil {
		const ip = "0" // don't auto-detect
		if err := mp.Track(userID, string(eventName), &mixpanel.Event{
			IP:         ip,
			Properties: eventProps,
		}); err != nil {
			log.Warnf("Can't track mixpanel event %s: %s", eventName, err)
		}
	}
}
