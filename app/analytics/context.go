package analytics

import "context"

type trackingContextKeyType string

const trackingContextKey trackingContextKeyType = "tracking context"

// ContextWithTrackingProps returns a context whose logs and events carry props
// in addition to the props already stored in ctx.
func ContextWithTrackingProps(ctx context.Context, props map[string]interface{}) context.Context {
	merged := map[string]interface{}{}
	for k, v := range getTrackingProps(ctx) {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}

	return context.WithValue(ctx, trackingContextKey, merged)
}

func getTrackingProps(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return map[string]interface{}{}
	}

	props, ok := ctx.Value(trackingContextKey).(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}

	return props
}

type eventPropsKeyType string

func eventPropsKey(eventName EventName) eventPropsKeyType {
	return eventPropsKeyType(eventName)
}

func ContextWithEventPropsCollector(ctx context.Context, name EventName) context.Context {
	return context.WithValue(ctx, eventPropsKey(name), map[string]interface{}{})
}

func SaveEventProp(ctx context.Context, name EventName, key string, value interface{}) {
	props, ok := ctx.Value(eventPropsKey(name)).(map[string]interface{})
	if !ok {
		return
	}

	props[key] = value
}

func SaveEventProps(ctx context.Context, name EventName, props map[string]interface{}) {
	for k, v := range props {
		SaveEventProp(ctx, name, k, v)
	}
}

func getEventProps(ctx context.Context, name EventName) map[string]interface{} {
	props, ok := ctx.Value(eventPropsKey(name)).(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}

	return props
}
