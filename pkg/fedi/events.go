package fedi

import (
	"encoding/json"
	"fmt"
)

// Event names sent by the streaming API.
const (
	EventUpdate         = "update"
	EventNotification   = "notification"
	EventDelete         = "delete"
	EventStatusUpdate   = "status.update"
	EventConversation   = "conversation"
	EventFiltersChanged = "filters_changed"
)

// DecodeUpdate parses the payload of an "update" or "status.update" frame.
func DecodeUpdate(frame EventFrame) (*Status, error) {
	var status Status

	err := json.Unmarshal([]byte(frame.Payload), &status)
	if err != nil {
		return nil, fmt.Errorf("parsing update event: %w", err)
	}

	return &status, nil
}

// DecodeNotification parses the payload of a "notification" frame.
func DecodeNotification(frame EventFrame) (*Notification, error) {
	var notification Notification

	err := json.Unmarshal([]byte(frame.Payload), &notification)
	if err != nil {
		return nil, fmt.Errorf("parsing notification event: %w", err)
	}

	return &notification, nil
}

// DecodeConversation parses the payload of a "conversation" frame.
func DecodeConversation(frame EventFrame) (*Conversation, error) {
	var conversation Conversation

	err := json.Unmarshal([]byte(frame.Payload), &conversation)
	if err != nil {
		return nil, fmt.Errorf("parsing conversation event: %w", err)
	}

	return &conversation, nil
}

// DecodeDelete returns the status ID carried by a "delete" frame. The
// payload is the bare ID, not JSON.
func DecodeDelete(frame EventFrame) string {
	return frame.Payload
}
