package model

// ProviderType is the transport channel a message travels over.
type ProviderType string

const (
	ProviderTypeSMS   ProviderType = "sms"
	ProviderTypeEmail ProviderType = "email"
)

func (p ProviderType) Valid() bool {
	return p == ProviderTypeSMS || p == ProviderTypeEmail
}

// MessageType is the content format of a message.
type MessageType string

const (
	MessageTypeSMS   MessageType = "sms"
	MessageTypeMMS   MessageType = "mms"
	MessageTypeEmail MessageType = "email"
)

func (m MessageType) Valid() bool {
	return m == MessageTypeSMS || m == MessageTypeMMS || m == MessageTypeEmail
}

// Direction tells whether a message was received from a provider or sent by us.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// MessageStatus is the delivery lifecycle state: pending -> sent -> delivered -> failed.
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusPending, MessageStatusSent, MessageStatusDelivered, MessageStatusFailed:
		return true
	}
	return false
}
