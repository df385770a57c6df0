package mq

import (
	"sync"
	"time"
)

// Fixed topics published by the organizer core. Subscribers must use
// these constants, the set of topics is closed.
const (
	// TopicAttachmentCreated a new attachment received its initial folder
	TopicAttachmentCreated = "attachment.created"
	// TopicRelationshipChanged attachment↔folder relationships were mutated
	TopicRelationshipChanged = "folder.relationshipChanged"
)

// Message event body
type Message struct {
	// TriggeredBy identifier of the originating operation
	TriggeredBy string

	// Event topic name
	Event string

	// Content event payload
	Content interface{}
}

type CallbackFunc func(Message)

// MQ in-process message queue
type MQ interface {
	// Publish a message to a topic
	Publish(string, Message)

	// Subscribe to a topic, returning a channel with the given buffer size
	Subscribe(string, int) <-chan Message

	// SubscribeCallback registers a callback for a topic
	SubscribeCallback(string, CallbackFunc)

	// Unsubscribe a channel from a topic
	Unsubscribe(string, <-chan Message)
}

// GlobalMQ the default in-process queue
var GlobalMQ = NewMQ()

// NewMQ creates a new in-memory message queue
func NewMQ() MQ {
	return &inMemoryMQ{
		topics:    make(map[string][]chan Message),
		callbacks: make(map[string][]CallbackFunc),
	}
}

type inMemoryMQ struct {
	topics    map[string][]chan Message
	callbacks map[string][]CallbackFunc
	sync.RWMutex
}

func (i *inMemoryMQ) Publish(topic string, message Message) {
	i.RLock()
	subscribersChan, okChan := i.topics[topic]
	subscribersCallback, okCallback := i.callbacks[topic]
	i.RUnlock()

	if okChan {
		go func(subscribersChan []chan Message) {
			for i := 0; i < len(subscribersChan); i++ {
				select {
				case subscribersChan[i] <- message:
				case <-time.After(time.Millisecond * 500):
				}
			}
		}(subscribersChan)
	}

	if okCallback {
		for i := 0; i < len(subscribersCallback); i++ {
			go subscribersCallback[i](message)
		}
	}
}

func (i *inMemoryMQ) Subscribe(topic string, buffer int) <-chan Message {
	ch := make(chan Message, buffer)
	i.Lock()
	i.topics[topic] = append(i.topics[topic], ch)
	i.Unlock()
	return ch
}

func (i *inMemoryMQ) SubscribeCallback(topic string, callbackFunc CallbackFunc) {
	i.Lock()
	i.callbacks[topic] = append(i.callbacks[topic], callbackFunc)
	i.Unlock()
}

func (i *inMemoryMQ) Unsubscribe(topic string, sub <-chan Message) {
	i.Lock()
	defer i.Unlock()

	subscribers, ok := i.topics[topic]
	if !ok {
		return
	}

	var newSubs []chan Message
	for _, subscriber := range subscribers {
		if subscriber == sub {
			continue
		}
		newSubs = append(newSubs, subscriber)
	}

	i.topics[topic] = newSubs
}
