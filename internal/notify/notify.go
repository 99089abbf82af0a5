package notify

import (
	"context"
	"log"
	"time"
)

// Channel identifies an outbound delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Message is one rendered notification ready for delivery.
type Message struct {
	Channel   Channel
	Recipient string
	Subject   string
	Body      string
}

// Sender delivers messages on one channel.
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, msg Message) error
}

const sendTimeout = 10 * time.Second

// Dispatcher renders and delivers lifecycle notifications off the request
// path. Enqueueing never blocks and delivery failures are logged, never
// surfaced to the caller.
type Dispatcher struct {
	senders map[Channel]Sender
	queue   chan Message
	done    chan struct{}
}

// NewDispatcher creates a dispatcher and starts its delivery worker.
func NewDispatcher(senders ...Sender) *Dispatcher {
	d := &Dispatcher{
		senders: make(map[Channel]Sender, len(senders)),
		queue:   make(chan Message, 100),
		done:    make(chan struct{}),
	}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	go d.worker()
	return d
}

// worker drains the queue until Close.
func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		sender, ok := d.senders[msg.Channel]
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := sender.Send(ctx, msg); err != nil {
			log.Printf("notify: %s delivery to %s failed: %v", msg.Channel, msg.Recipient, err)
		}
		cancel()
	}
}

// Close stops the worker after draining queued messages.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// enqueue hands a message to the worker without blocking; when the buffer is
// full the message is dropped with a log line.
func (d *Dispatcher) enqueue(msg Message) {
	if msg.Recipient == "" {
		return
	}
	select {
	case d.queue <- msg:
	default:
		log.Printf("notify: queue full, dropping %s notification for %s", msg.Channel, msg.Recipient)
	}
}

// NotifyEntry queues the entry confirmation for whichever contact details the
// owner provided.
func (d *Dispatcher) NotifyEntry(data EntryData, email, phone string) {
	subject, html := RenderEntryEmail(data)
	d.enqueue(Message{Channel: ChannelEmail, Recipient: email, Subject: subject, Body: html})
	d.enqueue(Message{Channel: ChannelSMS, Recipient: phone, Body: RenderEntrySMS(data)})
}

// NotifyExit queues the exit receipt.
func (d *Dispatcher) NotifyExit(data ExitData, email, phone string) {
	subject, html := RenderExitEmail(data)
	d.enqueue(Message{Channel: ChannelEmail, Recipient: email, Subject: subject, Body: html})
	d.enqueue(Message{Channel: ChannelSMS, Recipient: phone, Body: RenderExitSMS(data)})
}
