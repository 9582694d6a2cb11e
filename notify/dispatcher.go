package notify

import "github.com/GitShailendra/HackOnX-sub001/logging"

// Dispatcher decouples notification delivery from the request cycle: Dispatch
// never blocks and never reports failure to the caller. A full queue or a
// failed send is logged and the message is dropped, there is no retry.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
}

func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, buffer),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.sender.Send(msg); err != nil {
			logging.Log.Errorf("NOTIFY: failed to send %s to %s: %v", msg.Kind, msg.Recipient, err)
			continue
		}
		logging.Log.Infof("NOTIFY: sent %s to %s", msg.Kind, msg.Recipient)
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		logging.Log.Warnf("NOTIFY: queue full, dropping %s to %s", msg.Kind, msg.Recipient)
	}
}

// Close drains the queue and stops the worker. Only used on shutdown and in
// tests; in-flight messages are still delivered.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
