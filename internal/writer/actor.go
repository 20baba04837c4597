// Package writer implements the writer actor: a single goroutine owning a
// buffered channel of messages that serializes every vertex and edge to
// NDJSON, the only concurrency this module exposes (spec §5).
package writer

import (
	"bufio"
	"io"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"

	"github.com/sourcegraph/lsif-link/log"
	"github.com/sourcegraph/lsif-link/protocol"
)

var marshaller = jsoniter.ConfigFastest

// writerBufferSize is the size of the buffered writer wrapping the
// underlying output stream.
const writerBufferSize = 4096

// channelBufferSize is the number of queued write messages the actor will
// buffer before a caller's Write blocks.
const channelBufferSize = 512

type messageKind int

const (
	msgWrite messageKind = iota
	msgFlush
	msgClose
)

type message struct {
	kind  messageKind
	value interface{}
	reply chan error
	corr  uint64
}

// Actor serializes elements to an underlying writer from a single owning
// goroutine. Write is fire-and-forget; Flush and Close block for a reply
// correlated to their own call so replies can never cross.
type Actor struct {
	ch      chan message
	done    chan struct{}
	corrSeq uint64
}

// NewActor starts the writer actor's goroutine, encoding through w.
func NewActor(w io.Writer) *Actor {
	bufferedWriter := bufio.NewWriterSize(w, writerBufferSize)
	encoder := marshaller.NewEncoder(bufferedWriter)

	a := &Actor{
		ch:   make(chan message, channelBufferSize),
		done: make(chan struct{}),
	}

	go a.run(bufferedWriter, encoder)

	return a
}

func (a *Actor) run(bufferedWriter *bufio.Writer, encoder *jsoniter.Encoder) {
	defer close(a.done)

	var err error
	for m := range a.ch {
		if err != nil {
			if m.reply != nil {
				m.reply <- err
			}
			continue
		}

		switch m.kind {
		case msgWrite:
			if encodeErr := encoder.Encode(m.value); encodeErr != nil {
				log.Debugf("writer actor: encode failed for message %d: %v", m.corr, encodeErr)
				err = encodeErr
			}
		case msgFlush:
			if flushErr := bufferedWriter.Flush(); flushErr != nil {
				log.Debugf("writer actor: flush failed for message %d: %v", m.corr, flushErr)
				err = flushErr
			}
			m.reply <- err
		case msgClose:
			if err == nil {
				err = bufferedWriter.Flush()
			}
			m.reply <- err
			return
		}
	}
}

// Write queues v for serialization. It never blocks on the encode itself,
// only on channel capacity.
func (a *Actor) Write(v interface{}) error {
	a.ch <- message{kind: msgWrite, value: v, corr: atomic.AddUint64(&a.corrSeq, 1)}
	return nil
}

// Flush blocks until every previously queued write has been encoded and the
// underlying buffered writer has been flushed.
func (a *Actor) Flush() error {
	reply := make(chan error, 1)
	a.ch <- message{kind: msgFlush, reply: reply, corr: atomic.AddUint64(&a.corrSeq, 1)}
	return <-reply
}

// Close flushes and stops the actor's goroutine. The Actor must not be used
// afterward.
func (a *Actor) Close() error {
	reply := make(chan error, 1)
	a.ch <- message{kind: msgClose, reply: reply, corr: atomic.AddUint64(&a.corrSeq, 1)}
	err := <-reply
	close(a.ch)
	<-a.done
	return err
}

var _ protocol.JSONWriter = (*Actor)(nil)
