package tileset

import (
	"fmt"
	"slices"
)

// ChangeFunc is called after the pixels of tileID have been overwritten
// through codepoint. Returning an error stops any remaining observers from
// being notified.
type ChangeFunc func(o *Observer, tileID, codepoint int) error

// DeleteFunc is called once when an observer is detached, either explicitly
// or because its Tileset was released.
type DeleteFunc func(o *Observer)

// Observer is a subscription to tile changes on a Tileset.
type Observer struct {
	tileset  *Tileset
	onChange ChangeFunc
	onDelete DeleteFunc
}

// Attach registers a new observer on ts. Either callback may be nil.
// Observers are notified most recently attached first.
func (ts *Tileset) Attach(onChange ChangeFunc, onDelete DeleteFunc) (*Observer, error) {
	if ts == nil {
		return nil, ErrNilTileset
	}
	o := &Observer{
		tileset:  ts,
		onChange: onChange,
		onDelete: onDelete,
	}
	ts.observers = append(ts.observers, o)
	return o, nil
}

// Tileset returns the Tileset o is attached to, or nil once it has been
// detached.
func (o *Observer) Tileset() *Tileset {
	if o == nil {
		return nil
	}
	return o.tileset
}

// Detach removes o from its Tileset and calls its delete callback. It is a
// no-op if o is nil or already detached, so it is safe to call from within
// any callback.
func (o *Observer) Detach() {
	if o == nil || o.tileset == nil {
		return
	}
	ts := o.tileset
	for i, it := range ts.observers {
		if it != o {
			continue
		}
		ts.observers[i] = nil
		o.tileset = nil
		ts.compact()
		if o.onDelete != nil {
			o.onDelete(o)
		}
		return
	}
}

// notify runs every change callback against the current set of observers.
// Slots freed while a round is running stay in place until it finishes.
func (ts *Tileset) notify(tileID, codepoint int) error {
	ts.notifying++
	defer func() {
		ts.notifying--
		ts.compact()
	}()

	for i := len(ts.observers) - 1; i >= 0; i-- {
		o := ts.observers[i]
		if o == nil || o.onChange == nil {
			continue
		}
		if err := o.onChange(o, tileID, codepoint); err != nil {
			return &ObserverError{TileID: tileID, Codepoint: codepoint, Err: err}
		}
	}
	return nil
}

func (ts *Tileset) compact() {
	if ts.notifying > 0 {
		return
	}
	ts.observers = slices.DeleteFunc(ts.observers, func(o *Observer) bool {
		return o == nil
	})
}

func (ts *Tileset) lastObserver() *Observer {
	for i := len(ts.observers) - 1; i >= 0; i-- {
		if ts.observers[i] != nil {
			return ts.observers[i]
		}
	}
	return nil
}

// ObserverError is returned by SetTile when an observer rejects a change.
// The tile pixels have already been written when it is returned.
type ObserverError struct {
	TileID    int
	Codepoint int
	Err       error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("tileset: observer rejected tile %d (codepoint %d): %v", e.TileID, e.Codepoint, e.Err)
}

func (e *ObserverError) Unwrap() error {
	return e.Err
}
