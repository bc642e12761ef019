package hotkeys

// Dispatcher turns bus events into commands.
type Dispatcher struct {
	keymap Keymap
	handle func(Command)
}

// NewDispatcher returns a dispatcher that calls handle for every bound key.
func NewDispatcher(keymap Keymap, handle func(Command)) *Dispatcher {
	return &Dispatcher{keymap: keymap, handle: handle}
}

// Attach starts listening on bus. Call the returned func when the owning view
// goes away; after it returns the dispatcher has no further effect.
func (d *Dispatcher) Attach(bus *Bus) (detach func()) {
	return bus.Subscribe(d.onKey)
}

func (d *Dispatcher) onKey(ev KeyEvent) bool {
	cmd, ok := d.keymap.Lookup(ev)
	if !ok {
		return false
	}
	d.handle(cmd)
	return true
}
