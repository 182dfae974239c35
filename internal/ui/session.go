package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"accessnav/internal/config"
	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/logic"
	"accessnav/internal/speech"
	"accessnav/internal/ui/input"
	"accessnav/internal/ui/input/modes"
	"accessnav/internal/ui/input/types"
	uilogic "accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/cursor"
	"accessnav/internal/ui/services/events"
	"accessnav/internal/ui/services/sorting"
	"accessnav/internal/ui/state"
)

// Surface names
const (
	SurfaceConfirm   = "Confirm"
	SurfaceQuantity  = "Fuel"
	SurfaceArea      = "Area"
	SurfaceDetails   = "Details"
	SurfaceInventory = "Inventory"
)

// Surface priorities, lowest runs first
const (
	priorityConfirm   = 5
	priorityQuantity  = 10
	priorityArea      = 20
	priorityDetails   = 30
	priorityInventory = 40
)

// speechTicks is how many ticks an utterance stays current
const speechTicks = 12

// Command is what the host must do after a key press
type Command int

const (
	CommandNone       Command = iota // key was not used
	CommandHandled                   // key was consumed, nothing else to do
	CommandQuit                      // stop the program
	CommandHelp                      // toggle the help popup
	CommandTranscript                // show the speech history
	CommandCopy                      // copy the last announcement
)

// Session is the input core wired to a demo world: a map with a roaming
// cursor and a small item catalog. It does not depend on a terminal, so
// the TUI and the headless runner share it.
type Session struct {
	cfg   *config.Config
	bus   eventbus.EventBus
	uiBus *events.Bus
	keys  HostKeyMap

	state     *state.AppState
	store     logic.ItemStore
	queue     *speech.Queue
	announcer speech.Announcer

	registry   *input.Registry
	dispatcher *input.Handler
	suppressor *input.Suppressor
	ctx        *input.ModelContext
	cursor     *cursor.Service
	sorter     *sorting.Service

	inventory *modes.ListMode
	details   *modes.DetailMode
	area      *modes.AreaSelectMode
	confirm   *modes.ConfirmMode
	quantity  *modes.QuantityMode

	pending   Command // set by global rules during dispatch
	delivered Command // outcome of the last Deliver
	lastStep  cursor.Step
	spokenFor int
	current   speech.Utterance
}

// NewSession builds the surfaces and the dispatcher from cfg. Extra
// announcers receive everything the output device does.
func NewSession(cfg *config.Config, bus eventbus.EventBus, extra ...speech.Announcer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	store, err := logic.NewMemoryItemStore(ItemsFromConfig(cfg.Items)...)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		bus:      bus,
		uiBus:    events.NewBus(),
		keys:     DefaultHostKeyMap(),
		store:    store,
		queue:    speech.NewQueue(cfg.Speech.HistorySize),
		registry: input.NewRegistry(),
		lastStep: cursor.East,
	}
	s.sorter = sorting.NewService(s.uiBus)
	s.uiBus.Subscribe(events.TypeName(sorting.OrderChangedEvent{}), func(interface{}) {
		s.syncItems()
	})
	s.state = state.NewAppState(s.sorter.Sort(store.All()), domain.Bounds{Width: cfg.Map.Width, Height: cfg.Map.Height})
	s.ctx = &input.ModelContext{State: s.state}

	announcers := []speech.Announcer{s.queue, speech.LogAnnouncer{}}
	s.announcer = speech.Multi(append(announcers, extra...)...)

	opts := modes.Options{
		Announcer:          s.announcer,
		UIBus:              s.uiBus,
		AnnouncePositions:  cfg.Speech.AnnouncePositions,
		AnnounceBoundaries: cfg.Speech.AnnounceBoundaries,
	}
	dispatchOpts := []input.Option{
		input.WithCatchAll(cfg.Input.CatchAll),
		input.WithDeliveryGuard(cfg.Input.DeliveryGuard),
	}
	if bus != nil {
		opts.Bus = bus
		dispatchOpts = append(dispatchOpts, input.WithEventBus(bus))
	}

	items := func() []domain.Item { return s.state.Items }
	s.inventory = modes.NewListMode(SurfaceInventory, items, opts)
	s.inventory.SetActivateFunction(s.holdItem)
	s.details = modes.NewDetailMode(SurfaceDetails, items, opts)
	s.details.SetButtonFunction(s.pressButton)
	s.area = modes.NewAreaSelectMode(SurfaceArea, s.ctx, opts)
	s.area.SetDoneFunction(s.pickCells)
	s.confirm = modes.NewConfirmMode(SurfaceConfirm, opts)
	s.quantity = modes.NewQuantityMode(SurfaceQuantity, opts)

	// Parents first, children must sort before the surface they open from
	for _, r := range []struct {
		surface  types.Surface
		priority int
		parent   string
	}{
		{s.inventory, priorityInventory, ""},
		{s.details, priorityDetails, ""},
		{s.area, priorityArea, ""},
		{s.confirm, priorityConfirm, SurfaceDetails},
		{s.quantity, priorityQuantity, SurfaceDetails},
	} {
		if err := s.registry.Register(r.surface, r.priority, r.parent); err != nil {
			return nil, err
		}
	}

	s.suppressor = input.NewSuppressor(s.registry)
	s.cursor = cursor.NewService(s.ctx, s.suppressor, s.announcer, s.uiBus)
	s.dispatcher = input.New(s.registry, s.announcer, dispatchOpts...)
	if err := s.addGlobalRules(); err != nil {
		return nil, err
	}

	log.Printf("Input: %d surfaces, rules %v", s.registry.Len(), s.dispatcher.Rules())
	return s, nil
}

// ItemsFromConfig converts catalog entries, deriving missing ids from labels
func ItemsFromConfig(entries []config.ItemConfig) []domain.Item {
	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = strings.ReplaceAll(uilogic.Fold(e.Label), " ", "-")
		}
		items = append(items, domain.Item{
			ID:      id,
			Label:   e.Label,
			Lines:   append([]string(nil), e.Lines...),
			Buttons: append([]string(nil), e.Buttons...),
		})
	}
	return items
}

// addGlobalRules installs the keys that work regardless of the open surface.
// They run before every surface.
func (s *Session) addGlobalRules() error {
	rules := []input.Rule{
		{Name: "force-quit", Handle: s.command(s.keys.ForceQuit, CommandQuit)},
		{Name: "transcript", Handle: s.command(s.keys.Transcript, CommandTranscript)},
		{Name: "copy", Handle: s.command(s.keys.Copy, CommandCopy)},
		{Name: "repeat", Handle: func(ev types.Event) bool {
			if !key.Matches(ev, s.keys.Repeat) {
				return false
			}
			s.Repeat()
			return true
		}},
		{Name: "where-am-i", Handle: func(ev types.Event) bool {
			if !key.Matches(ev, s.keys.WhereAmI) {
				return false
			}
			s.WhereAmI()
			return true
		}},
		{Name: "override", Handle: func(ev types.Event) bool {
			if !key.Matches(ev, s.keys.Override) {
				return false
			}
			s.toggleOverride()
			return true
		}},
	}
	for _, r := range rules {
		if err := s.dispatcher.AddRule(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) command(b key.Binding, c Command) func(types.Event) bool {
	return func(ev types.Event) bool {
		if !key.Matches(ev, b) {
			return false
		}
		s.pending = c
		return true
	}
}

// Press offers ev to the surfaces, then to the host keys. Every call is a
// separate key press.
func (s *Session) Press(ev types.Event) Command {
	s.pending = CommandNone
	return s.route(s.dispatcher.Dispatch(ev), ev)
}

// Deliver is Press for event pumps that may hand over the same delivery
// twice. A repeated id returns the first command and changes nothing.
func (s *Session) Deliver(id uint64, ev types.Event) Command {
	s.pending = CommandNone
	consumed, fresh := s.dispatcher.DispatchDelivery(id, ev)
	if !fresh {
		return s.delivered
	}
	s.delivered = s.route(consumed, ev)
	return s.delivered
}

func (s *Session) route(consumed bool, ev types.Event) Command {
	if consumed {
		if s.pending != CommandNone {
			return s.pending
		}
		return CommandHandled
	}
	return s.hostKey(ev)
}

func (s *Session) hostKey(ev types.Event) Command {
	switch {
	case key.Matches(ev, s.keys.Up):
		s.step(cursor.North)
	case key.Matches(ev, s.keys.Down):
		s.step(cursor.South)
	case key.Matches(ev, s.keys.Left):
		s.step(cursor.West)
	case key.Matches(ev, s.keys.Right):
		s.step(cursor.East)
	case key.Matches(ev, s.keys.Walk):
		s.toggleWalk()
	case key.Matches(ev, s.keys.Inventory):
		s.inventory.Open()
	case key.Matches(ev, s.keys.Details):
		s.details.Open()
	case key.Matches(ev, s.keys.Area):
		s.area.Open()
	case key.Matches(ev, s.keys.Order):
		s.speak("Sorted by "+s.sorter.Next().String(), domain.PriorityNormal)
	case key.Matches(ev, s.keys.Help):
		return CommandHelp
	case key.Matches(ev, s.keys.Quit):
		return CommandQuit
	default:
		return CommandNone
	}
	return CommandHandled
}

func (s *Session) step(step cursor.Step) {
	s.lastStep = step
	if s.cursor.Move(step) == cursor.Moved {
		s.state.LastError = ""
	}
}

func (s *Session) toggleWalk() {
	if _, walking := s.cursor.Walking(); walking {
		s.cursor.SetWalk(cursor.Step{})
		s.speak("Stopped", domain.PriorityNormal)
		return
	}
	s.cursor.SetWalk(s.lastStep)
	s.speak("Walking", domain.PriorityNormal)
}

func (s *Session) toggleOverride() {
	on := !s.suppressor.Override()
	s.suppressor.SetOverride(on)
	if on {
		s.speak("Cursor frozen", domain.PriorityHigh)
	} else {
		s.speak("Cursor released", domain.PriorityHigh)
	}
}

// Tick advances one frame: the walking cursor steps and speech ages
func (s *Session) Tick() {
	s.state.Frame++
	s.cursor.Tick(s.state.Frame)

	u, ok := s.queue.Current()
	if !ok {
		s.spokenFor = 0
		return
	}
	if u != s.current {
		s.current = u
		s.spokenFor = 0
	}
	s.spokenFor++
	if s.spokenFor >= speechTicks {
		s.queue.Finish()
		s.spokenFor = 0
	}
}

// Repeat speaks the last announcement again
func (s *Session) Repeat() {
	u, ok := s.queue.Last()
	if !ok {
		s.speak("Nothing to repeat", domain.PriorityNormal)
		return
	}
	s.speak(u.Text, domain.PriorityHigh)
}

// WhereAmI names the open surfaces, outermost first, and the focused row.
// With nothing open it speaks the cursor cell.
func (s *Session) WhereAmI() {
	chain := s.registry.ActiveChain()
	if len(chain) == 0 {
		s.cursor.WhereAmI()
		return
	}
	names := make([]string, len(chain))
	for i, sf := range chain {
		names[i] = sf.Name()
	}
	text := strings.Join(names, ", then ")
	if nav, ok := chain[len(chain)-1].(types.Navigable); ok {
		if a := nav.Announcement(); a != "" {
			text += ". " + a
		}
	}
	s.speak(text, domain.PriorityNormal)
}

// Focus names the open surfaces, outermost first, or "map"
func (s *Session) Focus() string {
	chain := s.registry.ActiveChain()
	if len(chain) == 0 {
		return "map"
	}
	names := make([]string, len(chain))
	for i, sf := range chain {
		names[i] = sf.Name()
	}
	return strings.Join(names, " > ")
}

// LastAnnouncement returns the most recent announcement text
func (s *Session) LastAnnouncement() (string, bool) {
	u, ok := s.queue.Last()
	return u.Text, ok
}

// Speaking returns the utterance the output device is on
func (s *Session) Speaking() (speech.Utterance, bool) {
	return s.queue.Current()
}

// History returns the speech transcript
func (s *Session) History() []speech.Utterance {
	return s.queue.History()
}

// State returns the host state
func (s *Session) State() *state.AppState {
	return s.state
}

// Keys returns the host bindings
func (s *Session) Keys() HostKeyMap {
	return s.keys
}

// Top returns the focused surface
func (s *Session) Top() (types.Surface, bool) {
	return s.registry.Top()
}

// Suppressed reports whether background input stands down
func (s *Session) Suppressed() bool {
	return s.suppressor.IsSuppressed()
}

// Walking reports whether the cursor walks on its own
func (s *Session) Walking() bool {
	_, walking := s.cursor.Walking()
	return walking
}

func (s *Session) speak(text string, priority domain.Priority) {
	s.announcer.Speak(text, priority)
}

func (s *Session) syncItems() {
	s.state.Items = s.sorter.Sort(s.store.All())
}

func (s *Session) holdItem(item domain.Item) {
	s.state.LastCommand = item.Label
	s.state.SetStatus("Holding " + item.Label)
	s.speak("Holding "+item.Label, domain.PriorityNormal)
}

func (s *Session) pickCells(cells []domain.Point) {
	s.state.SetPicked(cells)
	s.state.SetStatus(fmt.Sprintf("%d cells picked", len(cells)))
}

// pressButton runs the demo behavior of an item button
func (s *Session) pressButton(item domain.Item, button string) {
	s.state.LastCommand = item.Label + ": " + button
	switch button {
	case "Release":
		s.confirm.Ask(fmt.Sprintf("Release %s?", item.Label), s.details, func() {
			s.store.Remove(item.ID)
			s.syncItems()
			s.details.BackToList()
			s.state.SetStatus(item.Label + " released")
			s.speak(item.Label+" released", domain.PriorityNormal)
		}, nil)
	case "Forbid", "Allow":
		next, said := "Allow", "forbidden"
		if button == "Allow" {
			next, said = "Forbid", "allowed"
		}
		s.replaceButton(item, button, next)
		s.speak(item.Label+" "+said, domain.PriorityNormal)
	case "Refuel":
		line, fuel := fuelLine(item)
		s.quantity.Start("Fuel", fuel, 0, 100, s.details, func(v int) {
			s.setLine(item.ID, line, fmt.Sprintf("Fuel %d%%", v))
		})
	default:
		s.state.SetStatus(fmt.Sprintf("%s %s", button, item.Label))
		s.speak(fmt.Sprintf("%s %s", button, item.Label), domain.PriorityNormal)
	}
}

func (s *Session) replaceButton(item domain.Item, from, to string) {
	current, ok := s.store.Get(item.ID)
	if !ok {
		return
	}
	for i, b := range current.Buttons {
		if b == from {
			current.Buttons[i] = to
		}
	}
	if err := s.store.Update(current); err != nil {
		s.state.SetError(err.Error())
		return
	}
	s.syncItems()
	s.details.Refresh()
}

func (s *Session) setLine(id string, index int, text string) {
	current, ok := s.store.Get(id)
	if !ok {
		return
	}
	if index < 0 || index >= len(current.Lines) {
		current.Lines = append(current.Lines, text)
	} else {
		current.Lines[index] = text
	}
	if err := s.store.Update(current); err != nil {
		s.state.SetError(err.Error())
		return
	}
	s.syncItems()
	s.details.Refresh()
}

// fuelLine finds the "Fuel N%" line of item. It returns -1 when there is none.
func fuelLine(item domain.Item) (int, int) {
	for i, l := range item.Lines {
		var v int
		if _, err := fmt.Sscanf(l, "Fuel %d%%", &v); err == nil {
			return i, v
		}
	}
	return -1, 0
}
