package main

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/view"
	"github.com/osa030/tunedeck/internal/domain/collection"
)

const (
	seekStep   = 10
	volumeStep = 5
)

// Model is the Bubble Tea model for the player UI.
type Model struct {
	ctx     context.Context
	clients clients
	notes   <-chan *playerv1.Notification

	loc     location
	history []location
	sidebar view.Sidebar
	page    page
	cursor  int
	loading bool

	footer   view.Footer
	snapshot *playerv1.Snapshot

	searching bool
	input     textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	help      help.Model
	keys      keyMap

	status string
	err    error

	width  int
	height int
}

func newModel(ctx context.Context, c clients, notes <-chan *playerv1.Notification) Model {
	ti := textinput.New()
	ti.Placeholder = "Artists, songs, or playlists"
	ti.CharLimit = 120
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	prog := progress.New(progress.WithSolidFill(string(accentColor)), progress.WithoutPercentage())
	prog.Width = 40

	return Model{
		ctx:      ctx,
		clients:  c,
		notes:    notes,
		loc:      location{route: view.RouteHome},
		sidebar:  view.BuildSidebar(view.RouteHome),
		footer:   view.BuildFooter(playback.Snapshot{}),
		cursor:   -1,
		loading:  true,
		input:    ti,
		spinner:  sp,
		progress: prog,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.clients.fetchSnapshot(m.ctx),
		m.clients.loadPage(m.ctx, m.loc),
		waitForNotification(m.notes),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = clampInt(msg.Width-sidebarWidth-24, 10, 80)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)

	case pageMsg:
		if msg.loc != m.loc {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.sidebar = msg.sidebar
		m.page = msg.page
		m.cursor = keepCursor(m.page, m.cursor)
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if !m.newer(msg.snapshot) {
			return m, nil
		}
		m.footer = msg.footer
		m.snapshot = msg.snapshot
		return m, nil

	case notificationMsg:
		cmds := []tea.Cmd{waitForNotification(m.notes)}
		// A reconnect may reach a restarted server with a lower revision.
		if msg.n.Type != playerv1.NotificationTypeInitialState && !m.newer(msg.n.Snapshot) {
			return m, tea.Batch(cmds...)
		}
		if msg.n.Footer != nil {
			m.footer = *msg.n.Footer
		}
		m.snapshot = msg.n.Snapshot
		// Row and tile highlights follow the current track.
		if msg.n.Type != playerv1.NotificationTypePositionChanged {
			cmds = append(cmds, m.clients.loadPage(m.ctx, m.loc))
		}
		return m, tea.Batch(cmds...)

	case transportMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case libraryMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = msg.status
		return m, m.clients.loadPage(m.ctx, m.loc)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.input.Blur()
		return m.navigate(location{route: view.RouteSearch, query: m.input.Value()}, false)
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// newer reports whether s is at least as recent as the held snapshot.
func (m Model) newer(s *playerv1.Snapshot) bool {
	if s == nil {
		return false
	}
	return m.snapshot == nil || s.Revision >= m.snapshot.Revision
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	player := m.clients.player
	ctx := m.ctx

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.page.nextSelectable(m.cursor, -1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.page.nextSelectable(m.cursor, 1)
	case key.Matches(msg, m.keys.Home):
		return m.navigate(location{route: view.RouteHome}, false)
	case key.Matches(msg, m.keys.Library):
		return m.navigate(location{route: view.RouteLibrary}, false)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.SetValue(m.loc.query)
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.PlayAll):
		if id := m.selectedCollectionID(); id != "" {
			return m, transport(ctx, player.PlayCollection, &playerv1.PlayCollectionRequest{CollectionId: id})
		}
	case key.Matches(msg, m.keys.Enqueue):
		if e, ok := m.selected(); ok && e.kind == entryRow {
			m.status = "Added to queue"
			return m, transport(ctx, player.Enqueue, &playerv1.EnqueueRequest{TrackId: e.row.ID})
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, transport(ctx, player.TogglePlayPause, &playerv1.TogglePlayPauseRequest{})
	case key.Matches(msg, m.keys.Next):
		return m, transport(ctx, player.Next, &playerv1.NextRequest{})
	case key.Matches(msg, m.keys.Prev):
		return m, transport(ctx, player.Previous, &playerv1.PreviousRequest{})
	case key.Matches(msg, m.keys.SeekFwd):
		return m, transport(ctx, player.Seek, &playerv1.SeekRequest{PositionSeconds: int32(m.footer.Position + seekStep)})
	case key.Matches(msg, m.keys.SeekBk):
		return m, transport(ctx, player.Seek, &playerv1.SeekRequest{PositionSeconds: int32(m.footer.Position - seekStep)})
	case key.Matches(msg, m.keys.VolUp):
		return m, transport(ctx, player.SetVolume, &playerv1.SetVolumeRequest{Volume: int32(m.footer.Volume + volumeStep)})
	case key.Matches(msg, m.keys.VolDown):
		return m, transport(ctx, player.SetVolume, &playerv1.SetVolumeRequest{Volume: int32(m.footer.Volume - volumeStep)})
	case key.Matches(msg, m.keys.Mute):
		return m, transport(ctx, player.ToggleMute, &playerv1.ToggleMuteRequest{})
	case key.Matches(msg, m.keys.Shuffle):
		return m, transport(ctx, player.ToggleShuffle, &playerv1.ToggleShuffleRequest{})
	case key.Matches(msg, m.keys.Repeat):
		return m, transport(ctx, player.CycleRepeat, &playerv1.CycleRepeatRequest{})
	case key.Matches(msg, m.keys.Stop):
		return m, transport(ctx, player.Stop, &playerv1.StopRequest{})
	case key.Matches(msg, m.keys.Follow):
		if m.page.artistID != "" {
			return m, m.clients.follow(ctx, m.page.artistID, !m.page.following)
		}
	case key.Matches(msg, m.keys.Save):
		return m.toggleSave()
	}
	return m, nil
}

// open plays the selected row or opens the selected tile.
func (m Model) open() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}
	if e.kind == entryRow {
		return m, transport(m.ctx, m.clients.player.PlayTrack, &playerv1.PlayTrackRequest{TrackId: e.row.ID, ContextId: e.row.ContextID})
	}
	kind := "collection"
	if e.tile.Kind == collection.KindArtist {
		kind = "artist"
	}
	return m.navigate(location{kind: kind, id: e.tile.ID}, true)
}

// toggleSave saves the selected track, or the open playlist or album.
func (m Model) toggleSave() (tea.Model, tea.Cmd) {
	if e, ok := m.selected(); ok && e.kind == entryRow {
		// Track rows carry no saved flag; Library lists what is saved.
		return m, m.clients.save(m.ctx, e.row.ID, true)
	}
	if m.page.collectionID != "" {
		return m, m.clients.save(m.ctx, m.page.collectionID, !m.page.saved)
	}
	return m, nil
}

func (m Model) navigate(loc location, push bool) (tea.Model, tea.Cmd) {
	if push {
		m.history = append(m.history, m.loc)
	} else {
		m.history = nil
	}
	m.loc = loc
	m.cursor = -1
	m.loading = true
	return m, m.clients.loadPage(m.ctx, loc)
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.loc = prev
	m.cursor = -1
	m.loading = true
	return m, m.clients.loadPage(m.ctx, prev)
}

func (m Model) selected() (entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.entries) {
		return entry{}, false
	}
	e := m.page.entries[m.cursor]
	return e, e.selectable()
}

// selectedCollectionID returns the selected playlist or album tile, or the
// open collection page.
func (m Model) selectedCollectionID() string {
	if e, ok := m.selected(); ok && e.kind == entryTile && e.tile.Kind != collection.KindArtist {
		return e.tile.ID
	}
	return m.page.collectionID
}

// keepCursor keeps the cursor when it still points at a selectable entry
// after a reload.
func keepCursor(p page, cursor int) int {
	if cursor >= 0 && cursor < len(p.entries) && p.entries[cursor].selectable() {
		return cursor
	}
	if cursor >= 0 {
		zlog.Debug().Msgf("cursor %d reset after reload", cursor)
	}
	return p.firstSelectable()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
