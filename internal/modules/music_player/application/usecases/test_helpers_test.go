package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

var errMock = errors.New("mock error")

func mockTrack(id string) *domain.Track {
	return &domain.Track{
		ID:          domain.TrackID(id),
		Encoded:     "encoded-" + id,
		Title:       "Track " + id,
		Artist:      "Artist",
		Duration:    3 * time.Minute,
		URI:         "https://example.com/" + id,
		RequesterID: snowflake.ID(123),
	}
}

func mockTrackInfo(id string) *ports.TrackInfo {
	return &ports.TrackInfo{
		Identifier: id,
		Encoded:    "encoded-" + id,
		Title:      "Track " + id,
		Artist:     "Artist",
		Duration:   3 * time.Minute,
		URI:        "https://example.com/" + id,
	}
}

func searchResult(ids ...string) *ports.LoadResult {
	tracks := make([]*ports.TrackInfo, len(ids))
	for i, id := range ids {
		tracks[i] = mockTrackInfo(id)
	}
	return &ports.LoadResult{Type: ports.LoadTypeSearch, Tracks: tracks}
}

type mockRepository struct {
	mu      sync.Mutex
	states  map[snowflake.ID]*domain.PlayerState
	deleted []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		states: make(map[snowflake.ID]*domain.PlayerState),
	}
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.PlayerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[guildID]
}

func (m *mockRepository) Save(state *domain.PlayerState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.GuildID()] = state
}

// createConnectedState creates a PlayerState with the given IDs and saves it to the mock repository.
// Returns the state for further modification (e.g., adding tracks).
func (m *mockRepository) createConnectedState(
	guildID, voiceChannelID, notificationChannelID snowflake.ID,
) *domain.PlayerState {
	state := domain.NewPlayerState(guildID, voiceChannelID, notificationChannelID)
	m.Save(state)
	return state
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, guildID)
	delete(m.states, guildID)
}

type mockAudioPlayer struct {
	playErr   error
	playErrs  []error // consumed in order before playErr
	stopErr   error
	played    []*domain.Track
	stopCalls int
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	m.played = append(m.played, track)
	if len(m.playErrs) > 0 {
		err := m.playErrs[0]
		m.playErrs = m.playErrs[1:]
		return err
	}
	return m.playErr
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	m.stopCalls++
	return m.stopErr
}

type mockVoiceConnection struct {
	joinErr    error
	leaveErr   error
	joined     []snowflake.ID
	leaveCalls int
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	m.joined = append(m.joined, channelID)
	return m.joinErr
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, _ snowflake.ID) error {
	m.leaveCalls++
	return m.leaveErr
}

type mockTrackLoader struct {
	loadErr    error
	loadResult *ports.LoadResult
	queries    []string
}

func (m *mockTrackLoader) LoadTracks(_ context.Context, query string) (*ports.LoadResult, error) {
	m.queries = append(m.queries, query)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loadResult, nil
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID // userID -> channelID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.channels[userID], nil
}

type mockEventPublisher struct {
	mu            sync.Mutex
	trackStarted  []domain.TrackStartedEvent
	trackEnqueued []domain.TrackEnqueuedEvent
	trackEnded    []domain.TrackEndedEvent
}

func (m *mockEventPublisher) PublishTrackStarted(event domain.TrackStartedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackStarted = append(m.trackStarted, event)
}

func (m *mockEventPublisher) PublishTrackEnqueued(event domain.TrackEnqueuedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackEnqueued = append(m.trackEnqueued, event)
}

func (m *mockEventPublisher) PublishTrackEnded(event domain.TrackEndedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackEnded = append(m.trackEnded, event)
}

// mockEngine records every call the dispatcher makes to the playback engine.
type mockEngine struct {
	joinErr error
	// playFunc decides the outcome of each Play call; nil means success.
	playFunc     func(req ports.PlayRequest) error
	queue        []domain.Track
	connected    bool
	skipErr      error
	stopErr      error
	leaveErr     error
	joinCalls    int
	playRequests []ports.PlayRequest
	skipCalls    int
	stopCalls    int
	leaveCalls   int
}

func (m *mockEngine) Join(_ context.Context, _, _, _ snowflake.ID) error {
	m.joinCalls++
	return m.joinErr
}

func (m *mockEngine) Play(_ context.Context, req ports.PlayRequest) (*domain.Track, error) {
	m.playRequests = append(m.playRequests, req)
	if m.playFunc != nil {
		if err := m.playFunc(req); err != nil {
			return nil, err
		}
	}
	return &domain.Track{Title: "Played " + req.Query, URI: req.Query}, nil
}

func (m *mockEngine) Queue(_ snowflake.ID) []domain.Track {
	return m.queue
}

func (m *mockEngine) Skip(_ context.Context, _ snowflake.ID) error {
	m.skipCalls++
	return m.skipErr
}

func (m *mockEngine) Stop(_ context.Context, _ snowflake.ID) error {
	m.stopCalls++
	return m.stopErr
}

func (m *mockEngine) Leave(_ context.Context, _ snowflake.ID) error {
	m.leaveCalls++
	return m.leaveErr
}

func (m *mockEngine) Connected(_ snowflake.ID) bool {
	return m.connected
}

func (m *mockEngine) playedQueries() []string {
	queries := make([]string, len(m.playRequests))
	for i, req := range m.playRequests {
		queries[i] = req.Query
	}
	return queries
}

func (m *mockEngine) totalCalls() int {
	return m.joinCalls + len(m.playRequests) + m.skipCalls + m.stopCalls + m.leaveCalls
}

type mockMetadataResolver struct {
	title string
	err   error
	calls []string
}

func (m *mockMetadataResolver) ResolveTitle(_ context.Context, link string) (string, error) {
	m.calls = append(m.calls, link)
	if m.err != nil {
		return "", m.err
	}
	return m.title, nil
}

type mockFallbackSearcher struct {
	result domain.ResolvedTrack
	err    error
	calls  []string
}

func (m *mockFallbackSearcher) Search(_ context.Context, query string) (domain.ResolvedTrack, error) {
	m.calls = append(m.calls, query)
	if m.err != nil {
		return domain.ResolvedTrack{}, m.err
	}
	return m.result, nil
}

type mockSearchCache struct {
	entries map[string]domain.ResolvedTrack
	lookups []string
	stores  []string
}

func newMockSearchCache() *mockSearchCache {
	return &mockSearchCache{entries: make(map[string]domain.ResolvedTrack)}
}

func (m *mockSearchCache) Lookup(_ context.Context, query string) (domain.ResolvedTrack, bool) {
	m.lookups = append(m.lookups, query)
	track, ok := m.entries[query]
	return track, ok
}

func (m *mockSearchCache) Store(_ context.Context, query string, track domain.ResolvedTrack) {
	m.stores = append(m.stores, query)
	m.entries[query] = track
}
