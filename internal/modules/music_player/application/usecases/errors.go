package usecases

import "errors"

// Domain errors for the music player module.
var (
	// ErrNotConnected is returned when an operation requires the bot to be in a voice channel.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrMissingQuery is returned when !play is issued without a query.
	ErrMissingQuery = errors.New("missing song name or URL")

	// ErrJoinFailed is returned when the bot cannot join the caller's voice channel.
	ErrJoinFailed = errors.New("failed to join voice channel")

	// ErrMetadataLookup is returned when a metadata-service link cannot be resolved to a title.
	ErrMetadataLookup = errors.New("failed to resolve metadata link")

	// ErrTrackNotFound is returned when neither the engine nor the fallback search finds the song.
	ErrTrackNotFound = errors.New("song not found")

	// ErrPlaybackFailed is returned when a fallback result cannot be played.
	ErrPlaybackFailed = errors.New("failed to play song")

	// ErrNothingPlaying is returned when !stop is issued without a queue.
	ErrNothingPlaying = errors.New("nothing is currently playing")

	// ErrNothingToSkip is returned when there is no track after the current one.
	ErrNothingToSkip = errors.New("no more songs queued")

	// ErrQueueEmpty is returned when the queue is empty.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no results found")

	// ErrLoadFailed is returned when loading tracks fails.
	ErrLoadFailed = errors.New("failed to load track")
)
